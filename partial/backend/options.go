package backend

import gg "github.com/gogpu/retained"

// RendererOption configures a SoftwareItemRenderer during construction.
type RendererOption func(*SoftwareItemRenderer)

// WithScaleFactor sets the backend's reported scale factor. Default is 1.0.
func WithScaleFactor(scale float32) RendererOption {
	return func(r *SoftwareItemRenderer) {
		r.scaleFactor = scale
	}
}

// WithContextOptions forwards gg.ContextOption values to the underlying
// gg.Context constructed for this backend.
func WithContextOptions(opts ...gg.ContextOption) RendererOption {
	return func(r *SoftwareItemRenderer) {
		r.ctxOptions = append(r.ctxOptions, opts...)
	}
}

// WithGlyphPainter installs the callback used to paint pre-shaped text runs
// for DrawText/DrawTextInput (see GlyphPainter's doc comment for why this
// takes shaped runs rather than a font face).
func WithGlyphPainter(p GlyphPainter) RendererOption {
	return func(r *SoftwareItemRenderer) {
		r.glyphPainter = p
	}
}
