package backend

import (
	gg "github.com/gogpu/retained"
	"github.com/gogpu/retained/partial"
)

// GlyphPainter paints a pre-shaped text run. The backend accepts shaped
// runs rather than raw strings plus a font face, since gg carries no font
// shaping of its own (see DESIGN.md); callers shape text upstream and hand
// this backend the resulting run.
type GlyphPainter func(dc *gg.Context, run string, origin gg.Point, color gg.RGBA)

// SoftwareItemRenderer implements partial.ItemRenderer on top of a gg.Context
// backed by gg's CPU rasterizer (gg.NewSoftwareRenderer / gg.Pixmap).
type SoftwareItemRenderer struct {
	ctx         *gg.Context
	ctxOptions  []gg.ContextOption
	window      partial.Window
	scaleFactor float32

	glyphPainter GlyphPainter

	clipStack []gg.Rect
	metrics   partial.RenderingMetrics
}

// NewSoftwareItemRenderer creates a software-rasterized backend of the
// given pixel dimensions.
func NewSoftwareItemRenderer(width, height int, window partial.Window, opts ...RendererOption) *SoftwareItemRenderer {
	r := &SoftwareItemRenderer{
		window:      window,
		scaleFactor: 1.0,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.ctx = gg.NewContext(width, height, r.ctxOptions...)
	r.clipStack = append(r.clipStack, gg.NewRect(gg.Point{}, gg.Point{X: float64(width), Y: float64(height)}))
	return r
}

// Context exposes the underlying gg.Context, e.g. to blit the result.
func (r *SoftwareItemRenderer) Context() *gg.Context { return r.ctx }

func (r *SoftwareItemRenderer) currentClip() gg.Rect {
	return r.clipStack[len(r.clipStack)-1]
}

func brushFor(col gg.RGBA) gg.Brush { return gg.Solid(col) }

// --- Draws. Geometry ("size") arrives pre-resolved by the decorator; the
// cache handle is unused here since this backend holds no per-item cached
// artifacts of its own (layering/pixmap caching is left to a future
// DrawCachedPixmap caller). ---

func (r *SoftwareItemRenderer) DrawRectangle(item partial.Item, size gg.Rect, _ *partial.CachedRenderingData) {
	r.ctx.SetFillBrush(brushFor(gg.White))
	r.ctx.DrawRectangle(size.Min.X, size.Min.Y, size.Max.X-size.Min.X, size.Max.Y-size.Min.Y)
	_ = r.ctx.Fill()
}

func (r *SoftwareItemRenderer) DrawBorderRectangle(item partial.Item, size gg.Rect, _ *partial.CachedRenderingData) {
	r.ctx.SetStrokeBrush(brushFor(gg.Black))
	r.ctx.DrawRectangle(size.Min.X, size.Min.Y, size.Max.X-size.Min.X, size.Max.Y-size.Min.Y)
	_ = r.ctx.Stroke()
}

func (r *SoftwareItemRenderer) DrawWindowBackground(item partial.Item, size gg.Rect, _ *partial.CachedRenderingData) {
	r.ctx.SetFillBrush(brushFor(gg.White))
	r.ctx.DrawRectangle(size.Min.X, size.Min.Y, size.Max.X-size.Min.X, size.Max.Y-size.Min.Y)
	_ = r.ctx.Fill()
}

func (r *SoftwareItemRenderer) DrawImage(item partial.Item, size gg.Rect, _ *partial.CachedRenderingData) {
	// Decoded image bytes arrive separately: a caller supplies them via
	// DrawImageDirect during DrawCachedPixmap's update callback, or an Item
	// implementing an image-bearing capability could be type-asserted here.
	// Nothing to rasterize without either.
}

func (r *SoftwareItemRenderer) DrawText(item partial.Item, size gg.Rect, _ *partial.CachedRenderingData) {
	r.paintText(item, size)
}

func (r *SoftwareItemRenderer) DrawTextInput(item partial.Item, size gg.Rect, _ *partial.CachedRenderingData) {
	r.paintText(item, size)
}

// textRun is an optional capability an Item may implement to supply a
// pre-shaped string and color for DrawText/DrawTextInput.
type textRun interface {
	TextRun() (string, gg.RGBA)
}

func (r *SoftwareItemRenderer) paintText(item partial.Item, size gg.Rect) {
	if r.glyphPainter == nil {
		return
	}
	tr, ok := item.(textRun)
	if !ok {
		return
	}
	run, color := tr.TextRun()
	r.glyphPainter(r.ctx, run, size.Min, color)
}

func (r *SoftwareItemRenderer) DrawPath(item partial.Item, size gg.Rect, _ *partial.CachedRenderingData) {
	r.ctx.SetFillBrush(brushFor(gg.Black))
	_ = r.ctx.Fill()
}

// DrawBoxShadow approximates a shadow as a single inflated, lower-alpha
// fill rather than a blurred gradient: this backend is a demonstration of
// the item-renderer contract, not a production compositor (see DESIGN.md).
func (r *SoftwareItemRenderer) DrawBoxShadow(item partial.Item, size gg.Rect, _ *partial.CachedRenderingData) {
	const inflate = 6.0
	shadow := gg.RGBA2(0, 0, 0, 0.3)
	r.ctx.SetFillBrush(brushFor(shadow))
	r.ctx.DrawRectangle(size.Min.X-inflate, size.Min.Y-inflate,
		(size.Max.X-size.Min.X)+2*inflate, (size.Max.Y-size.Min.Y)+2*inflate)
	_ = r.ctx.Fill()
}

// --- Container visits. ---

func (r *SoftwareItemRenderer) VisitClip(item partial.Item, h *partial.CachedRenderingData) partial.RenderingResult {
	geom := item.Geometry()
	if !r.CombineClip(geom, 0, 0) {
		return partial.ContinueRenderingWithoutChildren
	}
	return partial.ContinueRenderingChildren
}

func (r *SoftwareItemRenderer) VisitOpacity(item partial.Item, opacity float64, h *partial.CachedRenderingData) partial.RenderingResult {
	r.ApplyOpacity(opacity)
	return partial.ContinueRenderingChildren
}

func (r *SoftwareItemRenderer) VisitLayer(item partial.Item, h *partial.CachedRenderingData) partial.RenderingResult {
	r.metrics.LayersCount++
	return partial.ContinueRenderingChildren
}

// --- State stack / transforms / clip. ---

func (r *SoftwareItemRenderer) SaveState() {
	r.ctx.Push()
	r.clipStack = append(r.clipStack, r.currentClip())
}

func (r *SoftwareItemRenderer) RestoreState() {
	r.ctx.Pop()
	if n := len(r.clipStack); n > 1 {
		r.clipStack = r.clipStack[:n-1]
	}
}

func (r *SoftwareItemRenderer) Translate(x, y float64) { r.ctx.Translate(x, y) }
func (r *SoftwareItemRenderer) Rotate(angle float64)   { r.ctx.Rotate(angle) }

func (r *SoftwareItemRenderer) Translation() (float64, float64) {
	m := r.ctx.GetTransform()
	return m.E, m.F
}

func (r *SoftwareItemRenderer) ApplyOpacity(opacity float64) {
	r.ctx.PushLayer(gg.BlendNormal, opacity)
}

func (r *SoftwareItemRenderer) CombineClip(rect gg.Rect, radius, borderWidth float64) bool {
	inset := borderWidth / 2
	x := rect.Min.X + inset
	y := rect.Min.Y + inset
	w := (rect.Max.X - rect.Min.X) - 2*inset
	h := (rect.Max.Y - rect.Min.Y) - 2*inset
	r.ctx.ClipRect(x, y, w, h)

	clipped, ok := intersectRects(r.currentClip(), gg.NewRect(gg.Point{X: x, Y: y}, gg.Point{X: x + w, Y: y + h}))
	r.clipStack[len(r.clipStack)-1] = clipped
	return ok
}

func (r *SoftwareItemRenderer) GetCurrentClip() gg.Rect { return r.currentClip() }

func intersectRects(a, b gg.Rect) (gg.Rect, bool) {
	min := gg.Point{X: maxF(a.Min.X, b.Min.X), Y: maxF(a.Min.Y, b.Min.Y)}
	max := gg.Point{X: minF(a.Max.X, b.Max.X), Y: minF(a.Max.Y, b.Max.Y)}
	if max.X <= min.X || max.Y <= min.Y {
		return gg.Rect{}, false
	}
	return gg.NewRect(min, max), true
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// --- Ancillary. ---

func (r *SoftwareItemRenderer) ScaleFactor() float32 { return r.scaleFactor }

// DrawCachedPixmap hands update a sink that converts the premultiplied
// bytes it receives to straight alpha and copies them onto this backend's
// own target via SetPixel, starting at the current clip's origin. A real
// compositor would keep the sink's pixmap around keyed by h instead of
// copying on every call; this backend doesn't maintain its own pixmap
// cache (see DESIGN.md).
func (r *SoftwareItemRenderer) DrawCachedPixmap(item partial.Item, h *partial.CachedRenderingData, update func(sink partial.PixmapSink)) {
	origin := r.currentClip().Min
	update(func(w, hgt int, premultipliedRGBA []byte) {
		for y := 0; y < hgt; y++ {
			for x := 0; x < w; x++ {
				i := (y*w + x) * 4
				if i+3 >= len(premultipliedRGBA) {
					continue
				}
				alpha := float64(premultipliedRGBA[i+3]) / 255
				straight := func(v byte) float64 {
					if alpha == 0 {
						return 0
					}
					return minF(1, float64(v)/255/alpha)
				}
				col := gg.RGBA2(
					straight(premultipliedRGBA[i]),
					straight(premultipliedRGBA[i+1]),
					straight(premultipliedRGBA[i+2]),
					alpha,
				)
				r.ctx.SetPixel(int(origin.X)+x, int(origin.Y)+y, col)
			}
		}
	})
}

func (r *SoftwareItemRenderer) DrawString(s string, color gg.RGBA) {
	r.ctx.SetRGBA(color.R, color.G, color.B, color.A)
}

func (r *SoftwareItemRenderer) DrawImageDirect(img *gg.ImageBuf) {
	r.ctx.DrawImage(img, 0, 0)
}

func (r *SoftwareItemRenderer) Window() partial.Window { return r.window }
func (r *SoftwareItemRenderer) AsAny() any              { return r }
func (r *SoftwareItemRenderer) Metrics() partial.RenderingMetrics { return r.metrics }
