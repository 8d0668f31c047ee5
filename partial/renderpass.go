package partial

import gg "github.com/gogpu/retained"

// RenderingResult is what a container visit (clip/opacity/layer) returns to
// tell the traversal whether to recurse into children.
type RenderingResult int

const (
	ContinueRenderingChildren RenderingResult = iota
	ContinueRenderingWithoutChildren
)

// PixmapSink receives a freshly rendered cached pixmap's premultiplied RGBA
// bytes.
type PixmapSink func(w, h int, premultipliedRGBA []byte)

// RenderingMetrics reports coarse counters a backend may track.
type RenderingMetrics struct {
	LayersCount int
}

// OpacityItem is an optional capability an Item may implement when its
// Kind is KindOpacity, exposing the opacity value to apply. Items that
// don't implement it default to fully opaque (1.0).
type OpacityItem interface {
	Opacity() float64
}

// ItemRenderer is the contract any concrete drawing backend implements.
// PartialRenderer decorates one of these.
type ItemRenderer interface {
	DrawRectangle(item Item, size gg.Rect, handle *CachedRenderingData)
	DrawBorderRectangle(item Item, size gg.Rect, handle *CachedRenderingData)
	DrawWindowBackground(item Item, size gg.Rect, handle *CachedRenderingData)
	DrawImage(item Item, size gg.Rect, handle *CachedRenderingData)
	DrawText(item Item, size gg.Rect, handle *CachedRenderingData)
	DrawTextInput(item Item, size gg.Rect, handle *CachedRenderingData)
	DrawPath(item Item, size gg.Rect, handle *CachedRenderingData)
	DrawBoxShadow(item Item, size gg.Rect, handle *CachedRenderingData)

	VisitClip(item Item, handle *CachedRenderingData) RenderingResult
	VisitOpacity(item Item, opacity float64, handle *CachedRenderingData) RenderingResult
	VisitLayer(item Item, handle *CachedRenderingData) RenderingResult

	SaveState()
	RestoreState()
	Translate(x, y float64)
	Rotate(angle float64)
	Translation() (x, y float64)
	ApplyOpacity(opacity float64)
	CombineClip(rect gg.Rect, radius, borderWidth float64) bool
	GetCurrentClip() gg.Rect

	ScaleFactor() float32
	DrawCachedPixmap(item Item, handle *CachedRenderingData, update func(sink PixmapSink))
	DrawString(s string, color gg.RGBA)
	DrawImageDirect(img *gg.ImageBuf)
	Window() Window
	AsAny() any
	Metrics() RenderingMetrics
}

// renderState is what PartialRenderer saves/restores across SaveState /
// RestoreState so its own filter bookkeeping stays consistent with nested
// backend state (mirrors the original source's Cell-based self.clipped /
// self.translation rather than treating clip/translate as pure passthrough,
// see DESIGN.md).
type renderState struct {
	clipped     gg.Rect
	translation gg.Point
}

// PartialRenderer decorates a concrete ItemRenderer backend: it filters
// draw calls through a dirty region and refreshes the geometry cache entry
// for each item it visits.
type PartialRenderer struct {
	inner                   ItemRenderer
	geometryCache           *RenderingCache[CachedGraphicsData[CachedGeometry]]
	trackers                TrackerFactory
	window                  Window
	supportsTransformations bool

	dirtyRegion DirtyRegion
	state       renderState
	stack       []renderState
}

// NewPartialRenderer wraps inner, filtering against dirtyRegion (the
// "effective" region computed by the frame orchestrator) starting from
// initialClip.
func NewPartialRenderer(inner ItemRenderer, geometryCache *RenderingCache[CachedGraphicsData[CachedGeometry]], trackers TrackerFactory, window Window, supportsTransformations bool, dirtyRegion DirtyRegion, initialClip gg.Rect) *PartialRenderer {
	return &PartialRenderer{
		inner:                   inner,
		geometryCache:           geometryCache,
		trackers:                trackers,
		window:                  window,
		supportsTransformations: supportsTransformations,
		dirtyRegion:             dirtyRegion,
		state:                   renderState{clipped: initialClip},
	}
}

// RenderItems walks roots, drawing only what intersects the dirty region.
func (p *PartialRenderer) RenderItems(roots []RootComponent) {
	for _, root := range roots {
		p.SaveState()
		p.Translate(root.Origin.X, root.Origin.Y)
		Walk(root.Tree, -1, nil, func(subtree ItemTree, item Item, itemIndex int, _ any) VisitResult {
			if p.visit(item) {
				return Continue(nil)
			}
			return Stop()
		})
		p.RestoreState()
	}
}

// filterItem refreshes the item's geometry cache entry under tracking and
// decides whether it should be drawn this frame. It also returns the
// entry's tracker so the caller can run the actual draw call under the same
// tracked evaluation (see visit), attributing render-affecting property
// reads to the entry alongside the geometry-affecting ones.
func (p *PartialRenderer) filterItem(item Item) (shouldDraw bool, clippedRect gg.Rect, tracker PropertyTracker) {
	handle := item.CacheHandle()
	geom, tracker := p.refreshGeometry(item, handle)

	screenRect := offsetRect(geom.BoundingRect(), p.state.translation)
	clipped, ok := rectIntersect(screenRect, p.state.clipped)
	if !ok {
		clipped = gg.Rect{}
	} else if p.dirtyRegion.DrawIntersects(clipped) {
		return true, clipped, tracker
	}

	// BoxShadow extends beyond its own geometry, and clip containers define
	// the extent for their children, so both still render when the clip test
	// or dirty-region filtering would have skipped them.
	if item.Kind() == KindBoxShadow || item.ClipsChildren() {
		return true, clipped, tracker
	}
	return false, clipped, tracker
}

func (p *PartialRenderer) refreshGeometry(item Item, handle *CachedRenderingData) (CachedGeometry, PropertyTracker) {
	if entry, ok := p.geometryCache.Get(*handle); ok && !entry.IsDirty() {
		if entry.Tracker != nil {
			entry.Tracker.RegisterAsDependencyToCurrentBinding()
		}
		return entry.Data, entry.Tracker
	}

	tracker := p.trackers.NewTracker()
	var geom CachedGeometry
	tracker.Evaluate(func() {
		geom = computeGeometry(item, p.window, p.supportsTransformations)
	})

	if entry, ok := p.geometryCache.Get(*handle); ok {
		*entry = CachedGraphicsData[CachedGeometry]{Data: geom, Tracker: tracker}
	} else {
		*handle = p.geometryCache.Insert(CachedGraphicsData[CachedGeometry]{Data: geom, Tracker: tracker})
	}
	return geom, tracker
}

// visit draws or dispatches a container visit for item, returning whether
// the traversal should recurse into its children. Plain draw-kind items
// have no container visit and always permit recursion (they have none);
// container kinds gate recursion on the backend's RenderingResult.
func (p *PartialRenderer) visit(item Item) bool {
	shouldDraw, _, tracker := p.filterItem(item)
	handle := item.CacheHandle()

	switch item.Kind() {
	case KindClip:
		if !shouldDraw {
			return true
		}
		return p.VisitClip(item, handle) == ContinueRenderingChildren
	case KindOpacity:
		if !shouldDraw {
			return true
		}
		opacity := 1.0
		if o, ok := item.(OpacityItem); ok {
			opacity = o.Opacity()
		}
		return p.VisitOpacity(item, opacity, handle) == ContinueRenderingChildren
	case KindLayer:
		if !shouldDraw {
			return true
		}
		return p.VisitLayer(item, handle) == ContinueRenderingChildren
	}
	if !shouldDraw {
		return true
	}
	size := item.Geometry()
	draw := func() {
		switch item.Kind() {
		case KindRectangle:
			p.DrawRectangle(item, size, handle)
		case KindBorderRectangle:
			p.DrawBorderRectangle(item, size, handle)
		case KindImage:
			p.DrawImage(item, size, handle)
		case KindText:
			p.DrawText(item, size, handle)
		case KindTextInput:
			p.DrawTextInput(item, size, handle)
		case KindPath:
			p.DrawPath(item, size, handle)
		case KindBoxShadow:
			p.DrawBoxShadow(item, size, handle)
		}
	}
	// Run the draw under the same tracker that guards the cache entry's
	// geometry, so a property read during the draw itself (a color, a
	// brush, shaped text) also marks the entry dirty when it later changes,
	// not just a read during computeGeometry.
	if tracker != nil {
		tracker.Evaluate(draw)
	} else {
		draw()
	}
	return true
}

// --- Draw calls: the actual drawing happens inside the tracked evaluation
// visit sets up around draw(); these just delegate to the backend. ---

func (p *PartialRenderer) DrawRectangle(item Item, size gg.Rect, h *CachedRenderingData) {
	p.inner.DrawRectangle(item, size, h)
}
func (p *PartialRenderer) DrawBorderRectangle(item Item, size gg.Rect, h *CachedRenderingData) {
	p.inner.DrawBorderRectangle(item, size, h)
}
func (p *PartialRenderer) DrawWindowBackground(item Item, size gg.Rect, h *CachedRenderingData) {
	p.inner.DrawWindowBackground(item, size, h)
}
func (p *PartialRenderer) DrawImage(item Item, size gg.Rect, h *CachedRenderingData) {
	p.inner.DrawImage(item, size, h)
}
func (p *PartialRenderer) DrawText(item Item, size gg.Rect, h *CachedRenderingData) {
	p.inner.DrawText(item, size, h)
}
func (p *PartialRenderer) DrawTextInput(item Item, size gg.Rect, h *CachedRenderingData) {
	p.inner.DrawTextInput(item, size, h)
}
func (p *PartialRenderer) DrawPath(item Item, size gg.Rect, h *CachedRenderingData) {
	p.inner.DrawPath(item, size, h)
}
func (p *PartialRenderer) DrawBoxShadow(item Item, size gg.Rect, h *CachedRenderingData) {
	p.inner.DrawBoxShadow(item, size, h)
}

// --- Container visits: refresh then delegate. ---

func (p *PartialRenderer) VisitClip(item Item, h *CachedRenderingData) RenderingResult {
	return p.inner.VisitClip(item, h)
}
func (p *PartialRenderer) VisitOpacity(item Item, opacity float64, h *CachedRenderingData) RenderingResult {
	return p.inner.VisitOpacity(item, opacity, h)
}
func (p *PartialRenderer) VisitLayer(item Item, h *CachedRenderingData) RenderingResult {
	return p.inner.VisitLayer(item, h)
}

// --- State stack / transforms / clip: update own bookkeeping, then forward. ---

func (p *PartialRenderer) SaveState() {
	p.stack = append(p.stack, p.state)
	p.inner.SaveState()
}

func (p *PartialRenderer) RestoreState() {
	if n := len(p.stack); n > 0 {
		p.state = p.stack[n-1]
		p.stack = p.stack[:n-1]
	}
	p.inner.RestoreState()
}

func (p *PartialRenderer) Translate(x, y float64) {
	p.state.translation.X += x
	p.state.translation.Y += y
	p.inner.Translate(x, y)
}

func (p *PartialRenderer) Rotate(angle float64) {
	// Rotation is not reflected in the decorator's own filter bookkeeping:
	// the filter test only tracks translation precisely, trading some
	// precision under rotated subtrees for a bounded-cost implementation
	// (see DESIGN.md).
	p.inner.Rotate(angle)
}

func (p *PartialRenderer) Translation() (float64, float64) {
	return p.state.translation.X, p.state.translation.Y
}

func (p *PartialRenderer) ApplyOpacity(opacity float64) {
	p.inner.ApplyOpacity(opacity)
}

func (p *PartialRenderer) CombineClip(rect gg.Rect, radius, borderWidth float64) bool {
	translated := offsetRect(rect, p.state.translation)
	clipped, ok := rectIntersect(p.state.clipped, translated)
	if ok {
		p.state.clipped = clipped
	} else {
		p.state.clipped = gg.Rect{}
	}
	return ok && p.inner.CombineClip(rect, radius, borderWidth)
}

func (p *PartialRenderer) GetCurrentClip() gg.Rect {
	return p.state.clipped
}

// --- Pure passthrough. ---

func (p *PartialRenderer) ScaleFactor() float32 { return p.inner.ScaleFactor() }
func (p *PartialRenderer) DrawCachedPixmap(item Item, h *CachedRenderingData, update func(sink PixmapSink)) {
	p.inner.DrawCachedPixmap(item, h, update)
}
func (p *PartialRenderer) DrawString(s string, color gg.RGBA) { p.inner.DrawString(s, color) }
func (p *PartialRenderer) DrawImageDirect(img *gg.ImageBuf)   { p.inner.DrawImageDirect(img) }
func (p *PartialRenderer) Window() Window                     { return p.inner.Window() }
func (p *PartialRenderer) AsAny() any                         { return p.inner.AsAny() }
func (p *PartialRenderer) Metrics() RenderingMetrics           { return p.inner.Metrics() }
