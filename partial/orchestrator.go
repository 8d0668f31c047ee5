package partial

import gg "github.com/gogpu/retained"

// FrameOrchestrator holds the persistent per-window rendering cache across
// frames and glues the dirty-region pass to the render pass.
type FrameOrchestrator struct {
	geometryCache           *RenderingCache[CachedGraphicsData[CachedGeometry]]
	supportsTransformations bool

	forceDirty         DirtyRegion
	forceScreenRefresh bool
	backBufferDirty    DirtyRegion
}

// NewFrameOrchestrator creates an orchestrator with a fresh, empty cache.
func NewFrameOrchestrator(opts ...OrchestratorOption) *FrameOrchestrator {
	o := defaultOrchestratorOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &FrameOrchestrator{
		geometryCache:           NewRenderingCache[CachedGraphicsData[CachedGeometry]](),
		supportsTransformations: o.supportsTransformations,
	}
}

// MarkDirtyRegion unions r into the dirty rectangles forced on the next
// frame, e.g. for externally reported damage.
func (f *FrameOrchestrator) MarkDirtyRegion(r gg.Rect) {
	f.forceDirty.AddRect(r)
}

// FreeGraphicsResources releases items' cache entries and forces a full
// screen refresh next frame, since their prior screen-space positions are
// no longer known to be valid.
func (f *FrameOrchestrator) FreeGraphicsResources(items []Item) {
	for _, item := range items {
		handle := item.CacheHandle()
		f.geometryCache.Remove(*handle)
		*handle = CachedRenderingData{}
	}
	f.forceScreenRefresh = true
}

// ClearCache resets the whole persistent cache, bumping its generation so
// every handle issued before the call stops resolving.
func (f *FrameOrchestrator) ClearCache() {
	f.geometryCache.Clear()
}

// RenderFrame runs one full frame: dirty-region pass, force-refresh
// overrides, then the render pass, returning the region actually repainted
// (what the caller should present/swap).
func (f *FrameOrchestrator) RenderFrame(roots []RootComponent, windowSize gg.Point, trackers TrackerFactory, window Window, backend ItemRenderer) DirtyRegion {
	seed := f.forceDirty
	f.forceDirty = DirtyRegion{}

	pass := NewDirtyRegionPass(f.geometryCache, trackers, window, f.supportsTransformations, seed)
	dirty := pass.Run(roots, windowSize)

	if f.forceScreenRefresh {
		f.forceScreenRefresh = false
		dirty = DirtyRegionFromRect(gg.NewRect(gg.Point{}, gg.Point{X: windowSize.X, Y: windowSize.Y}))
		Logger().Debug("partial: force_screen_refresh consumed, repainting full window")
	}

	regionToRepaint := dirty

	effective := dirty
	effective.Union(f.backBufferDirty)
	windowRect := gg.NewRect(gg.Point{}, gg.Point{X: windowSize.X, Y: windowSize.Y})
	effective = effective.Intersection(windowRect)

	renderer := NewPartialRenderer(backend, f.geometryCache, trackers, window, f.supportsTransformations, effective, windowRect)
	renderer.RenderItems(roots)

	return regionToRepaint
}

// SetBackBufferDirty records dirtiness carried over from a prior frame due
// to double-buffering (the back buffer being repainted on top of content
// older than the current frame).
func (f *FrameOrchestrator) SetBackBufferDirty(r DirtyRegion) {
	f.backBufferDirty = r
}
