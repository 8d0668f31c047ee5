package partial

import gg "github.com/gogpu/retained"

// dirtyPassState is threaded parent-to-child during the dirty-region walk.
type dirtyPassState struct {
	transformToScreen    gg.Matrix
	oldTransformToScreen gg.Matrix
	clipped              gg.Rect
	mustRefreshChildren  bool
}

// DirtyRegionPass walks an item tree comparing previously-cached against
// freshly-computed geometry, accumulating the screen rectangles that need
// repainting and refreshing stale cache entries it can resolve without a
// backend (geometry only; draw-call refresh is the render pass's job).
type DirtyRegionPass struct {
	geometryCache           *RenderingCache[CachedGraphicsData[CachedGeometry]]
	trackers                TrackerFactory
	window                  Window
	supportsTransformations bool
	region                  DirtyRegion
}

// NewDirtyRegionPass creates a pass over geometryCache, seeded with an
// initial dirty region (e.g. a caller's force_dirty rectangles).
func NewDirtyRegionPass(geometryCache *RenderingCache[CachedGraphicsData[CachedGeometry]], trackers TrackerFactory, window Window, supportsTransformations bool, seed DirtyRegion) *DirtyRegionPass {
	return &DirtyRegionPass{
		geometryCache:           geometryCache,
		trackers:                trackers,
		window:                  window,
		supportsTransformations: supportsTransformations,
		region:                  seed,
	}
}

// Run walks every root and returns the accumulated dirty region.
func (p *DirtyRegionPass) Run(roots []RootComponent, windowSize gg.Point) DirtyRegion {
	windowRect := gg.NewRect(gg.Point{}, gg.Point{X: windowSize.X, Y: windowSize.Y})
	for _, root := range roots {
		origin := gg.Translate(root.Origin.X, root.Origin.Y)
		state := dirtyPassState{
			transformToScreen:    origin,
			oldTransformToScreen: origin,
			clipped:              windowRect,
		}
		p.walk(root.Tree, -1, state)
	}
	return p.region
}

func (p *DirtyRegionPass) walk(tree ItemTree, startIndex int, parent dirtyPassState) {
	n := tree.ChildCount(startIndex)
	for i := 0; i < n; i++ {
		subtree, item, itemIndex := tree.ChildAt(startIndex, i)
		childState := p.visit(item, parent)
		p.walk(subtree, itemIndex, childState)
	}
}

func (p *DirtyRegionPass) visit(item Item, parent dirtyPassState) dirtyPassState {
	handle := item.CacheHandle()
	entry, present := p.geometryCache.Get(*handle)

	switch {
	case present && !entry.IsDirty():
		return p.visitClean(item, parent, entry)
	case present:
		return p.visitDirty(item, parent, entry)
	default:
		return p.visitAbsent(item, parent)
	}
}

func (p *DirtyRegionPass) visitClean(item Item, parent dirtyPassState, entry *CachedGraphicsData[CachedGeometry]) dirtyPassState {
	if entry.Tracker != nil {
		entry.Tracker.RegisterAsDependencyToCurrentBinding()
	}
	geom := entry.Data

	moved := parent.mustRefreshChildren || !matricesEqual(parent.transformToScreen, parent.oldTransformToScreen)
	if moved {
		p.markDirty(geom.BoundingRect(), parent.oldTransformToScreen, parent.clipped)
		p.markDirty(geom.BoundingRect(), parent.transformToScreen, parent.clipped)
	}

	childClipped := parent.clipped
	if geom.Kind == GeometryClip {
		childClipped = p.clipUnion(geom.BoundingRect(), parent.oldTransformToScreen, geom.BoundingRect(), parent.transformToScreen, parent.clipped)
	}

	childTransform := geom.Transform()
	return dirtyPassState{
		transformToScreen:    parent.transformToScreen.Multiply(childTransform),
		oldTransformToScreen: parent.oldTransformToScreen.Multiply(childTransform),
		clipped:              childClipped,
		mustRefreshChildren:  parent.mustRefreshChildren,
	}
}

func (p *DirtyRegionPass) visitDirty(item Item, parent dirtyPassState, entry *CachedGraphicsData[CachedGeometry]) dirtyPassState {
	oldGeom := entry.Data
	var newGeom CachedGeometry
	p.trackers.EvaluateNoTracking(func() {
		newGeom = computeGeometry(item, p.window, p.supportsTransformations)
	})

	p.markDirty(oldGeom.BoundingRect(), parent.oldTransformToScreen, parent.clipped)
	p.markDirty(newGeom.BoundingRect(), parent.transformToScreen, parent.clipped)

	forceChildren := parent.mustRefreshChildren
	if item.Kind() == KindClip || item.Kind() == KindOpacity {
		forceChildren = true
	}

	childClipped := parent.clipped
	if oldGeom.Kind == GeometryClip || newGeom.Kind == GeometryClip {
		childClipped = p.clipUnion(oldGeom.BoundingRect(), parent.oldTransformToScreen, newGeom.BoundingRect(), parent.transformToScreen, parent.clipped)
	}

	// The render pass re-establishes tracking; store the new geometry
	// untracked for now.
	*entry = CachedGraphicsData[CachedGeometry]{Data: newGeom}

	return dirtyPassState{
		transformToScreen:    parent.transformToScreen.Multiply(newGeom.Transform()),
		oldTransformToScreen: parent.oldTransformToScreen.Multiply(oldGeom.Transform()),
		clipped:              childClipped,
		mustRefreshChildren:  forceChildren,
	}
}

func (p *DirtyRegionPass) visitAbsent(item Item, parent dirtyPassState) dirtyPassState {
	var newGeom CachedGeometry
	p.trackers.EvaluateNoTracking(func() {
		newGeom = computeGeometry(item, p.window, p.supportsTransformations)
	})
	p.markDirty(newGeom.BoundingRect(), parent.transformToScreen, parent.clipped)

	childClipped := parent.clipped
	if newGeom.Kind == GeometryClip {
		childClipped = rectIntersectOrEmpty(parent.clipped, transformRect(parent.transformToScreen, newGeom.BoundingRect()))
	}

	childTransform := parent.transformToScreen.Multiply(newGeom.Transform())
	// No prior frame exists for this item: both chains start identical.
	// Insertion into geometryCache happens in the render pass.
	return dirtyPassState{
		transformToScreen:    childTransform,
		oldTransformToScreen: childTransform,
		clipped:              childClipped,
		mustRefreshChildren:  parent.mustRefreshChildren,
	}
}

// clipUnion intersects clipped with the union of a clip item's geometry
// transformed under both the old and new chains, covering pre- and
// post-move clip extents.
func (p *DirtyRegionPass) clipUnion(oldRect gg.Rect, oldTransform gg.Matrix, newRect gg.Rect, newTransform gg.Matrix, clipped gg.Rect) gg.Rect {
	old := transformRect(oldTransform, oldRect)
	new_ := transformRect(newTransform, newRect)
	return rectIntersectOrEmpty(clipped, old.Union(new_))
}

// markDirty outer-transforms rect by transform, intersects with clipped,
// and adds the result to the accumulated region if non-empty.
func (p *DirtyRegionPass) markDirty(rect gg.Rect, transform gg.Matrix, clipped gg.Rect) {
	if rectEmpty(rect) {
		return
	}
	screen := transformRect(transform, rect)
	clippedRect, ok := rectIntersect(screen, clipped)
	if !ok {
		return
	}
	p.region.AddRect(clippedRect)
}
