package partial

import gg "github.com/gogpu/retained"

// fakeTracker is a minimal PropertyTracker: dirty until the next Evaluate.
type fakeTracker struct {
	dirty bool
}

func (t *fakeTracker) IsDirty() bool { return t.dirty }
func (t *fakeTracker) Evaluate(fn func()) {
	fn()
	t.dirty = false
}
func (t *fakeTracker) EvaluateAsDependencyRoot(fn func()) { t.Evaluate(fn) }
func (t *fakeTracker) RegisterAsDependencyToCurrentBinding() {}

// fakeTrackerFactory mints fakeTrackers and runs EvaluateNoTracking plainly.
type fakeTrackerFactory struct{}

func (fakeTrackerFactory) NewTracker() PropertyTracker   { return &fakeTracker{} }
func (fakeTrackerFactory) EvaluateNoTracking(fn func())  { fn() }

// fakeWindow implements Window with a fixed, settable scale factor.
type fakeWindow struct {
	scale float32
}

func (w *fakeWindow) ScaleFactor() float32 { return w.scale }

// fakeItem is a minimal Item.
type fakeItem struct {
	kind           ItemKind
	geom           gg.Rect
	bound          *gg.Rect // nil means "same as geom"
	clipsChildren  bool
	childTransform gg.Matrix
	hasTransform   bool
	opacity        float64
	handle         CachedRenderingData
}

func (it *fakeItem) Kind() ItemKind { return it.kind }
func (it *fakeItem) Geometry() gg.Rect { return it.geom }
func (it *fakeItem) BoundingRect(geometry gg.Rect, window Window) gg.Rect {
	if it.bound != nil {
		return *it.bound
	}
	return geometry
}
func (it *fakeItem) ClipsChildren() bool { return it.clipsChildren }
func (it *fakeItem) ChildrenTransform() (gg.Matrix, bool) { return it.childTransform, it.hasTransform }
func (it *fakeItem) CacheHandle() *CachedRenderingData    { return &it.handle }
func (it *fakeItem) Opacity() float64                     { return it.opacity }

// fakeTree is a single-component tree: a flat set of items addressed by
// index, with a parent -> ordered child-index adjacency list.
type fakeTree struct {
	id       ComponentID
	nodes    map[int]*fakeItem
	children map[int][]int
}

func newFakeTree(id ComponentID) *fakeTree {
	return &fakeTree{id: id, nodes: map[int]*fakeItem{}, children: map[int][]int{}}
}

// addChild attaches item as the next child of parentIndex (-1 for root) at
// the given itemIndex, returning that index.
func (t *fakeTree) addChild(parentIndex int, itemIndex int, item *fakeItem) {
	t.nodes[itemIndex] = item
	t.children[parentIndex] = append(t.children[parentIndex], itemIndex)
}

func (t *fakeTree) ComponentID() ComponentID { return t.id }
func (t *fakeTree) ChildCount(index int) int { return len(t.children[index]) }
func (t *fakeTree) ChildAt(index int, slot int) (ItemTree, Item, int) {
	childIdx := t.children[index][slot]
	return t, t.nodes[childIdx], childIdx
}

func rect(x, y, w, h float64) gg.Rect {
	return gg.NewRect(gg.Point{X: x, Y: y}, gg.Point{X: x + w, Y: y + h})
}
