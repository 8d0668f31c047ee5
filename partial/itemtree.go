package partial

import gg "github.com/gogpu/retained"

// ComponentID is a monotonically-issued identity for a component instance,
// used as a map key in place of raw pointer identity. Callers must hand out
// a fresh, never-reused ComponentID per component instance.
type ComponentID uint64

// ItemKind tags the small, closed set of item variants the core treats
// specially. Anything else is KindOther.
type ItemKind int

const (
	KindOther ItemKind = iota
	KindRectangle
	KindBorderRectangle
	KindImage
	KindText
	KindTextInput
	KindPath
	KindBoxShadow
	KindClip
	KindOpacity
	KindLayer
)

// Item is the per-node capability the item tree exposes to the core. The
// core never mutates an item's visual properties; it only reads geometry
// and the embedded cache handle.
type Item interface {
	Kind() ItemKind

	// Geometry is this item's rect, expressed in its parent's coordinate
	// system.
	Geometry() gg.Rect

	// BoundingRect may extend geometry to cover rendered overflow (e.g. a
	// box shadow or border outside the item's own rect).
	BoundingRect(geometry gg.Rect, window Window) gg.Rect

	// ClipsChildren reports whether this item constrains its children's
	// paint area to its own geometry even though it isn't itself a Clip
	// item (e.g. a scroll viewport).
	ClipsChildren() bool

	// ChildrenTransform returns the affine transform this item imposes on
	// its children beyond a plain translation, if any. Only consulted when
	// the backend advertises transform support.
	ChildrenTransform() (gg.Matrix, bool)

	// CacheHandle returns a pointer to the item's embedded handle so the
	// core can read and overwrite it in place.
	CacheHandle() *CachedRenderingData
}

// ItemTree provides depth-first child visitation over one component's items.
type ItemTree interface {
	ComponentID() ComponentID

	// ChildCount returns how many children index has. index -1 means root.
	ChildCount(index int) int

	// ChildAt returns the child's own subtree (for components that embed
	// other components), the child Item, and the child's index.
	ChildAt(index int, childSlot int) (subtree ItemTree, item Item, itemIndex int)
}

// RootComponent is one of the FrameOrchestrator's roots: a component tree
// placed at a screen-space origin.
type RootComponent struct {
	Tree   ItemTree
	Origin gg.Point
}

// CachedGeometryKind tags which of the three CachedGeometry variants is
// populated.
type CachedGeometryKind int

const (
	// GeometryRegular: bounding rect plus a pure translation offset.
	GeometryRegular CachedGeometryKind = iota
	// GeometryWithTransform: bounding rect plus a full affine transform
	// imposed on children. Only produced when the backend supports it.
	GeometryWithTransform
	// GeometryClip: the item's geometry IS the bound; children are
	// clipped to it.
	GeometryClip
)

// CachedGeometry is the cached record of an item's screen-relative bounding
// rect and the transform it imposes on its children.
type CachedGeometry struct {
	Kind         CachedGeometryKind
	boundingRect gg.Rect
	offset       gg.Point  // GeometryRegular
	transform    gg.Matrix // GeometryWithTransform, or translation-to-origin for GeometryClip
}

// BoundingRect returns the item's screen-relative (pre-transform) bounding
// rect.
func (g CachedGeometry) BoundingRect() gg.Rect { return g.boundingRect }

// Transform returns the affine transform applied to this item's children.
// For GeometryRegular it is a pure translation by offset; for GeometryClip
// it is the translation to the clip's own origin.
func (g CachedGeometry) Transform() gg.Matrix {
	switch g.Kind {
	case GeometryWithTransform, GeometryClip:
		return g.transform
	default:
		return gg.Translate(g.offset.X, g.offset.Y)
	}
}

func newRegularGeometry(bounds gg.Rect, offset gg.Point) CachedGeometry {
	return CachedGeometry{Kind: GeometryRegular, boundingRect: bounds, offset: offset}
}

func newTransformGeometry(bounds gg.Rect, transform gg.Matrix) CachedGeometry {
	return CachedGeometry{Kind: GeometryWithTransform, boundingRect: bounds, transform: transform}
}

func newClipGeometry(geometry gg.Rect) CachedGeometry {
	return CachedGeometry{
		Kind:         GeometryClip,
		boundingRect: geometry,
		transform:    gg.Translate(geometry.Min.X, geometry.Min.Y),
	}
}

// computeGeometry derives an item's CachedGeometry: Clip items are
// special-cased by kind; everything else gets a transform only when the
// backend supports transformations and the item supplies one, falling back
// to a translation-only Regular record.
func computeGeometry(item Item, window Window, supportsTransformations bool) CachedGeometry {
	geometry := item.Geometry()
	if item.Kind() == KindClip {
		return newClipGeometry(geometry)
	}
	if supportsTransformations {
		if t, ok := item.ChildrenTransform(); ok {
			return newTransformGeometry(item.BoundingRect(geometry, window), t)
		}
	}
	return newRegularGeometry(item.BoundingRect(geometry, window), gg.Point{X: geometry.Min.X, Y: geometry.Min.Y})
}
