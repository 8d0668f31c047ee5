package partial

import (
	"math"

	gg "github.com/gogpu/retained"
)

// rectEmpty reports whether r has zero or negative area.
func rectEmpty(r gg.Rect) bool {
	return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y
}

// rectContains reports whether outer fully contains inner.
func rectContains(outer, inner gg.Rect) bool {
	if rectEmpty(inner) {
		return true
	}
	return inner.Min.X >= outer.Min.X && inner.Min.Y >= outer.Min.Y &&
		inner.Max.X <= outer.Max.X && inner.Max.Y <= outer.Max.Y
}

// rectIntersect returns the overlap of a and b, and whether it is non-empty.
func rectIntersect(a, b gg.Rect) (gg.Rect, bool) {
	r := gg.Rect{
		Min: gg.Point{X: math.Max(a.Min.X, b.Min.X), Y: math.Max(a.Min.Y, b.Min.Y)},
		Max: gg.Point{X: math.Min(a.Max.X, b.Max.X), Y: math.Min(a.Max.Y, b.Max.Y)},
	}
	return r, !rectEmpty(r)
}

// rectIntersectOrEmpty is rectIntersect without the ok flag; a non-overlapping
// pair collapses to the zero rect, which rectEmpty treats as empty.
func rectIntersectOrEmpty(a, b gg.Rect) gg.Rect {
	r, ok := rectIntersect(a, b)
	if !ok {
		return gg.Rect{}
	}
	return r
}

func rectArea(r gg.Rect) float64 {
	if rectEmpty(r) {
		return 0
	}
	return r.Width() * r.Height()
}

// transformRect maps r through m and returns the axis-aligned bounding box
// of the four transformed corners (an "outer transform").
func transformRect(m gg.Matrix, r gg.Rect) gg.Rect {
	if rectEmpty(r) {
		return gg.Rect{}
	}
	corners := [4]gg.Point{
		m.TransformPoint(gg.Point{X: r.Min.X, Y: r.Min.Y}),
		m.TransformPoint(gg.Point{X: r.Max.X, Y: r.Min.Y}),
		m.TransformPoint(gg.Point{X: r.Max.X, Y: r.Max.Y}),
		m.TransformPoint(gg.Point{X: r.Min.X, Y: r.Max.Y}),
	}
	out := gg.NewRect(corners[0], corners[0])
	for _, p := range corners[1:] {
		out = out.Union(gg.NewRect(p, p))
	}
	return out
}

func matricesEqual(a, b gg.Matrix) bool {
	return a.A == b.A && a.B == b.B && a.C == b.C && a.D == b.D && a.E == b.E && a.F == b.F
}

// offsetRect translates r by d.
func offsetRect(r gg.Rect, d gg.Point) gg.Rect {
	return gg.Rect{
		Min: gg.Point{X: r.Min.X + d.X, Y: r.Min.Y + d.Y},
		Max: gg.Point{X: r.Max.X + d.X, Y: r.Max.Y + d.Y},
	}
}
