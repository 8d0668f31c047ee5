package partial

import (
	"math"

	gg "github.com/gogpu/retained"
)

// maxDirtyRects bounds DirtyRegion's storage so membership tests stay O(1).
// Do not raise this to chase precision: the hot path (one test per draw
// call) dominates any savings from a tighter union. See add's min-area-growth
// heuristic below.
const maxDirtyRects = 3

// DirtyRegion is a bounded-count union of axis-aligned screen rectangles.
// It never stores an empty rect or a rect already covered by another stored
// rect; once full, a new rect is merged into whichever stored rect grows the
// least.
type DirtyRegion struct {
	boxes [maxDirtyRects]gg.Rect
	count int
}

// DirtyRegionFromRect seeds a region with a single rect.
func DirtyRegionFromRect(r gg.Rect) DirtyRegion {
	var d DirtyRegion
	d.AddRect(r)
	return d
}

// AddRect merges box into the region, preserving the no-empty /
// no-contained-duplicate / bounded-count invariants.
func (d *DirtyRegion) AddRect(box gg.Rect) {
	if rectEmpty(box) {
		return
	}
	for i := 0; i < d.count; i++ {
		if rectContains(d.boxes[i], box) {
			return
		}
	}

	write := 0
	for i := 0; i < d.count; i++ {
		if rectContains(box, d.boxes[i]) {
			continue
		}
		d.boxes[write] = d.boxes[i]
		write++
	}
	d.count = write

	if d.count < maxDirtyRects {
		d.boxes[d.count] = box
		d.count++
		return
	}

	bestIdx := 0
	bestGrowth := math.Inf(1)
	for i := 0; i < d.count; i++ {
		union := d.boxes[i].Union(box)
		growth := rectArea(union) - rectArea(d.boxes[i])
		if growth < bestGrowth {
			bestGrowth = growth
			bestIdx = i
		}
	}
	merged := d.boxes[bestIdx].Union(box)
	write = 0
	for i := 0; i < d.count; i++ {
		if i == bestIdx {
			d.boxes[write] = merged
		} else if rectContains(merged, d.boxes[i]) {
			continue
		} else {
			d.boxes[write] = d.boxes[i]
		}
		write++
	}
	d.count = write
	Logger().Debug("partial: dirty region at capacity, merged into superset", "index", bestIdx)
}

// Union folds other's boxes into d via AddRect.
func (d *DirtyRegion) Union(other DirtyRegion) {
	for i := 0; i < other.count; i++ {
		d.AddRect(other.boxes[i])
	}
}

// Intersection returns a new region with every stored box intersected with r.
func (d DirtyRegion) Intersection(r gg.Rect) DirtyRegion {
	var out DirtyRegion
	for i := 0; i < d.count; i++ {
		if ir, ok := rectIntersect(d.boxes[i], r); ok {
			out.boxes[out.count] = ir
			out.count++
		}
	}
	return out
}

// BoundingRect returns the union of every stored box. The zero rect is
// returned when the region is empty.
func (d DirtyRegion) BoundingRect() gg.Rect {
	if d.count == 0 {
		return gg.Rect{}
	}
	r := d.boxes[0]
	for i := 1; i < d.count; i++ {
		r = r.Union(d.boxes[i])
	}
	return r
}

// DrawIntersects reports whether box overlaps any stored rect.
func (d DirtyRegion) DrawIntersects(box gg.Rect) bool {
	for i := 0; i < d.count; i++ {
		if _, ok := rectIntersect(d.boxes[i], box); ok {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the region holds no rectangles.
func (d DirtyRegion) IsEmpty() bool { return d.count == 0 }

// Count returns the number of stored rectangles (at most maxDirtyRects).
func (d DirtyRegion) Count() int { return d.count }

// Reset empties the region in place.
func (d *DirtyRegion) Reset() { d.count = 0 }
