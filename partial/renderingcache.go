package partial

// CachedRenderingData is the handle an item embeds to reference its slot in
// a RenderingCache. The zero value is the default, never-valid handle: every
// slot's generation is drawn from a single cache-wide counter that starts at
// 1 and only ever increases, so a zero generation can never match and no two
// inserts — into a fresh slot, a slot a Remove just freed, or a slot freed in
// bulk by Clear — ever share a generation.
type CachedRenderingData struct {
	index      uint32
	generation uint64
}

type renderingCacheEntry[T any] struct {
	value      T
	generation uint64
	occupied   bool
}

// RenderingCache is a slotted store keyed by (index, generation) handles.
// Clear evicts every entry in O(1) regardless of how many exist; because
// every Insert stamps its slot with a fresh generation, a handle minted
// before the slot was freed can never validate against whatever later
// occupies that slot.
type RenderingCache[T any] struct {
	entries  []renderingCacheEntry[T]
	freeList []uint32
	nextGen  uint64
}

// NewRenderingCache creates an empty cache with a nonzero starting generation.
func NewRenderingCache[T any]() *RenderingCache[T] {
	return &RenderingCache[T]{nextGen: 1}
}

// Generation returns the generation that will be stamped on the next Insert.
func (c *RenderingCache[T]) Generation() uint64 { return c.nextGen }

// Insert stores v and returns the handle referencing it.
func (c *RenderingCache[T]) Insert(v T) CachedRenderingData {
	gen := c.nextGen
	c.nextGen++
	if c.nextGen == 0 {
		c.nextGen = 1 // never let the generation wrap back to the sentinel value
	}

	var idx uint32
	if n := len(c.freeList); n > 0 {
		idx = c.freeList[n-1]
		c.freeList = c.freeList[:n-1]
		c.entries[idx] = renderingCacheEntry[T]{value: v, generation: gen, occupied: true}
	} else {
		idx = uint32(len(c.entries))
		c.entries = append(c.entries, renderingCacheEntry[T]{value: v, generation: gen, occupied: true})
	}
	return CachedRenderingData{index: idx, generation: gen}
}

// Get returns a pointer to the entry h refers to, or (nil, false) if h is
// stale or its slot has been removed or reused.
func (c *RenderingCache[T]) Get(h CachedRenderingData) (*T, bool) {
	if h.generation == 0 || int(h.index) >= len(c.entries) {
		return nil, false
	}
	e := &c.entries[h.index]
	if !e.occupied || e.generation != h.generation {
		return nil, false
	}
	return &e.value, true
}

// Remove evicts the entry h refers to and returns it, if h was still valid.
// The freed slot is stamped with a new generation the next time it's
// reused, so h (and any other outstanding handle into this slot) cannot
// validate against whatever Insert puts there.
func (c *RenderingCache[T]) Remove(h CachedRenderingData) (T, bool) {
	var zero T
	if h.generation == 0 || int(h.index) >= len(c.entries) {
		return zero, false
	}
	e := &c.entries[h.index]
	if !e.occupied || e.generation != h.generation {
		return zero, false
	}
	v := e.value
	*e = renderingCacheEntry[T]{occupied: false}
	c.freeList = append(c.freeList, h.index)
	return v, true
}

// Clear evicts every entry at once and bumps the generation. It does not
// need to touch individual slot generations: any slot a future Insert
// reuses gets a fresh generation off the shared counter, so no handle
// outstanding from before Clear can ever validate again.
func (c *RenderingCache[T]) Clear() {
	c.entries = nil
	c.freeList = nil
	c.nextGen++
	if c.nextGen == 0 {
		c.nextGen = 1
	}
	Logger().Debug("partial: rendering cache cleared", "generation", c.nextGen)
}

// Len returns the number of live (occupied) entries.
func (c *RenderingCache[T]) Len() int {
	return len(c.entries) - len(c.freeList)
}
