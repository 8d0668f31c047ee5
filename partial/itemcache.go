package partial

import (
	"fmt"
	"sync/atomic"
)

// ItemCacheStats holds cumulative hit/miss/eviction counters for a
// generation-keyed cache: the counters are purely observational and never
// drive eviction policy here.
type ItemCacheStats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

type itemCacheKey struct {
	component ComponentID
	itemIndex int
}

// ItemCache is a backend-facing cache of arbitrary per-item artifacts (e.g.
// uploaded textures, shaped text runs), keyed by stable item identity
// rather than by generation handle. Eviction is explicit: release, a
// component's destruction, a full clear, or a scale-factor change.
type ItemCache[T any] struct {
	entries  map[itemCacheKey]*CachedGraphicsData[T]
	entered  bool
	scaleSet bool
	scale    float32
	tracker  PropertyTracker

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// NewItemCache creates an empty ItemCache.
func NewItemCache[T any]() *ItemCache[T] {
	return &ItemCache[T]{entries: make(map[itemCacheKey]*CachedGraphicsData[T])}
}

// GetOrUpdate returns the cached value for (component, itemIndex) if present
// and clean; otherwise it runs fn under a fresh tracker, installs the
// result, and returns it. fn must not call back into this same ItemCache
// for any key that is absent or dirty, its own or another: such a call
// panics. A re-entrant call that finds a clean entry returns it.
func (c *ItemCache[T]) GetOrUpdate(component ComponentID, itemIndex int, factory TrackerFactory, fn func() T) T {
	key := itemCacheKey{component, itemIndex}
	if e, ok := c.entries[key]; ok && !e.IsDirty() {
		c.hits.Add(1)
		return e.Data
	}
	c.misses.Add(1)

	if c.entered {
		panic(fmt.Sprintf("partial: re-entrant ItemCache access for item %d/%d", component, itemIndex))
	}
	c.entered = true
	tracker := factory.NewTracker()
	var result T
	tracker.Evaluate(func() { result = fn() })
	c.entered = false

	c.entries[key] = &CachedGraphicsData[T]{Data: result, Tracker: tracker}
	return result
}

// WithEntry peeks at the cached value without refreshing it. ok is false if
// absent.
func (c *ItemCache[T]) WithEntry(component ComponentID, itemIndex int, cb func(T)) bool {
	key := itemCacheKey{component, itemIndex}
	e, ok := c.entries[key]
	if !ok {
		return false
	}
	cb(e.Data)
	return true
}

// Release evicts the entry for one item.
func (c *ItemCache[T]) Release(component ComponentID, itemIndex int) {
	key := itemCacheKey{component, itemIndex}
	if _, ok := c.entries[key]; ok {
		delete(c.entries, key)
		c.evictions.Add(1)
	}
}

// ComponentDestroyed evicts every entry belonging to component. Callers
// MUST call this before reusing the ComponentID.
func (c *ItemCache[T]) ComponentDestroyed(component ComponentID) {
	for key := range c.entries {
		if key.component == component {
			delete(c.entries, key)
			c.evictions.Add(1)
		}
	}
}

// ClearAll evicts every entry.
func (c *ItemCache[T]) ClearAll() {
	c.evictions.Add(uint64(len(c.entries)))
	c.entries = make(map[itemCacheKey]*CachedGraphicsData[T])
}

// IsEmpty reports whether the cache holds no entries.
func (c *ItemCache[T]) IsEmpty() bool { return len(c.entries) == 0 }

// ClearCacheIfScaleFactorChanged re-reads window's scale factor under a
// root-binding evaluation and, if it differs from the last observed value
// (or none has been observed yet), clears the whole cache. Scale-dependent
// artifacts are invalidated globally rather than item-by-item.
func (c *ItemCache[T]) ClearCacheIfScaleFactorChanged(window Window, factory TrackerFactory) {
	if c.tracker != nil && !c.tracker.IsDirty() {
		return
	}
	tracker := factory.NewTracker()
	var scale float32
	tracker.EvaluateAsDependencyRoot(func() { scale = window.ScaleFactor() })

	if !c.scaleSet || scale != c.scale {
		Logger().Warn("partial: scale factor changed, flushing item cache", "old", c.scale, "new", scale)
		c.ClearAll()
	}
	c.tracker = tracker
	c.scale = scale
	c.scaleSet = true
}

// Stats returns lifetime hit/miss/eviction counters. They are cumulative
// and are not reset by ClearAll or a scale-factor flush.
func (c *ItemCache[T]) Stats() ItemCacheStats {
	return ItemCacheStats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}
