package partial

// PropertyTracker is a node in the host toolkit's reactive-property
// dependency graph, owned and implemented by the property system; this
// package only calls it.
type PropertyTracker interface {
	// IsDirty reports whether any property read during the last Evaluate
	// has changed since.
	IsDirty() bool

	// Evaluate runs fn with this tracker as the ambient subscriber: every
	// reactive property read during fn edges into it, and it is marked
	// clean on return.
	Evaluate(fn func())

	// EvaluateAsDependencyRoot is like Evaluate but also marks this tracker
	// as a root binding, for reads (like scale factor) that should not
	// attribute to whatever binding is currently ambient.
	EvaluateAsDependencyRoot(fn func())

	// RegisterAsDependencyToCurrentBinding adds this tracker as a
	// dependency of whatever binding is currently being evaluated, without
	// running anything itself. Used when a cached, clean entry is reused.
	RegisterAsDependencyToCurrentBinding()
}

// TrackerFactory mints trackers and provides the ambient no-tracking
// evaluation primitive.
type TrackerFactory interface {
	NewTracker() PropertyTracker

	// EvaluateNoTracking runs fn with tracking suspended: property reads
	// inside fn do not register as dependencies of anything.
	EvaluateNoTracking(fn func())
}

// Window is the subset of window-system integration the core depends on.
type Window interface {
	// ScaleFactor is the device-pixel-to-logical-pixel ratio. Reactive:
	// reading it inside a tracked evaluation registers a dependency.
	ScaleFactor() float32
}

// CachedGraphicsData pairs a cached value with the tracker that recorded
// which reactive properties were read while producing it. A nil tracker
// means the entry has never been evaluated under tracking and should be
// treated as dirty.
type CachedGraphicsData[T any] struct {
	Data    T
	Tracker PropertyTracker
}

// IsDirty reports whether Data needs to be recomputed.
func (c *CachedGraphicsData[T]) IsDirty() bool {
	return c.Tracker == nil || c.Tracker.IsDirty()
}
