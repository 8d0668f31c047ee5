// Package partial implements the partial-rendering engine of a retained-mode
// scene-graph UI toolkit: dirty-region tracking, per-item geometry caching,
// and a painter-decorator that skips draw calls outside the current frame's
// repaint region.
//
// The package consumes three external capabilities it does not define:
// an item tree (ItemTree/Item), a reactive property system (PropertyTracker/
// TrackerFactory), and a drawing backend (ItemRenderer). A concrete software
// backend wired to this module's own 2D context lives in partial/backend.
package partial
