package partial

import (
	"testing"

	gg "github.com/gogpu/retained"
)

// noopBackend is a minimal ItemRenderer that records nothing and draws
// nothing; it exists only to exercise FrameOrchestrator/PartialRenderer
// wiring in tests.
type noopBackend struct {
	window Window
	drawn  []string
}

func (b *noopBackend) DrawRectangle(item Item, size gg.Rect, h *CachedRenderingData) {
	b.drawn = append(b.drawn, "rect")
}
func (b *noopBackend) DrawBorderRectangle(item Item, size gg.Rect, h *CachedRenderingData) {}
func (b *noopBackend) DrawWindowBackground(item Item, size gg.Rect, h *CachedRenderingData) {}
func (b *noopBackend) DrawImage(item Item, size gg.Rect, h *CachedRenderingData)            {}
func (b *noopBackend) DrawText(item Item, size gg.Rect, h *CachedRenderingData)             {}
func (b *noopBackend) DrawTextInput(item Item, size gg.Rect, h *CachedRenderingData)        {}
func (b *noopBackend) DrawPath(item Item, size gg.Rect, h *CachedRenderingData)             {}
func (b *noopBackend) DrawBoxShadow(item Item, size gg.Rect, h *CachedRenderingData)        {}
func (b *noopBackend) VisitClip(item Item, h *CachedRenderingData) RenderingResult {
	return ContinueRenderingChildren
}
func (b *noopBackend) VisitOpacity(item Item, opacity float64, h *CachedRenderingData) RenderingResult {
	return ContinueRenderingChildren
}
func (b *noopBackend) VisitLayer(item Item, h *CachedRenderingData) RenderingResult {
	return ContinueRenderingChildren
}
func (b *noopBackend) SaveState()                  {}
func (b *noopBackend) RestoreState()               {}
func (b *noopBackend) Translate(x, y float64)      {}
func (b *noopBackend) Rotate(angle float64)        {}
func (b *noopBackend) Translation() (float64, float64) { return 0, 0 }
func (b *noopBackend) ApplyOpacity(opacity float64) {}
func (b *noopBackend) CombineClip(r gg.Rect, radius, borderWidth float64) bool { return true }
func (b *noopBackend) GetCurrentClip() gg.Rect                                 { return gg.Rect{} }
func (b *noopBackend) ScaleFactor() float32                                   { return 1 }
func (b *noopBackend) DrawCachedPixmap(item Item, h *CachedRenderingData, update func(sink PixmapSink)) {
}
func (b *noopBackend) DrawString(s string, color gg.RGBA)  {}
func (b *noopBackend) DrawImageDirect(img *gg.ImageBuf)     {}
func (b *noopBackend) Window() Window                       { return b.window }
func (b *noopBackend) AsAny() any                           { return b }
func (b *noopBackend) Metrics() RenderingMetrics             { return RenderingMetrics{} }

func TestFrameOrchestratorSecondFrameWithNoChangesIsEmpty(t *testing.T) {
	tree := newFakeTree(1)
	item := &fakeItem{kind: KindRectangle, geom: rect(0, 0, 10, 10)}
	tree.addChild(-1, 0, item)

	window := &fakeWindow{scale: 1}
	backend := &noopBackend{window: window}
	factory := fakeTrackerFactory{}
	orch := NewFrameOrchestrator()
	roots := []RootComponent{{Tree: tree, Origin: gg.Point{}}}
	size := gg.Point{X: 100, Y: 100}

	first := orch.RenderFrame(roots, size, factory, window, backend)
	if first.IsEmpty() {
		t.Fatalf("expected first frame to repaint the newly inserted item")
	}

	second := orch.RenderFrame(roots, size, factory, window, backend)
	if !second.IsEmpty() {
		t.Fatalf("expected second frame with no changes to repaint nothing, got %+v", second.BoundingRect())
	}
}

func TestFrameOrchestratorForceScreenRefresh(t *testing.T) {
	tree := newFakeTree(1)
	item := &fakeItem{kind: KindRectangle, geom: rect(0, 0, 10, 10)}
	tree.addChild(-1, 0, item)

	window := &fakeWindow{scale: 1}
	backend := &noopBackend{window: window}
	factory := fakeTrackerFactory{}
	orch := NewFrameOrchestrator()
	roots := []RootComponent{{Tree: tree, Origin: gg.Point{}}}
	size := gg.Point{X: 100, Y: 100}

	orch.RenderFrame(roots, size, factory, window, backend)
	orch.FreeGraphicsResources([]Item{item})

	region := orch.RenderFrame(roots, size, factory, window, backend)
	want := gg.NewRect(gg.Point{}, gg.Point{X: size.X, Y: size.Y})
	if region.BoundingRect() != want {
		t.Fatalf("expected forced full-window repaint %+v, got %+v", want, region.BoundingRect())
	}
}

func TestFrameOrchestratorMarkDirtyRegionForcesNextFrame(t *testing.T) {
	tree := newFakeTree(1)
	window := &fakeWindow{scale: 1}
	backend := &noopBackend{window: window}
	factory := fakeTrackerFactory{}
	orch := NewFrameOrchestrator()
	roots := []RootComponent{{Tree: tree, Origin: gg.Point{}}}
	size := gg.Point{X: 100, Y: 100}

	orch.RenderFrame(roots, size, factory, window, backend)

	damage := rect(5, 5, 20, 20)
	orch.MarkDirtyRegion(damage)
	region := orch.RenderFrame(roots, size, factory, window, backend)
	if !rectContains(region.BoundingRect(), damage) {
		t.Fatalf("expected forced dirty rect %+v to appear in repaint region %+v", damage, region.BoundingRect())
	}
}
