// Package backend provides a concrete partial.ItemRenderer wired to gg's
// software rasterizer, so a caller can drive partial.FrameOrchestrator
// against a real Context/Pixmap instead of a test double.
package backend
