package renderer

import (
	"image/color"
	"sync"
)

// RecordedLine is one Line call.
type RecordedLine struct {
	X1, Y1, X2, Y2 float32
	Color          color.RGBA
}

// RecordedPoint is one Point call.
type RecordedPoint struct {
	X, Y, R float32
	Color   color.RGBA
}

// RecordingSurface records draw calls instead of drawing. The headless host
// uses it to count work; tests use it as a spy.
// Safe for concurrent use.
type RecordingSurface struct {
	mu     sync.Mutex
	w, h   int
	frames int
	fades  int
	points []RecordedPoint
	lines  []RecordedLine
	total  int // draw calls across all frames
	closed int
}

// NewRecordingSurface creates a recorder reporting the given size.
func NewRecordingSurface(w, h int) *RecordingSurface {
	return &RecordingSurface{w: w, h: h}
}

// Begin clears the per-frame record.
func (r *RecordingSurface) Begin() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.points = r.points[:0]
	r.lines = r.lines[:0]
}

// Fade implements Surface.
func (r *RecordingSurface) Fade(color.RGBA) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fades++
	r.total++
}

// Point implements Surface.
func (r *RecordingSurface) Point(x, y, radius float32, c color.RGBA) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.points = append(r.points, RecordedPoint{X: x, Y: y, R: radius, Color: c})
	r.total++
}

// Line implements Surface.
func (r *RecordingSurface) Line(x1, y1, x2, y2 float32, c color.RGBA) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, RecordedLine{X1: x1, Y1: y1, X2: x2, Y2: y2, Color: c})
	r.total++
}

// End counts a presented frame.
func (r *RecordingSurface) End() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames++
}

// Size implements Surface.
func (r *RecordingSurface) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.w, r.h
}

// Resize changes the reported size.
func (r *RecordingSurface) Resize(w, h int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.w, r.h = w, h
}

// Close implements Surface.
func (r *RecordingSurface) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed++
	return nil
}

// Lines returns the lines drawn since the last Begin.
func (r *RecordingSurface) Lines() []RecordedLine {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RecordedLine(nil), r.lines...)
}

// Points returns the points drawn since the last Begin.
func (r *RecordingSurface) Points() []RecordedPoint {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RecordedPoint(nil), r.points...)
}

// DrawCalls returns the total number of Fade, Point and Line calls.
func (r *RecordingSurface) DrawCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total
}

// Frames returns the number of End calls.
func (r *RecordingSurface) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// Closed returns how many times Close was called.
func (r *RecordingSurface) Closed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}
