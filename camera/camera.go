// Package camera maps between screen pixels and field coordinates.
package camera

// Viewport maps the centered, y-up field onto a screen whose origin is the
// top-left corner with y pointing down. Depth is shown with a simple
// perspective: points toward the viewer (z > 0) are drawn larger and further
// from the center.
type Viewport struct {
	// Screen dimensions in pixels
	W, H float32

	// Zoom level (1.0 = one field unit per pixel)
	Zoom float32

	// Perspective focal length; 0 disables perspective
	Focal float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a viewport with 1:1 zoom.
func New(w, h, focal float32) *Viewport {
	return &Viewport{
		W:       w,
		H:       h,
		Zoom:    1.0,
		Focal:   focal,
		MinZoom: 0.25,
		MaxZoom: 4.0,
	}
}

// Perspective returns the scale factor for a point at depth z.
func (v *Viewport) Perspective(z float32) float32 {
	if v.Focal <= 0 {
		return 1
	}
	d := v.Focal - z
	if d < 1 {
		d = 1
	}
	return v.Focal / d
}

// FieldToScreen projects a field point and returns its screen position and
// the size multiplier for radii drawn there.
func (v *Viewport) FieldToScreen(x, y, z float32) (sx, sy, scale float32) {
	scale = v.Zoom * v.Perspective(z)
	sx = v.W/2 + x*scale
	sy = v.H/2 - y*scale
	return sx, sy, scale
}

// ScreenToField converts a screen position to the field's z=0 plane.
func (v *Viewport) ScreenToField(sx, sy float32) (x, y float32) {
	x = (sx - v.W/2) / v.Zoom
	y = (v.H/2 - sy) / v.Zoom
	return x, y
}

// FieldSize returns the extent of the field visible at z=0.
func (v *Viewport) FieldSize() (w, h float32) {
	return v.W / v.Zoom, v.H / v.Zoom
}

// IsVisible returns true if a circle at screen (sx, sy) with the given
// radius could be visible (conservative check for culling).
func (v *Viewport) IsVisible(sx, sy, radius float32) bool {
	return sx >= -radius && sx <= v.W+radius && sy >= -radius && sy <= v.H+radius
}

// Resize updates the screen dimensions. Non-positive sizes clamp to 1.
func (v *Viewport) Resize(w, h float32) {
	v.W = max(w, 1)
	v.H = max(h, 1)
}

// SetZoom sets the zoom level, clamped to min/max.
func (v *Viewport) SetZoom(zoom float32) {
	v.Zoom = clamp(zoom, v.MinZoom, v.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (v *Viewport) ZoomBy(factor float32) {
	v.SetZoom(v.Zoom * factor)
}

// Reset returns the viewport to 1:1 zoom.
func (v *Viewport) Reset() {
	v.Zoom = 1.0
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
