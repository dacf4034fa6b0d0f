// Package renderer draws the particle field and effects onto a Surface.
package renderer

import "image/color"

// Surface is a 2D drawing target. Coordinates are screen pixels with the
// origin at the top-left corner.
type Surface interface {
	// Begin starts a frame.
	Begin()
	// Fade paints the whole surface with c. An opaque color clears it; a
	// translucent one leaves a fading image of previous frames.
	Fade(c color.RGBA)
	Point(x, y, r float32, c color.RGBA)
	Line(x1, y1, x2, y2 float32, c color.RGBA)
	// End presents the frame.
	End()
	Size() (w, h int)
	Close() error
}

// WithAlpha returns c with its alpha replaced by a in [0, 1].
func WithAlpha(c color.RGBA, a float32) color.RGBA {
	switch {
	case a <= 0:
		c.A = 0
	case a >= 1:
		c.A = 255
	default:
		c.A = uint8(a * 255)
	}
	return c
}
