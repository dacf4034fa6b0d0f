package systems

import "github.com/pthm-cable/plexus/components"

// Bounds is the centered box particles live in.
// Each axis spans [-Half, +Half]; a zero half-extent pins the axis at 0.
type Bounds struct {
	HalfW, HalfH, HalfD float32
}

// NewBounds creates bounds for a viewport of the given size and depth.
// Negative or NaN dimensions are treated as zero.
func NewBounds(width, height, depth float32) Bounds {
	return Bounds{
		HalfW: nonNegative(width) / 2,
		HalfH: nonNegative(height) / 2,
		HalfD: nonNegative(depth),
	}
}

// Contains reports whether pos lies inside the bounds (inclusive).
func (b Bounds) Contains(pos components.Position) bool {
	return absf(pos.X) <= b.HalfW && absf(pos.Y) <= b.HalfH && absf(pos.Z) <= b.HalfD
}

// Pointer is the pointer position in field coordinates.
// An inactive pointer exerts no force.
type Pointer struct {
	X, Y   float32
	Active bool
}

// Integrate advances pos by vel scaled by the elapsed-time factor.
func Integrate(pos *components.Position, vel components.Velocity, scale float32) {
	pos.X += vel.X * scale
	pos.Y += vel.Y * scale
	pos.Z += vel.Z * scale
}

// Repel pushes pos away from the pointer when it is within radius.
// The push is strength * (radius - distance) along the direction away from
// the pointer. The pointer sits on the z=0 plane, so distance includes depth
// but the push only moves x and y.
func Repel(pos *components.Position, p Pointer, radius, strength float32) {
	if !p.Active || radius <= 0 || strength == 0 {
		return
	}
	dx := pos.X - p.X
	dy := pos.Y - p.Y
	dz := pos.Z
	d := sqrtf(dx*dx + dy*dy + dz*dz)
	if d >= radius || d == 0 {
		return
	}
	push := strength * (radius - d) / d
	pos.X += dx * push
	pos.Y += dy * push
}

// Reflect keeps pos inside b. An axis that crossed its bound is clamped to the
// boundary and its velocity component turned back inward (v -> -v for a
// particle moving outward). A component already pointing inward is left alone
// so a particle pushed out by repulsion does not flip back and forth.
func Reflect(pos *components.Position, vel *components.Velocity, b Bounds) {
	pos.X, vel.X = reflectAxis(pos.X, vel.X, b.HalfW)
	pos.Y, vel.Y = reflectAxis(pos.Y, vel.Y, b.HalfH)
	pos.Z, vel.Z = reflectAxis(pos.Z, vel.Z, b.HalfD)
}

func reflectAxis(p, v, half float32) (float32, float32) {
	switch {
	case p > half:
		p = half
		if v > 0 {
			v = -v
		}
	case p < -half:
		p = -half
		if v < 0 {
			v = -v
		}
	case p != p: // NaN
		p = 0
	}
	return p, v
}
