package components

// Position represents a particle's position in field coordinates.
// The field is centered on the origin; Z is zero for flat fields.
type Position struct {
	X, Y, Z float32
}

// Velocity represents a particle's velocity in field units per 60Hz frame.
type Velocity struct {
	X, Y, Z float32
}

// DistSq returns the squared Euclidean distance between two positions.
func (p Position) DistSq(o Position) float32 {
	dx := p.X - o.X
	dy := p.Y - o.Y
	dz := p.Z - o.Z
	return dx*dx + dy*dy + dz*dz
}
