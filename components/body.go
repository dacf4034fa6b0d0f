package components

// Body holds the visual properties of a particle.
type Body struct {
	Radius float32
}

// Tint selects a color from the active theme palette.
// Chosen once at spawn; the palette itself is resolved at draw time.
type Tint struct {
	Index uint8
}

// Slot is a particle's stable index within its field.
// Connections name their endpoints by slot.
type Slot struct {
	Index int32
}
