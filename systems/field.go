package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/plexus/components"
	"github.com/pthm-cable/plexus/config"
)

// FieldConfig holds the parameters of one particle field.
// Distances are in field units (screen pixels for the shipped hosts).
type FieldConfig struct {
	Width, Height     float32
	Depth             float32
	MaxSpeed          float32
	MinRadius         float32
	MaxRadius         float32
	RepulsionRadius   float32
	RepulsionStrength float32
	FrameScale        float32 // dt multiplier; velocities are per 1/FrameScale s
	MaxStep           float32 // largest dt accepted by Step
	GridThreshold     int     // use the spatial grid above this many particles
	PaletteSize       int
}

// FieldConfigFrom builds a FieldConfig from the loaded configuration for a
// viewport of the given size.
func FieldConfigFrom(cfg *config.Config, width, height float32, paletteSize int) FieldConfig {
	f := cfg.Field
	return FieldConfig{
		Width:             width,
		Height:            height,
		Depth:             float32(f.Depth),
		MaxSpeed:          float32(f.MaxSpeed),
		MinRadius:         float32(f.MinRadius),
		MaxRadius:         float32(f.MaxRadius),
		RepulsionRadius:   float32(f.RepulsionRadius),
		RepulsionStrength: float32(f.RepulsionStrength),
		FrameScale:        float32(f.FrameScale),
		MaxStep:           float32(f.MaxStep),
		GridThreshold:     f.GridThreshold,
		PaletteSize:       paletteSize,
	}
}

// Particle is a read-only snapshot of one particle.
type Particle struct {
	Pos    components.Position
	Vel    components.Velocity
	Radius float32
	Tint   uint8
}

// Field is a set of particles stored in an ark world.
// It is not safe for concurrent use; the host loop owns it.
type Field struct {
	world  *ecs.World
	mapper *ecs.Map5[
		components.Position,
		components.Velocity,
		components.Body,
		components.Tint,
		components.Slot,
	]
	filter *ecs.Filter5[
		components.Position,
		components.Velocity,
		components.Body,
		components.Tint,
		components.Slot,
	]
	posMap   *ecs.Map1[components.Position]
	velMap   *ecs.Map1[components.Velocity]
	entities []ecs.Entity

	cfg    FieldConfig
	bounds Bounds
	rng    *rand.Rand

	// Slot-indexed snapshots refreshed after every mutation
	particles []Particle
	positions []components.Position

	grid    *SpatialGrid
	scratch []int32
}

// NewField creates an empty field. A nil rng uses a fixed seed.
func NewField(cfg FieldConfig, rng *rand.Rand) *Field {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if cfg.FrameScale <= 0 {
		cfg.FrameScale = 60
	}
	if cfg.MaxStep <= 0 {
		cfg.MaxStep = 0.1
	}
	if cfg.MaxRadius < cfg.MinRadius {
		cfg.MaxRadius = cfg.MinRadius
	}

	world := ecs.NewWorld()
	return &Field{
		world: world,
		mapper: ecs.NewMap5[
			components.Position,
			components.Velocity,
			components.Body,
			components.Tint,
			components.Slot,
		](world),
		filter: ecs.NewFilter5[
			components.Position,
			components.Velocity,
			components.Body,
			components.Tint,
			components.Slot,
		](world),
		posMap: ecs.NewMap1[components.Position](world),
		velMap: ecs.NewMap1[components.Velocity](world),
		cfg:    cfg,
		bounds: NewBounds(cfg.Width, cfg.Height, cfg.Depth),
		rng:    rng,
	}
}

// Spawn adds n particles at uniform random positions inside the bounds.
// Negative n is treated as 0.
func (f *Field) Spawn(n int) {
	for i := 0; i < n; i++ {
		pos := components.Position{
			X: f.uniform(f.bounds.HalfW),
			Y: f.uniform(f.bounds.HalfH),
			Z: f.uniform(f.bounds.HalfD),
		}
		vel := components.Velocity{
			X: (f.rng.Float32() - 0.5) * f.cfg.MaxSpeed,
			Y: (f.rng.Float32() - 0.5) * f.cfg.MaxSpeed,
		}
		if f.bounds.HalfD > 0 {
			vel.Z = (f.rng.Float32() - 0.5) * f.cfg.MaxSpeed
		}
		radius := f.cfg.MinRadius + f.rng.Float32()*(f.cfg.MaxRadius-f.cfg.MinRadius)

		var tint uint8
		if f.cfg.PaletteSize > 0 {
			tint = uint8(f.rng.Intn(f.cfg.PaletteSize))
		}
		f.add(pos, vel, radius, tint)
	}
}

// Add inserts one particle with an explicit position and velocity and
// returns its slot, or -1 once the field has been discarded.
func (f *Field) Add(pos components.Position, vel components.Velocity) int {
	return f.add(pos, vel, f.cfg.MinRadius, 0)
}

func (f *Field) add(pos components.Position, vel components.Velocity, radius float32, tint uint8) int {
	if f.world == nil {
		return -1
	}
	slot := int32(len(f.particles))
	body := components.Body{Radius: radius}
	t := components.Tint{Index: tint}
	s := components.Slot{Index: slot}
	e := f.mapper.NewEntity(&pos, &vel, &body, &t, &s)
	f.entities = append(f.entities, e)

	f.particles = append(f.particles, Particle{Pos: pos, Vel: vel, Radius: radius, Tint: tint})
	f.positions = append(f.positions, pos)
	return int(slot)
}

// Place moves the particle in slot to pos with velocity vel.
// Out-of-range slots are ignored.
func (f *Field) Place(slot int, pos components.Position, vel components.Velocity) {
	if f.world == nil || slot < 0 || slot >= len(f.entities) {
		return
	}
	e := f.entities[slot]
	*f.posMap.Get(e) = pos
	*f.velMap.Get(e) = vel

	f.particles[slot].Pos = pos
	f.particles[slot].Vel = vel
	f.positions[slot] = pos
}

// Step advances the simulation by dt seconds: integrate, then pointer
// repulsion, then boundary reflection, for every particle.
// dt is clamped to [0, MaxStep].
func (f *Field) Step(dt float32, pointer Pointer) {
	if f.world == nil {
		return
	}
	if dt != dt {
		dt = 0
	}
	dt = clampFloat(dt, 0, f.cfg.MaxStep)
	scale := dt * f.cfg.FrameScale

	query := f.filter.Query()
	for query.Next() {
		pos, vel, _, _, slot := query.Get()

		Integrate(pos, *vel, scale)
		Repel(pos, pointer, f.cfg.RepulsionRadius, f.cfg.RepulsionStrength)
		Reflect(pos, vel, f.bounds)

		p := &f.particles[slot.Index]
		p.Pos = *pos
		p.Vel = *vel
		f.positions[slot.Index] = *pos
	}
}

// Resize updates the bounds in place. Particles left outside are brought
// back by the next Step.
func (f *Field) Resize(width, height float32) {
	f.cfg.Width = width
	f.cfg.Height = height
	f.bounds = NewBounds(width, height, f.cfg.Depth)
	f.grid = nil
}

// Connections appends every pair of particles closer than threshold.
func (f *Field) Connections(dst []Connection, threshold float32) []Connection {
	if f.cfg.GridThreshold <= 0 || len(f.positions) <= f.cfg.GridThreshold {
		return BruteConnections(dst, f.positions, threshold)
	}
	if f.grid == nil {
		f.grid = NewSpatialGrid(f.bounds, threshold)
	} else if f.grid.CellSize() < threshold {
		f.grid.Reset(f.bounds, threshold)
	}
	dst, f.scratch = GridConnections(dst, f.positions, threshold, f.grid, f.scratch)
	return dst
}

// Particles returns the slot-indexed particle snapshot.
// The slice is owned by the field and valid until the next mutation.
func (f *Field) Particles() []Particle {
	return f.particles
}

// Positions returns the slot-indexed position snapshot.
func (f *Field) Positions() []components.Position {
	return f.positions
}

// Len returns the number of particles.
func (f *Field) Len() int {
	return len(f.particles)
}

// Bounds returns the current bounds.
func (f *Field) Bounds() Bounds {
	return f.bounds
}

// Config returns the field configuration.
func (f *Field) Config() FieldConfig {
	return f.cfg
}

// Discard drops every particle at once. Step becomes a no-op.
func (f *Field) Discard() {
	f.world = nil
	f.mapper = nil
	f.filter = nil
	f.posMap = nil
	f.velMap = nil
	f.entities = nil
	f.particles = nil
	f.positions = nil
	f.grid = nil
}

func (f *Field) uniform(half float32) float32 {
	if half <= 0 {
		return 0
	}
	return (f.rng.Float32()*2 - 1) * half
}
