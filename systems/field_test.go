package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/plexus/components"
)

func testFieldConfig() FieldConfig {
	return FieldConfig{
		Width:             200,
		Height:            100,
		Depth:             20,
		MaxSpeed:          2,
		MinRadius:         1,
		MaxRadius:         3,
		RepulsionRadius:   30,
		RepulsionStrength: 0.5,
		FrameScale:        60,
		MaxStep:           0.1,
		GridThreshold:     64,
		PaletteSize:       4,
	}
}

func TestFieldSpawnInsideBounds(t *testing.T) {
	f := NewField(testFieldConfig(), rand.New(rand.NewSource(7)))
	f.Spawn(100)

	if f.Len() != 100 {
		t.Fatalf("expected 100 particles, got %d", f.Len())
	}
	for i, p := range f.Particles() {
		if !f.Bounds().Contains(p.Pos) {
			t.Errorf("particle %d spawned outside bounds: %+v", i, p.Pos)
		}
		if p.Radius < 1 || p.Radius > 3 {
			t.Errorf("particle %d radius %v outside [1, 3]", i, p.Radius)
		}
		if p.Tint >= 4 {
			t.Errorf("particle %d tint %d outside palette", i, p.Tint)
		}
	}
}

func TestFieldSpawnNegativeCount(t *testing.T) {
	f := NewField(testFieldConfig(), nil)
	f.Spawn(-5)
	if f.Len() != 0 {
		t.Errorf("expected no particles, got %d", f.Len())
	}
}

func TestFieldStaysInsideBounds(t *testing.T) {
	f := NewField(testFieldConfig(), rand.New(rand.NewSource(3)))
	f.Spawn(200)

	pointers := []Pointer{
		{Active: false},
		{X: 0, Y: 0, Active: true},
		{X: 99, Y: 49, Active: true},
		{X: -100, Y: -50, Active: true},
	}

	for step := 0; step < 2000; step++ {
		// Oversized and irregular steps
		dt := float32(step%7) * 0.5
		f.Step(dt, pointers[step%len(pointers)])

		for i, p := range f.Particles() {
			if !f.Bounds().Contains(p.Pos) {
				t.Fatalf("step %d: particle %d escaped: %+v", step, i, p.Pos)
			}
		}
	}
}

func TestFieldStepReflectsAtWall(t *testing.T) {
	f := NewField(testFieldConfig(), nil)
	slot := f.Add(components.Position{X: 99.5}, components.Velocity{X: 1})

	f.Step(1.0/60, Pointer{})

	p := f.Particles()[slot]
	if p.Pos.X != 100 {
		t.Errorf("expected clamp to 100, got %v", p.Pos.X)
	}
	if p.Vel.X != -1 {
		t.Errorf("expected velocity -1 after reflection, got %v", p.Vel.X)
	}
}

func TestFieldStepDeterministic(t *testing.T) {
	run := func() []Particle {
		f := NewField(testFieldConfig(), rand.New(rand.NewSource(11)))
		f.Spawn(50)
		for i := 0; i < 100; i++ {
			f.Step(1.0/60, Pointer{X: 10, Y: 10, Active: true})
		}
		out := make([]Particle, f.Len())
		copy(out, f.Particles())
		return out
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("particle %d diverged: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestFieldStepClampsDelta(t *testing.T) {
	cfg := testFieldConfig()
	f := NewField(cfg, nil)
	slot := f.Add(components.Position{}, components.Velocity{X: 0.1})

	f.Step(10, Pointer{})

	// MaxStep 0.1 * FrameScale 60 * 0.1 = 0.6
	got := f.Particles()[slot].Pos.X
	if got < 0.59 || got > 0.61 {
		t.Errorf("expected x ~0.6 after clamped step, got %v", got)
	}
}

func TestFieldResizeBringsParticlesBack(t *testing.T) {
	f := NewField(testFieldConfig(), rand.New(rand.NewSource(5)))
	f.Spawn(50)

	f.Resize(40, 20)
	f.Step(0, Pointer{})

	for i, p := range f.Particles() {
		if !f.Bounds().Contains(p.Pos) {
			t.Errorf("particle %d outside resized bounds: %+v", i, p.Pos)
		}
	}
}

func TestFieldDiscard(t *testing.T) {
	f := NewField(testFieldConfig(), nil)
	f.Spawn(10)
	f.Discard()

	f.Step(0.016, Pointer{Active: true})
	if f.Len() != 0 {
		t.Errorf("expected empty field after discard, got %d", f.Len())
	}
	if slot := f.Add(components.Position{}, components.Velocity{}); slot != -1 {
		t.Errorf("expected -1 from Add after discard, got %d", slot)
	}
}

func TestFieldPlace(t *testing.T) {
	f := NewField(testFieldConfig(), rand.New(rand.NewSource(2)))
	f.Spawn(3)

	f.Place(1, components.Position{X: 10, Y: -10}, components.Velocity{X: 1})
	f.Place(7, components.Position{}, components.Velocity{})

	if got := f.Particles()[1].Pos; got != (components.Position{X: 10, Y: -10}) {
		t.Fatalf("placed position = %+v", got)
	}

	// The ECS copy must follow the snapshot
	f.Step(1.0/60, Pointer{})
	got := f.Particles()[1].Pos
	if got.X < 10.9 || got.X > 11.1 || got.Y != -10 {
		t.Errorf("expected particle to move from placed position, got %+v", got)
	}
}
