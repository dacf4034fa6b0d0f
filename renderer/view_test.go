package renderer

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/pthm-cable/plexus/components"
	"github.com/pthm-cable/plexus/detect"
	"github.com/pthm-cable/plexus/systems"
)

func testViewConfig() ViewConfig {
	return ViewConfig{
		Field: systems.FieldConfig{
			Depth:             0,
			MaxSpeed:          0.5,
			MinRadius:         1.5,
			MaxRadius:         3,
			RepulsionRadius:   50,
			RepulsionStrength: 0.02,
			FrameScale:        60,
			MaxStep:           0.1,
			GridThreshold:     128,
		},
		LineAlpha:  0.1,
		PointAlpha: 0.3,
	}
}

func enabled(count int, dist float32) detect.Profile {
	return detect.Profile{Enabled: true, Count: count, ConnectionDistance: dist, Mode: detect.ModeAuto}
}

func TestTwoParticleConnection(t *testing.T) {
	surface := NewRecordingSurface(400, 300)
	v := Mount(enabled(2, 10), surface, Dark, testViewConfig(), rand.New(rand.NewSource(1)))
	defer v.Close()

	f := v.Field()
	f.Place(0, components.Position{}, components.Velocity{})
	f.Place(1, components.Position{X: 5}, components.Velocity{})

	surface.Begin()
	v.Frame(0, ScreenPointer{})
	surface.End()
	if got := len(surface.Lines()); got != 1 {
		t.Fatalf("distance 5: got %d lines, want 1", got)
	}
	if got := len(surface.Points()); got != 2 {
		t.Errorf("got %d points, want 2", got)
	}

	f.Place(1, components.Position{X: 15}, components.Velocity{})
	surface.Begin()
	v.Frame(0, ScreenPointer{})
	surface.End()
	if got := len(surface.Lines()); got != 0 {
		t.Errorf("distance 15: got %d lines, want 0", got)
	}
	if s := v.Stats(); s.Connections != 0 || s.Particles != 2 {
		t.Errorf("unexpected stats %+v", s)
	}
}

func TestCloseStopsDrawing(t *testing.T) {
	surface := NewRecordingSurface(400, 300)
	v := Mount(enabled(25, 150), surface, Dark, testViewConfig(), nil)

	v.Frame(1.0/60, ScreenPointer{})
	before := surface.DrawCalls()
	if before == 0 {
		t.Fatal("expected draw calls before close")
	}

	v.Close()
	v.Close()

	// A frame that was already scheduled runs after teardown
	if v.Frame(1.0/60, ScreenPointer{X: 10, Y: 10, Inside: true}) {
		t.Error("Frame reported drawing after Close")
	}
	if v.Redraw() {
		t.Error("Redraw reported drawing after Close")
	}
	if after := surface.DrawCalls(); after != before {
		t.Errorf("draw calls after close: %d -> %d", before, after)
	}
}

func TestCloseRacingFrames(t *testing.T) {
	surface := NewRecordingSurface(400, 300)
	v := Mount(enabled(25, 150), surface, Dark, testViewConfig(), nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			v.Frame(1.0/60, ScreenPointer{})
		}
	}()
	v.Close()
	closedAt := surface.DrawCalls()
	wg.Wait()

	if got := surface.DrawCalls(); got != closedAt {
		t.Errorf("draws continued after Close returned: %d -> %d", closedAt, got)
	}
}

func TestInertView(t *testing.T) {
	tests := []struct {
		name    string
		profile detect.Profile
	}{
		{"disabled", detect.Profile{Enabled: false, Count: 25, ConnectionDistance: 150}},
		{"zero count", enabled(0, 150)},
		{"negative count", enabled(-3, 150)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			surface := NewRecordingSurface(400, 300)
			v := Mount(tt.profile, surface, Dark, testViewConfig(), nil)
			defer v.Close()

			if v.Frame(1.0/60, ScreenPointer{}) {
				t.Error("inert view reported drawing")
			}
			if surface.DrawCalls() != 0 {
				t.Errorf("inert view made %d draw calls", surface.DrawCalls())
			}
			if v.Field() != nil {
				t.Error("inert view should not allocate a field")
			}
		})
	}
}

func TestSetProfileRemounts(t *testing.T) {
	surface := NewRecordingSurface(400, 300)
	v := Mount(enabled(25, 150), surface, Dark, testViewConfig(), nil)
	defer v.Close()

	original := v.Field()
	if v.SetProfile(enabled(25, 150)) {
		t.Error("same profile should not remount")
	}
	if v.Field() != original {
		t.Error("same profile replaced the field")
	}

	if !v.SetProfile(enabled(15, 100)) {
		t.Fatal("changed profile should remount")
	}
	if v.Field() == original || v.Field().Len() != 15 {
		t.Errorf("expected fresh field with 15 particles, got %d", v.Field().Len())
	}

	v.SetProfile(detect.Profile{Mode: detect.ModeManual})
	if v.Field() != nil {
		t.Error("disabled profile should leave an inert view")
	}
}

func TestResizeKeepsField(t *testing.T) {
	surface := NewRecordingSurface(400, 300)
	v := Mount(enabled(25, 150), surface, Dark, testViewConfig(), nil)
	defer v.Close()

	f := v.Field()
	v.Resize(100, 80)
	v.Frame(0, ScreenPointer{})

	if v.Field() != f {
		t.Fatal("resize restarted the field")
	}
	b := f.Bounds()
	if b.HalfW != 50 || b.HalfH != 40 {
		t.Errorf("bounds = %+v, want half extents 50x40", b)
	}
	for i, p := range f.Particles() {
		if !b.Contains(p.Pos) {
			t.Errorf("particle %d outside resized bounds: %+v", i, p.Pos)
		}
	}
}

func TestPointerRepels(t *testing.T) {
	surface := NewRecordingSurface(400, 300)
	v := Mount(enabled(1, 10), surface, Dark, testViewConfig(), nil)
	defer v.Close()

	f := v.Field()
	f.Place(0, components.Position{X: 10}, components.Velocity{})

	// Screen center is the field origin
	v.Frame(0, ScreenPointer{X: 200, Y: 150, Inside: true})
	if x := f.Particles()[0].Pos.X; x <= 10 {
		t.Errorf("expected particle pushed away from pointer, x=%v", x)
	}
}

func TestCenterPointerBeforeFirstEvent(t *testing.T) {
	surface := NewRecordingSurface(400, 300)
	v := Mount(enabled(1, 10), surface, Dark, testViewConfig(), nil)
	defer v.Close()

	f := v.Field()
	f.Place(0, components.Position{X: 10}, components.Velocity{})

	v.Frame(0, ScreenPointer{})
	x := f.Particles()[0].Pos.X
	if x <= 10 {
		t.Fatalf("expected push from the default center pointer, x=%v", x)
	}

	// Leaving the surface keeps the last known position
	v.Frame(0, ScreenPointer{X: 390, Y: 150, Inside: true})
	f.Place(0, components.Position{X: 150}, components.Velocity{})
	v.Frame(0, ScreenPointer{})
	if got := f.Particles()[0].Pos.X; got >= 150 {
		t.Errorf("expected push toward center from last pointer, x=%v", got)
	}
}
