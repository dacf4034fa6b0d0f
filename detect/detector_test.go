package detect

import (
	"context"
	"errors"
	"testing"

	"github.com/pthm-cable/plexus/prefs"
)

type countingProbe struct {
	signals Signals
	calls   int
}

func (p *countingProbe) Probe(context.Context) Signals {
	p.calls++
	return p.signals
}

type failingStore struct{}

var errStore = errors.New("store unavailable")

func (failingStore) Get(context.Context, string) (bool, bool, error) { return false, false, errStore }
func (failingStore) Set(context.Context, string, bool) error         { return errStore }
func (failingStore) Delete(context.Context, string) error            { return errStore }

func TestDetectorRunsOnce(t *testing.T) {
	ctx := context.Background()
	probe := &countingProbe{signals: desktopSignals()}
	d := NewDetector(prefs.NewMemoryStore(), probe, DefaultHeuristics(), nil)

	first := d.Profile(ctx)
	second := d.Profile(ctx)

	if probe.calls != 1 {
		t.Errorf("probe called %d times, want 1", probe.calls)
	}
	if first != second {
		t.Errorf("profiles differ: %+v vs %+v", first, second)
	}
	if !first.Enabled || first.Mode != ModeAuto {
		t.Errorf("unexpected profile %+v", first)
	}
}

func TestDetectorStoredOverrideSkipsDetection(t *testing.T) {
	ctx := context.Background()
	store := prefs.NewMemoryStore()
	if err := store.Set(ctx, prefs.ParticlesEnabled, false); err != nil {
		t.Fatal(err)
	}

	probe := &countingProbe{signals: desktopSignals()}
	d := NewDetector(store, probe, DefaultHeuristics(), nil)

	p := d.Profile(ctx)
	if p.Enabled || p.Mode != ModeManual {
		t.Errorf("expected manual disabled profile, got %+v", p)
	}
	if probe.calls != 0 {
		t.Errorf("probe called %d times, want 0", probe.calls)
	}
}

func TestDetectorToggleWins(t *testing.T) {
	ctx := context.Background()
	store := prefs.NewMemoryStore()
	probe := &countingProbe{signals: desktopSignals()}
	d := NewDetector(store, probe, DefaultHeuristics(), nil)

	if p := d.Toggle(ctx); p.Enabled || p.Mode != ModeManual {
		t.Fatalf("first toggle = %+v, want manual disabled", p)
	}
	if p := d.Profile(ctx); p.Enabled || p.Mode != ModeManual {
		t.Errorf("profile after toggle = %+v, want manual disabled", p)
	}
	if p := d.Toggle(ctx); !p.Enabled {
		t.Errorf("second toggle = %+v, want enabled", p)
	}
	if p := d.Profile(ctx); !p.Enabled || p.Count != 25 || p.ConnectionDistance != 150 {
		t.Errorf("profile after second toggle = %+v, want manual default tier", p)
	}
	if probe.calls != 0 {
		t.Errorf("detection ran %d times after toggle", probe.calls)
	}

	v, ok, _ := store.Get(ctx, prefs.ParticlesEnabled)
	if !ok || !v {
		t.Errorf("stored preference = (%v, %v), want (true, true)", v, ok)
	}
}

func TestDetectorToggleAfterDetection(t *testing.T) {
	ctx := context.Background()
	probe := &countingProbe{signals: desktopSignals()}
	probe.signals.FPS = 10
	d := NewDetector(prefs.NewMemoryStore(), probe, DefaultHeuristics(), nil)

	if d.Profile(ctx).Enabled {
		t.Fatal("expected slow device to be disabled")
	}
	if p := d.Toggle(ctx); !p.Enabled {
		t.Errorf("toggle from detected-disabled should enable, got %+v", p)
	}
	if probe.calls != 1 {
		t.Errorf("probe called %d times, want 1", probe.calls)
	}
}

func TestDetectorStoreFailureDegrades(t *testing.T) {
	ctx := context.Background()
	probe := &countingProbe{signals: desktopSignals()}
	d := NewDetector(failingStore{}, probe, DefaultHeuristics(), nil)

	if p := d.Profile(ctx); !p.Enabled || p.Mode != ModeAuto {
		t.Errorf("expected auto profile when store fails, got %+v", p)
	}

	// Toggle still wins for the session even though persisting failed
	d.Toggle(ctx)
	if p := d.Profile(ctx); p.Enabled || p.Mode != ModeManual {
		t.Errorf("expected in-memory override, got %+v", p)
	}
}

func TestDetectorReset(t *testing.T) {
	ctx := context.Background()
	store := prefs.NewMemoryStore()
	probe := &countingProbe{signals: desktopSignals()}
	d := NewDetector(store, probe, DefaultHeuristics(), nil)

	d.Toggle(ctx)
	d.Reset(ctx)

	if _, ok, _ := store.Get(ctx, prefs.ParticlesEnabled); ok {
		t.Error("expected stored override cleared")
	}
	if p := d.Profile(ctx); p.Mode != ModeAuto {
		t.Errorf("expected auto mode after reset, got %+v", p)
	}
}

func TestDetectorProbePanicDisables(t *testing.T) {
	probe := ProbeFunc(func(context.Context) Signals { panic("no gpu context") })
	d := NewDetector(nil, probe, DefaultHeuristics(), nil)

	if p := d.Profile(context.Background()); p.Enabled {
		t.Errorf("expected disabled profile after probe panic, got %+v", p)
	}
	if _, ok := d.LastDecision(); !ok {
		t.Error("expected decision recorded")
	}
}
