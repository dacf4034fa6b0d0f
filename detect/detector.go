package detect

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pthm-cable/plexus/prefs"
)

// Decision records one automatic detection.
type Decision struct {
	At      time.Time
	Signals Signals
	Score   int
	Profile Profile
}

// Detector produces the session's Profile. Automatic detection runs at most
// once; a manual override short-circuits it entirely.
// Safe for concurrent use.
type Detector struct {
	mu     sync.Mutex
	store  prefs.Store
	probe  Probe
	h      Heuristics
	logger *slog.Logger

	override *bool // last Toggle, kept even if the store write failed
	decision *Decision
}

// NewDetector creates a detector. A nil store keeps overrides in memory only.
func NewDetector(store prefs.Store, probe Probe, h Heuristics, logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{
		store:  store,
		probe:  probe,
		h:      h,
		logger: logger,
	}
}

// Profile returns the manual profile when an override exists, otherwise the
// automatic decision, detecting on first use.
func (d *Detector) Profile(ctx context.Context) Profile {
	d.mu.Lock()
	defer d.mu.Unlock()

	if enabled, ok := d.manualLocked(ctx); ok {
		return ManualProfile(enabled, d.h)
	}
	return d.detectLocked(ctx).Profile
}

// Toggle flips the effect on or off, switches to manual mode and persists the
// choice. Detection is not run to find the current state.
func (d *Detector) Toggle(ctx context.Context) Profile {
	d.mu.Lock()
	defer d.mu.Unlock()

	current, ok := d.manualLocked(ctx)
	if !ok {
		current = true
		if d.decision != nil {
			current = d.decision.Profile.Enabled
		}
	}
	next := !current
	d.override = &next

	if d.store != nil {
		if err := d.store.Set(ctx, prefs.ParticlesEnabled, next); err != nil {
			d.logger.Warn("persisting particle preference failed", "error", err)
		}
	}
	d.logger.Info("particles toggled", "enabled", next)
	return ManualProfile(next, d.h)
}

// Reset clears the manual override. The cached automatic decision, if any,
// is served again on the next Profile call.
func (d *Detector) Reset(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.override = nil
	if d.store != nil {
		if err := d.store.Delete(ctx, prefs.ParticlesEnabled); err != nil {
			d.logger.Warn("clearing particle preference failed", "error", err)
		}
	}
}

// LastDecision returns the automatic decision if detection has run.
func (d *Detector) LastDecision() (Decision, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.decision == nil {
		return Decision{}, false
	}
	return *d.decision, true
}

func (d *Detector) manualLocked(ctx context.Context) (bool, bool) {
	if d.override != nil {
		return *d.override, true
	}
	if d.store == nil {
		return false, false
	}
	v, ok, err := d.store.Get(ctx, prefs.ParticlesEnabled)
	if err != nil {
		d.logger.Warn("reading particle preference failed", "error", err)
		return false, false
	}
	return v, ok
}

func (d *Detector) detectLocked(ctx context.Context) Decision {
	if d.decision != nil {
		return *d.decision
	}

	sig := d.probeSafe(ctx)
	dec := Decision{
		At:      time.Now(),
		Signals: sig,
		Score:   Score(sig, d.h),
		Profile: Decide(sig, d.h),
	}
	d.decision = &dec

	d.logger.Info("capability detected",
		"enabled", dec.Profile.Enabled,
		"count", dec.Profile.Count,
		"distance", dec.Profile.ConnectionDistance,
		"score", dec.Score,
		"fps", sig.FPS,
		"mobile", IsMobile(sig, d.h),
		"gpu", sig.GPURenderer,
	)
	return dec
}

// probeSafe runs the probe; a panic yields empty signals, which decide to
// disabled.
func (d *Detector) probeSafe(ctx context.Context) (sig Signals) {
	if d.probe == nil {
		return Signals{}
	}
	defer func() {
		if r := recover(); r != nil {
			d.logger.Warn("capability probe panicked", "panic", r)
			sig = Signals{}
		}
	}()
	return d.probe.Probe(ctx)
}
