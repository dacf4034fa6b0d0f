// Package trail implements the fading pointer trail.
package trail

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/pthm-cable/plexus/components"
	"github.com/pthm-cable/plexus/config"
	"github.com/pthm-cable/plexus/prefs"
)

// Config holds trail parameters.
type Config struct {
	Throttle      time.Duration
	MaxMarks      int
	Lifetime      time.Duration
	SweepInterval time.Duration
	MinSize       float32
	MaxSize       float32
	Colors        int // trail palette size
}

// ConfigFrom converts the trail configuration section.
func ConfigFrom(c config.TrailConfig, colors int) Config {
	return Config{
		Throttle:      c.Throttle,
		MaxMarks:      c.MaxMarks,
		Lifetime:      c.Lifetime,
		SweepInterval: c.SweepInterval,
		MinSize:       float32(c.MinSize),
		MaxSize:       float32(c.MaxSize),
		Colors:        colors,
	}
}

// Effect records pointer moves as marks that expire after Lifetime.
// Safe for concurrent use; the sweeper runs on its own goroutine.
type Effect struct {
	mu      sync.Mutex
	cfg     Config
	marks   []components.TrailMark
	last    time.Time
	moved   bool
	enabled bool

	store  prefs.Store
	rng    *rand.Rand
	logger *slog.Logger
}

// New creates an effect, reading the persisted enabled flag from store.
// A missing or unreadable preference means enabled.
func New(ctx context.Context, cfg Config, store prefs.Store, rng *rand.Rand, logger *slog.Logger) *Effect {
	if logger == nil {
		logger = slog.Default()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.MaxMarks < 0 {
		cfg.MaxMarks = 0
	}
	if cfg.MaxSize < cfg.MinSize {
		cfg.MaxSize = cfg.MinSize
	}

	e := &Effect{
		cfg:     cfg,
		marks:   make([]components.TrailMark, 0, cfg.MaxMarks+1),
		enabled: true,
		store:   store,
		rng:     rng,
		logger:  logger,
	}
	if store != nil {
		v, ok, err := store.Get(ctx, prefs.MouseTrailEnabled)
		if err != nil {
			logger.Warn("reading trail preference failed", "error", err)
		} else if ok {
			e.enabled = v
		}
	}
	return e
}

// Move records a pointer move at now. Moves closer than Throttle to the
// previous accepted move are dropped. Returns whether a mark was added.
func (e *Effect) Move(x, y float32, now time.Time) (added bool) {
	defer e.guard("move")

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.enabled || e.cfg.MaxMarks == 0 {
		return false
	}
	if e.moved && now.Sub(e.last) < e.cfg.Throttle {
		return false
	}
	e.last = now
	e.moved = true

	var color uint8
	if e.cfg.Colors > 0 {
		color = uint8(e.rng.Intn(e.cfg.Colors))
	}
	e.marks = append(e.marks, components.TrailMark{
		X:     x,
		Y:     y,
		Size:  e.cfg.MinSize + e.rng.Float32()*(e.cfg.MaxSize-e.cfg.MinSize),
		Color: color,
		Born:  now,
	})

	// Drop oldest
	if over := len(e.marks) - e.cfg.MaxMarks; over > 0 {
		n := copy(e.marks, e.marks[over:])
		e.marks = e.marks[:n]
	}
	return true
}

// Sweep removes marks at least Lifetime old and returns how many it removed.
func (e *Effect) Sweep(now time.Time) (removed int) {
	defer e.guard("sweep")

	e.mu.Lock()
	defer e.mu.Unlock()

	alive := 0
	for _, m := range e.marks {
		if m.Age(now) >= e.cfg.Lifetime {
			continue
		}
		e.marks[alive] = m
		alive++
	}
	removed = len(e.marks) - alive
	e.marks = e.marks[:alive]
	return removed
}

// Active appends the marks younger than Lifetime at now to dst.
// Expired marks are excluded even if no sweep has run yet.
func (e *Effect) Active(dst []components.TrailMark, now time.Time) []components.TrailMark {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, m := range e.marks {
		if m.Age(now) < e.cfg.Lifetime {
			dst = append(dst, m)
		}
	}
	return dst
}

// Len returns the number of stored marks, swept or not.
func (e *Effect) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.marks)
}

// Lifetime returns how long a mark stays visible.
func (e *Effect) Lifetime() time.Duration {
	return e.cfg.Lifetime
}

// Enabled reports whether moves are recorded.
func (e *Effect) Enabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enabled
}

// Toggle flips the effect, clears marks when disabling and persists the
// new state. Returns the new state.
func (e *Effect) Toggle(ctx context.Context) bool {
	e.mu.Lock()
	e.enabled = !e.enabled
	enabled := e.enabled
	if !enabled {
		e.marks = e.marks[:0]
		e.moved = false
	}
	e.mu.Unlock()

	if e.store != nil {
		if err := e.store.Set(ctx, prefs.MouseTrailEnabled, enabled); err != nil {
			e.logger.Warn("persisting trail preference failed", "error", err)
		}
	}
	e.logger.Info("mouse trail toggled", "enabled", enabled)
	return enabled
}

// StartSweeper runs Sweep every interval (SweepInterval if interval <= 0)
// until stop is called. clock supplies the sweep time and must match the
// clock marks are stamped with; nil uses the ticker's wall time. stop is
// idempotent and waits for the goroutine.
func (e *Effect) StartSweeper(interval time.Duration, clock func() time.Time) (stop func()) {
	if interval <= 0 {
		interval = e.cfg.SweepInterval
	}
	if interval <= 0 {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	exited := make(chan struct{})

	go func() {
		defer close(exited)
		defer ticker.Stop()
		for {
			select {
			case now := <-ticker.C:
				if clock != nil {
					now = clock()
				}
				e.Sweep(now)
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			<-exited
		})
	}
}

func (e *Effect) guard(op string) {
	if r := recover(); r != nil {
		e.logger.Error("trail effect panicked", "op", op, "panic", r)
	}
}
