// Package game wires the particle field, effects and controls into an app
// that hosts drive once per frame.
package game

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/pthm-cable/plexus/components"
	"github.com/pthm-cable/plexus/config"
	"github.com/pthm-cable/plexus/detect"
	"github.com/pthm-cable/plexus/keyseq"
	"github.com/pthm-cable/plexus/renderer"
	"github.com/pthm-cable/plexus/systems"
	"github.com/pthm-cable/plexus/telemetry"
	"github.com/pthm-cable/plexus/trail"
	"github.com/pthm-cable/plexus/ui"
)

// App holds the complete animation state for one host.
// Update and Draw must be called from the host loop goroutine.
type App struct {
	cfg    *config.Config
	opts   Options
	logger *slog.Logger
	rng    *rand.Rand

	surface  renderer.Surface
	detector *detect.Detector
	view     *renderer.FieldView
	viewCfg  renderer.ViewConfig
	theme    renderer.Theme

	trail       *trail.Effect
	stopSweeper func()
	marks       []components.TrailMark

	keys        *keyseq.Matcher
	confetti    *systems.ParticleSystem
	celebration celebration
	chime       Player

	toggles *ui.ToggleRegistry
	hud     *ui.HUD

	perf    *telemetry.PerfCollector
	output  *telemetry.OutputManager
	lastLog time.Time

	// Pending frame
	dt      float32
	pointer renderer.ScreenPointer
	now     time.Time
	clock   atomic.Int64 // now in unix nanos, read by the trail sweeper

	frame        int64
	paused       bool
	message      string
	messageUntil time.Time
	presentHook  func()
}

// NewApp detects the capability profile, mounts the field on deps.Surface
// and starts the trail sweeper.
func NewApp(ctx context.Context, cfg *config.Config, opts Options, deps Deps) (*App, error) {
	if deps.Surface == nil {
		return nil, errors.New("game: surface is required")
	}
	dc := cfg.Detect
	if opts.Terminal {
		// Terminal sizes are in cells, not device pixels
		dc.SmallScreenWidth = dc.SmallScreenCols * renderer.CellW
	}
	h, err := detect.NewHeuristics(dc)
	if err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	logger := slog.Default()

	theme := renderer.ThemeFor(cfg.Theme.Dark)
	if opts.Theme != "" {
		theme = renderer.ThemeByName(opts.Theme)
	}

	a := &App{
		cfg:      cfg,
		opts:     opts,
		logger:   logger,
		rng:      rng,
		surface:  deps.Surface,
		detector: detect.NewDetector(deps.Store, deps.Probe, h, logger),
		viewCfg:  renderer.ViewConfigFrom(cfg),
		theme:    theme,
		keys:     keyseq.NewMatcher(cfg.KeySeq.Sequence, cfg.KeySeq.Latch),
		confetti: systems.NewParticleSystem(systems.BurstConfig{
			MaxParticles: cfg.Confetti.MaxParticles,
			BurstCount:   cfg.Confetti.BurstCount,
			Speed:        float32(cfg.Confetti.Speed),
			Gravity:      float32(cfg.Confetti.Gravity),
			Life:         int32(cfg.Confetti.Life),
			Colors:       len(theme.Confetti),
		}, rng),
		chime:   deps.Chime,
		toggles: ui.NewToggleRegistry(),
		hud:     ui.NewHUD(),
		perf:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		output:  deps.Output,
		now:     time.Now(),
	}
	a.clock.Store(a.now.UnixNano())
	if opts.Terminal {
		a.toggles.RelaxModifiers()
	}
	a.hud.SetTheme(ui.ThemeFor(theme))

	a.trail = trail.New(ctx, trail.ConfigFrom(cfg.Trail, len(theme.Trail)), deps.Store, rng, logger)
	a.stopSweeper = a.trail.StartSweeper(cfg.Trail.SweepInterval, a.frameTime)

	profile := a.detector.Profile(ctx)
	a.view = renderer.Mount(profile, a.surface, a.theme, a.viewCfg, rng)
	a.recordProfile(telemetry.ReasonStartup, profile)
	a.syncToggles()

	logger.Info("app started",
		"seed", seed,
		"theme", theme.Name,
		"particles", profile.Enabled,
		"count", profile.Count,
		"mode", profile.Mode,
		"trail", a.trail.Enabled(),
	)
	return a, nil
}

// Update applies one frame of input. The field itself advances in Draw.
func (a *App) Update(ctx context.Context, in Input) {
	a.perf.StartTick()
	a.perf.StartPhase(telemetry.PhaseInput)

	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}
	a.now = now
	a.clock.Store(now.UnixNano())
	a.dt = in.DT

	if in.Width > 0 && in.Height > 0 {
		a.view.Resize(in.Width, in.Height)
	}
	a.pointer = in.Pointer

	for _, k := range in.Keys {
		if a.keys.Press(k.Name, now) {
			a.celebrate(now)
		}
		if id, ok := a.toggles.Match(k.Name, k.Alt); ok {
			a.apply(ctx, id)
		}
	}
	for _, id := range in.Clicked {
		a.apply(ctx, id)
	}

	a.perf.StartPhase(telemetry.PhaseTrail)
	if in.PointerMoved && in.Pointer.Inside {
		a.trail.Move(in.Pointer.X, in.Pointer.Y, now)
	}

	a.perf.StartPhase(telemetry.PhaseConfetti)
	w, h := a.surface.Size()
	a.celebration.update(now, a.confetti, a.cfg.Confetti.BurstCount, float32(w), float32(h), a.rng)
	a.confetti.Update()

	if a.message != "" && !now.Before(a.messageUntil) {
		a.message = ""
	}
}

// Draw renders the frame: background, field, trail marks and confetti.
func (a *App) Draw() {
	a.perf.StartPhase(telemetry.PhaseField)

	a.surface.Begin()
	a.fade()
	if a.paused {
		a.view.Redraw()
	} else {
		a.view.Frame(a.dt, a.pointer)
	}

	a.perf.StartPhase(telemetry.PhaseTrail)
	a.marks = a.trail.Active(a.marks[:0], a.now)
	renderer.DrawTrail(a.surface, a.marks, a.now, a.trail.Lifetime(), a.theme)
	renderer.DrawConfetti(a.surface, a.confetti.Particles, a.theme)

	a.perf.StartPhase(telemetry.PhasePresent)
	if a.presentHook != nil {
		a.presentHook()
	}
	a.surface.End()

	a.perf.EndTick()
	a.perf.RecordFrame()
	a.frame++
	a.logPerf()
}

// frameTime is the time of the latest Update. Marks are stamped with it, so
// the sweeper ages them on the same clock even when hosts run unpaced.
func (a *App) frameTime() time.Time {
	return time.Unix(0, a.clock.Load())
}

func (a *App) fade() {
	bg := a.theme.Background
	if alpha := a.cfg.Field.FadeAlpha; alpha > 0 && alpha < 1 {
		bg = renderer.WithAlpha(bg, float32(alpha))
	}
	a.surface.Fade(bg)
}

// apply performs a toggle and mirrors its new state into the registry.
func (a *App) apply(ctx context.Context, id ui.ToggleID) {
	switch id {
	case ui.ToggleParticles:
		p := a.detector.Toggle(ctx)
		a.view.SetProfile(p)
		a.recordProfile(telemetry.ReasonToggle, p)
	case ui.ToggleRedetect:
		a.detector.Reset(ctx)
		p := a.detector.Profile(ctx)
		a.view.SetProfile(p)
		a.recordProfile(telemetry.ReasonReset, p)
	case ui.ToggleTrail:
		a.trail.Toggle(ctx)
	case ui.ToggleTheme:
		a.SetTheme(renderer.ThemeFor(a.theme.Name != renderer.Dark.Name))
		a.recordProfile(telemetry.ReasonTheme, a.view.Profile())
	case ui.ToggleHUD:
		a.hud.Toggle()
	case ui.TogglePause:
		a.paused = !a.paused
	default:
		return
	}
	a.syncToggles()
	a.logger.Info("toggle", "id", id, "enabled", a.toggles.IsEnabled(id))
}

func (a *App) syncToggles() {
	a.toggles.SetEnabled(ui.ToggleParticles, a.view.Profile().Enabled)
	a.toggles.SetEnabled(ui.ToggleRedetect, a.view.Profile().Mode == detect.ModeAuto)
	a.toggles.SetEnabled(ui.ToggleTrail, a.trail.Enabled())
	a.toggles.SetEnabled(ui.ToggleTheme, a.theme.Name == renderer.Dark.Name)
	a.toggles.SetEnabled(ui.ToggleHUD, a.hud.Visible())
	a.toggles.SetEnabled(ui.TogglePause, a.paused)
}

// SetTheme switches palettes. The field is remounted so point tints match.
func (a *App) SetTheme(t renderer.Theme) {
	a.theme = t
	a.view.SetTheme(t)
	a.hud.SetTheme(ui.ThemeFor(t))
	a.syncToggles()
}

func (a *App) celebrate(now time.Time) {
	a.celebration.begin(now)
	a.message = CelebrationMessage
	a.messageUntil = now.Add(messageLength)
	if a.chime != nil && a.cfg.KeySeq.Chime {
		a.chime.Play()
	}
	a.logger.Info("key sequence completed")
}

// HUDData snapshots the state shown by the HUD.
func (a *App) HUDData() ui.HUDData {
	stats := a.view.Stats()
	perf := a.perf.Stats()
	data := ui.HUDData{
		Title:        a.cfg.Screen.Title,
		FPS:          float32(perf.FPS),
		TargetFPS:    float32(a.cfg.Screen.TargetFPS),
		Profile:      a.view.Profile(),
		Particles:    stats.Particles,
		Connections:  stats.Connections,
		TrailEnabled: a.trail.Enabled(),
		TrailMarks:   len(a.marks),
		Confetti:     a.confetti.Count(),
		KeyProgress:  a.keys.Progress(),
		KeyLength:    len(a.cfg.KeySeq.Sequence),
		ThemeName:    a.theme.Name,
		Accent:       a.theme.Line,
		Paused:       a.paused,
		Message:      a.message,
	}
	if dec, ok := a.detector.LastDecision(); ok {
		data.Detected = true
		data.Score = dec.Score
	}
	return data
}

// Toggles returns the toggle registry for on-screen controls.
func (a *App) Toggles() *ui.ToggleRegistry {
	return a.toggles
}

// HUD returns the heads-up display.
func (a *App) HUD() *ui.HUD {
	return a.hud
}

// View returns the mounted field view.
func (a *App) View() *renderer.FieldView {
	return a.view
}

// Trail returns the pointer trail effect.
func (a *App) Trail() *trail.Effect {
	return a.trail
}

// Theme returns the active theme.
func (a *App) Theme() renderer.Theme {
	return a.theme
}

// Frame returns the number of frames drawn.
func (a *App) Frame() int64 {
	return a.frame
}

// Paused reports whether the field is frozen.
func (a *App) Paused() bool {
	return a.paused
}

// Message returns the banner text, empty when none is shown.
func (a *App) Message() string {
	return a.message
}

// PerfStats returns the current perf window.
func (a *App) PerfStats() telemetry.PerfStats {
	return a.perf.Stats()
}

// SetPresentHook registers fn to draw just before each frame is presented.
func (a *App) SetPresentHook(fn func()) {
	a.presentHook = fn
}

// Close stops the sweeper and tears the view down. The surface stays with
// the host.
func (a *App) Close() {
	if a.stopSweeper != nil {
		a.stopSweeper()
		a.stopSweeper = nil
	}
	a.view.Close()
}
