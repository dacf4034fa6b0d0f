package renderer

import (
	"math/rand"
	"sync"

	"github.com/pthm-cable/plexus/camera"
	"github.com/pthm-cable/plexus/config"
	"github.com/pthm-cable/plexus/detect"
	"github.com/pthm-cable/plexus/systems"
)

// ViewConfig holds field and drawing parameters for a FieldView.
// Field.Width and Field.Height are taken from the surface at mount.
type ViewConfig struct {
	Field      systems.FieldConfig
	LineAlpha  float32
	PointAlpha float32
	Focal      float32
}

// ViewConfigFrom builds a ViewConfig from the loaded configuration.
func ViewConfigFrom(cfg *config.Config) ViewConfig {
	return ViewConfig{
		Field:      systems.FieldConfigFrom(cfg, 0, 0, 0),
		LineAlpha:  float32(cfg.Field.LineAlpha),
		PointAlpha: float32(cfg.Field.PointAlpha),
		Focal:      float32(cfg.Field.Focal),
	}
}

// ScreenPointer is the pointer in screen pixels.
type ScreenPointer struct {
	X, Y   float32
	Inside bool // pointer is over the surface
}

// FrameStats describes the last drawn frame.
type FrameStats struct {
	Particles   int
	Connections int
	Points      int
	Lines       int
}

// FieldView runs one mounted particle field against a surface.
// A disabled or empty profile mounts an inert view that does no work.
// Close may be called from any goroutine; once it returns, Frame never
// draws again.
type FieldView struct {
	mu      sync.Mutex
	profile detect.Profile
	surface Surface
	theme   Theme
	cfg     ViewConfig
	rng     *rand.Rand

	field   *systems.Field
	cam     *camera.Viewport
	conns   []systems.Connection
	pointer systems.Pointer
	stats   FrameStats
	closed  bool
}

// Mount creates a view for profile on surface.
func Mount(profile detect.Profile, surface Surface, theme Theme, cfg ViewConfig, rng *rand.Rand) *FieldView {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	v := &FieldView{
		profile: profile,
		surface: surface,
		theme:   theme,
		cfg:     cfg,
		rng:     rng,
		// Field origin is the screen center; used until the first pointer event
		pointer: systems.Pointer{Active: true},
	}
	v.mountLocked()
	return v
}

func (v *FieldView) mountLocked() {
	w, h := v.surface.Size()
	v.cam = camera.New(float32(w), float32(h), v.cfg.Focal)
	v.conns = v.conns[:0]
	v.stats = FrameStats{}

	if !v.profile.Active() {
		v.field = nil
		return
	}

	fc := v.cfg.Field
	fc.Width, fc.Height = v.cam.FieldSize()
	fc.PaletteSize = len(v.theme.Points)
	v.field = systems.NewField(fc, v.rng)
	v.field.Spawn(v.profile.Count)
}

// Frame advances the field by dt seconds and draws connections then points.
// It does not begin or end the surface frame. Returns false when nothing was
// drawn (inert or closed view).
func (v *FieldView) Frame(dt float32, ptr ScreenPointer) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed || v.field == nil {
		return false
	}

	if ptr.Inside {
		x, y := v.cam.ScreenToField(ptr.X, ptr.Y)
		v.pointer = systems.Pointer{X: x, Y: y, Active: true}
	}
	v.field.Step(dt, v.pointer)
	v.conns = v.field.Connections(v.conns[:0], v.profile.ConnectionDistance)
	v.drawLocked()
	return true
}

// Redraw draws the current state without advancing it (paused hosts).
func (v *FieldView) Redraw() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed || v.field == nil {
		return false
	}
	v.drawLocked()
	return true
}

func (v *FieldView) drawLocked() {
	particles := v.field.Particles()
	line := WithAlpha(v.theme.Line, v.cfg.LineAlpha)

	stats := FrameStats{Particles: len(particles), Connections: len(v.conns)}
	for _, c := range v.conns {
		a, b := particles[c.A].Pos, particles[c.B].Pos
		x1, y1, _ := v.cam.FieldToScreen(a.X, a.Y, a.Z)
		x2, y2, _ := v.cam.FieldToScreen(b.X, b.Y, b.Z)
		v.surface.Line(x1, y1, x2, y2, line)
		stats.Lines++
	}

	for _, p := range particles {
		sx, sy, scale := v.cam.FieldToScreen(p.Pos.X, p.Pos.Y, p.Pos.Z)
		r := p.Radius * scale
		if !v.cam.IsVisible(sx, sy, r) {
			continue
		}
		c := WithAlpha(pick(v.theme.Points, p.Tint, v.theme.Line), v.cfg.PointAlpha)
		v.surface.Point(sx, sy, r, c)
		stats.Points++
	}
	v.stats = stats
}

// Resize follows a surface size change without restarting the field.
func (v *FieldView) Resize(w, h int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return
	}
	v.cam.Resize(float32(w), float32(h))
	if v.field != nil {
		fw, fh := v.cam.FieldSize()
		v.field.Resize(fw, fh)
	}
}

// SetProfile remounts a fresh field when p differs from the mounted profile.
// Returns whether a remount happened.
func (v *FieldView) SetProfile(p detect.Profile) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed || p == v.profile {
		return false
	}
	if v.field != nil {
		v.field.Discard()
	}
	v.profile = p
	v.mountLocked()
	return true
}

// SetTheme switches palettes and remounts so tints match the new palette.
func (v *FieldView) SetTheme(t Theme) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return
	}
	v.theme = t
	if v.field != nil {
		v.field.Discard()
	}
	v.mountLocked()
}

// Close tears the view down. Safe to call more than once.
func (v *FieldView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return
	}
	v.closed = true
	if v.field != nil {
		v.field.Discard()
		v.field = nil
	}
	v.surface = nil
}

// Profile returns the mounted profile.
func (v *FieldView) Profile() detect.Profile {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.profile
}

// Stats returns counts from the last drawn frame.
func (v *FieldView) Stats() FrameStats {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.stats
}

// Field exposes the simulation for scripted scenes and tools.
// Nil when the view is inert or closed.
func (v *FieldView) Field() *systems.Field {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.field
}

// Viewport returns the view's camera.
func (v *FieldView) Viewport() *camera.Viewport {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cam
}
