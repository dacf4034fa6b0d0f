// Field tuning tool - live particle field with sliders for the field section.
//
// Usage: go run ./cmd/plexus-tune [-config path]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	gui "github.com/gen2brain/raylib-go/raygui"

	"github.com/pthm-cable/plexus/config"
	"github.com/pthm-cable/plexus/detect"
	"github.com/pthm-cable/plexus/renderer"
)

const (
	windowWidth  = 1200
	windowHeight = 760
	panelWidth   = 300
)

// tuneParams holds the tunable values.
type tuneParams struct {
	Count             int
	Distance          float32
	RepulsionRadius   float32
	RepulsionStrength float32
	MaxSpeed          float32
	Depth             float32
}

func paramsFrom(cfg *config.Config) tuneParams {
	return tuneParams{
		Count:             cfg.Detect.High.Count,
		Distance:          float32(cfg.Detect.High.ConnectionDistance),
		RepulsionRadius:   float32(cfg.Field.RepulsionRadius),
		RepulsionStrength: float32(cfg.Field.RepulsionStrength),
		MaxSpeed:          float32(cfg.Field.MaxSpeed),
		Depth:             float32(cfg.Field.Depth),
	}
}

// viewConfig applies p on top of base.
func (p tuneParams) viewConfig(base renderer.ViewConfig) renderer.ViewConfig {
	base.Field.RepulsionRadius = p.RepulsionRadius
	base.Field.RepulsionStrength = p.RepulsionStrength
	base.Field.MaxSpeed = p.MaxSpeed
	base.Field.Depth = p.Depth
	return base
}

func (p tuneParams) profile() detect.Profile {
	return detect.Profile{
		Enabled:            true,
		Count:              p.Count,
		ConnectionDistance: p.Distance,
		Mode:               detect.ModeManual,
	}
}

// fieldYAML renders p as config blocks ready to paste into config.yaml.
func fieldYAML(p tuneParams) string {
	return fmt.Sprintf(`field:
  max_speed: %.2f
  depth: %.0f
  repulsion_radius: %.0f
  repulsion_strength: %.3f
detect:
  high:
    count: %d
    connection_distance: %.0f`,
		p.MaxSpeed, p.Depth, p.RepulsionRadius, p.RepulsionStrength, p.Count, p.Distance)
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(windowWidth, windowHeight, "Plexus Field Tuning")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	surface := renderer.NewRaylibSurface()
	defer surface.Close()

	base := renderer.ViewConfigFrom(cfg)
	params := paramsFrom(cfg)
	theme := renderer.ThemeFor(cfg.Theme.Dark)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	view := renderer.Mount(params.profile(), surface, theme, params.viewConfig(base), rng)
	remount := func() {
		view.Close()
		view = renderer.Mount(params.profile(), surface, theme, params.viewConfig(base), rng)
	}

	var copied time.Time
	needsRemount := false
	surface.Overlay = func() {
		needsRemount = drawPanel(&params, view.Stats(), theme, copied) || needsRemount
		if gui.Button(rl.Rectangle{X: panelX(), Y: windowHeight - 90, Width: 85, Height: 30}, "Respawn") {
			needsRemount = true
		}
		if gui.Button(rl.Rectangle{X: panelX() + 95, Y: windowHeight - 90, Width: 85, Height: 30}, "Reset") {
			params = paramsFrom(cfg)
			needsRemount = true
		}
		if gui.Button(rl.Rectangle{X: panelX() + 190, Y: windowHeight - 90, Width: 85, Height: 30}, "Theme") {
			theme = renderer.ThemeFor(theme.Name != renderer.Dark.Name)
			view.SetTheme(theme)
		}
	}

	for !rl.WindowShouldClose() {
		if needsRemount {
			remount()
			needsRemount = false
		}

		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(fieldYAML(params))
			copied = time.Now()
			slog.Info("copied field config", "count", params.Count, "distance", params.Distance)
		}

		if wheel := rl.GetMouseWheelMove(); wheel != 0 {
			view.Viewport().ZoomBy(1 + wheel*0.1)
		}

		// Pointer repulsion only over the preview area
		mouse := rl.GetMousePosition()
		ptr := renderer.ScreenPointer{
			X:      mouse.X,
			Y:      mouse.Y,
			Inside: rl.IsCursorOnScreen() && mouse.X < panelX()-10,
		}

		surface.Begin()
		surface.Fade(theme.Background)
		view.Frame(rl.GetFrameTime(), ptr)
		surface.End()
	}
	view.Close()
}

func panelX() float32 {
	return float32(rl.GetScreenWidth() - panelWidth)
}

// drawPanel draws the slider panel and returns whether a value changed.
func drawPanel(p *tuneParams, stats renderer.FrameStats, theme renderer.Theme, copied time.Time) bool {
	x := panelX()
	y := float32(10)
	text := rl.Color{R: theme.Text.R, G: theme.Text.G, B: theme.Text.B, A: 255}
	muted := text
	muted.A = 150

	bg := rl.Color{R: theme.Background.R, G: theme.Background.G, B: theme.Background.B, A: 230}
	rl.DrawRectangle(int32(x)-10, 0, panelWidth+10, int32(rl.GetScreenHeight()), bg)

	rl.DrawText("Field Parameters", int32(x), int32(y), 20, text)
	y += 35

	changed := false
	slider := func(label, format string, value, lo, hi float32) float32 {
		rl.DrawText(label, int32(x), int32(y), 14, muted)
		y += 18
		v := gui.SliderBar(
			rl.Rectangle{X: x, Y: y, Width: panelWidth - 80, Height: 20},
			"", "",
			value, lo, hi,
		)
		rl.DrawText(fmt.Sprintf(format, v), int32(x+panelWidth-70), int32(y+2), 16, text)
		y += 35
		if v != value {
			changed = true
		}
		return v
	}

	p.Count = int(slider("Particle count", "%.0f", float32(p.Count), 0, 300))
	p.Distance = slider("Connection distance", "%.0f", p.Distance, 0, 400)
	p.RepulsionRadius = slider("Repulsion radius", "%.0f", p.RepulsionRadius, 0, 400)
	p.RepulsionStrength = slider("Repulsion strength", "%.3f", p.RepulsionStrength, 0, 0.2)
	p.MaxSpeed = slider("Max speed (px/frame)", "%.2f", p.MaxSpeed, 0, 4)
	p.Depth = slider("Depth (z half-extent)", "%.0f", p.Depth, 0, 600)

	y += 10
	rl.DrawText(fmt.Sprintf("Points: %d  Lines: %d  FPS: %d", stats.Points, stats.Lines, rl.GetFPS()), int32(x), int32(y), 14, text)
	y += 30

	rl.DrawText("YAML Config:", int32(x), int32(y), 16, text)
	y += 22
	for _, line := range strings.Split(fieldYAML(*p), "\n") {
		rl.DrawText(line, int32(x), int32(y), 14, muted)
		y += 16
	}

	hint := "C: copy YAML  Wheel: zoom"
	if time.Since(copied) < 2*time.Second {
		hint = "Copied!"
	}
	rl.DrawText(hint, int32(x), int32(rl.GetScreenHeight()-30), 12, muted)
	return changed
}
