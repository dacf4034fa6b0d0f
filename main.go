package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/plexus/audio"
	"github.com/pthm-cable/plexus/config"
	"github.com/pthm-cable/plexus/detect"
	"github.com/pthm-cable/plexus/game"
	"github.com/pthm-cable/plexus/prefs"
	"github.com/pthm-cable/plexus/renderer"
	"github.com/pthm-cable/plexus/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	mode := flag.String("mode", "window", "Host: window, terminal or headless")
	prefsPath := flag.String("prefs", "", "SQLite file for preferences (empty = in-memory)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int64("max-frames", 0, "Stop after N frames (0 = unlimited)")
	fps := flag.Int("fps", 0, "Frame rate for terminal and headless hosts (0 = config; headless 0 = unpaced)")
	logStats := flag.Bool("log-stats", false, "Output perf stats via slog")
	theme := flag.String("theme", "", "Theme: dark or light (empty = config)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(*prefsPath)
	if err != nil {
		slog.Error("failed to open preferences", "path", *prefsPath, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	opts := game.Options{
		Seed:      *seed,
		LogStats:  *logStats,
		Theme:     *theme,
		OutputDir: *outputDir,
	}
	deps := game.Deps{Store: store, Output: output}

	slog.Info("starting",
		"mode", *mode,
		"seed", *seed,
		"prefs", *prefsPath,
		"max_frames", *maxFrames,
	)

	switch *mode {
	case "window":
		err = runWindow(ctx, cfg, opts, deps, *maxFrames)
	case "terminal":
		opts.Terminal = true
		err = runTerminal(ctx, cfg, opts, deps, frameRate(*fps, 30), *maxFrames)
	case "headless":
		err = runHeadless(ctx, cfg, opts, deps, *fps, *maxFrames)
	default:
		slog.Error("unknown mode", "mode", *mode)
		os.Exit(2)
	}
	if err != nil {
		slog.Error("run failed", "mode", *mode, "error", err)
		os.Exit(1)
	}
}

func openStore(path string) (prefs.Store, func(), error) {
	if path == "" {
		return prefs.NewMemoryStore(), func() {}, nil
	}
	s, err := prefs.OpenSQLite(path)
	if err != nil {
		return nil, nil, err
	}
	return s, func() { s.Close() }, nil
}

func frameRate(flagFPS, fallback int) int {
	if flagFPS > 0 {
		return flagFPS
	}
	return fallback
}

func runWindow(ctx context.Context, cfg *config.Config, opts game.Options, deps game.Deps, maxFrames int64) error {
	// Catch the GL renderer line raylib logs while creating the context
	capture := &detect.RendererCapture{}
	rl.SetTraceLogCallback(func(level int, text string) {
		capture.Observe(text)
		if level >= int(rl.LogWarning) {
			slog.Warn("raylib", "msg", text)
		}
	})

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	surface := renderer.NewRaylibSurface()
	defer surface.Close()

	chime := audio.NewChime(cfg.KeySeq.Volume, nil)
	defer chime.Close()

	deps.Surface = surface
	deps.Chime = chime
	deps.Probe = detect.HostProbe{
		NetworkType:   cfg.Detect.NetworkType,
		ViewportWidth: rl.GetScreenWidth,
		GPURenderer:   capture.Renderer,
		SampleFPS:     game.FrameSampler(surface, renderer.Dark.Background, 0, cfg.Detect),
	}

	app, err := game.NewApp(ctx, cfg, opts, deps)
	if err != nil {
		return err
	}
	defer app.Close()

	game.RunWindow(ctx, app, surface, maxFrames)
	return nil
}

func runTerminal(ctx context.Context, cfg *config.Config, opts game.Options, deps game.Deps, fps int, maxFrames int64) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	surface := renderer.NewTerminalSurface(screen)
	deps.Surface = surface
	deps.Probe = detect.HostProbe{
		NetworkType: cfg.Detect.NetworkType,
		ViewportWidth: func() int {
			w, _ := surface.Size()
			return w
		},
		SampleFPS: game.FrameSampler(surface, renderer.Dark.Background, time.Second/time.Duration(fps), cfg.Detect),
	}

	app, err := game.NewApp(ctx, cfg, opts, deps)
	if err != nil {
		return err
	}
	defer app.Close()

	game.RunTerminal(ctx, app, surface, fps, maxFrames)
	return nil
}

func runHeadless(ctx context.Context, cfg *config.Config, opts game.Options, deps game.Deps, fps int, maxFrames int64) error {
	surface := renderer.NewRecordingSurface(cfg.Screen.Width, cfg.Screen.Height)
	deps.Surface = surface

	interval := time.Duration(0)
	if fps > 0 {
		interval = time.Second / time.Duration(fps)
	}
	deps.Probe = detect.HostProbe{
		NetworkType:   cfg.Detect.NetworkType,
		ViewportWidth: func() int { return cfg.Screen.Width },
		SampleFPS:     game.FrameSampler(surface, renderer.Dark.Background, interval, cfg.Detect),
	}

	app, err := game.NewApp(ctx, cfg, opts, deps)
	if err != nil {
		return err
	}
	defer app.Close()

	w, h := surface.Size()
	game.RunHeadless(ctx, app, fps, maxFrames, &game.ScriptedPointer{W: float32(w), H: float32(h)})

	st := app.PerfStats()
	slog.Info("headless run finished",
		"frames", app.Frame(),
		"draw_calls", surface.DrawCalls(),
		"perf", st,
	)
	return nil
}
