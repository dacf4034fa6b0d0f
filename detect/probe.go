package detect

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"sync"
)

// Probe gathers device signals.
type Probe interface {
	Probe(ctx context.Context) Signals
}

// ProbeFunc adapts a function to Probe.
type ProbeFunc func(ctx context.Context) Signals

// Probe implements Probe.
func (f ProbeFunc) Probe(ctx context.Context) Signals {
	return f(ctx)
}

// StaticProbe returns fixed signals.
type StaticProbe Signals

// Probe implements Probe.
func (p StaticProbe) Probe(context.Context) Signals {
	return Signals(p)
}

// HostProbe reads signals from the local machine. Any nil hook leaves its
// signal unknown. A hook that panics is logged and treated as unknown.
type HostProbe struct {
	GOOS          string
	NetworkType   string
	ViewportWidth func() int
	GPURenderer   func() string
	SampleFPS     func(ctx context.Context) float64
	Logger        *slog.Logger
}

// Probe implements Probe.
func (p HostProbe) Probe(ctx context.Context) Signals {
	goos := p.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	s := Signals{
		UserAgent:   userAgent(goos),
		CPUCores:    runtime.NumCPU(),
		NetworkType: p.NetworkType,
	}
	if s.NetworkType == "" {
		s.NetworkType = os.Getenv("PLEXUS_NETWORK")
	}

	p.safe("memory", func() {
		if gb, ok := totalMemoryGB(); ok {
			s.DeviceMemoryGB = &gb
		}
	})
	if p.ViewportWidth != nil {
		p.safe("viewport", func() { s.ViewportWidth = p.ViewportWidth() })
	}
	if p.GPURenderer != nil {
		p.safe("gpu", func() { s.GPURenderer = p.GPURenderer() })
	}
	if p.SampleFPS != nil {
		p.safe("fps", func() { s.FPS = p.SampleFPS(ctx) })
	}
	return s
}

func (p HostProbe) safe(signal string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger := p.Logger
			if logger == nil {
				logger = slog.Default()
			}
			logger.Warn("probe failed", "signal", signal, "panic", r)
		}
	}()
	fn()
}

// userAgent synthesises a user agent for the host platform so mobile
// builds hit the same pattern a browser would.
func userAgent(goos string) string {
	switch goos {
	case "android":
		return "plexus (Linux; Android)"
	case "ios":
		return "plexus (iPhone; CPU iPhone OS)"
	default:
		return "plexus (" + goos + "; " + runtime.GOARCH + ")"
	}
}

// RendererCapture extracts the GPU renderer string from graphics log lines
// such as "GL: Renderer: NVIDIA GeForce RTX 3060/PCIe/SSE2".
// Safe for concurrent use.
type RendererCapture struct {
	mu       sync.Mutex
	renderer string
}

// Observe inspects one log line.
func (c *RendererCapture) Observe(line string) {
	name, ok := ParseRendererLine(line)
	if !ok {
		return
	}
	c.mu.Lock()
	c.renderer = name
	c.mu.Unlock()
}

// Renderer returns the captured renderer, or "" if none was seen.
func (c *RendererCapture) Renderer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.renderer
}

// ParseRendererLine returns the renderer name from a log line.
func ParseRendererLine(line string) (string, bool) {
	const marker = "Renderer:"
	i := strings.Index(line, marker)
	if i < 0 {
		return "", false
	}
	name := strings.TrimSpace(line[i+len(marker):])
	return name, name != ""
}
