package telemetry

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase names for one animation frame.
const (
	PhaseInput    = "input"
	PhaseField    = "field"
	PhaseTrail    = "trail"
	PhaseConfetti = "confetti"
	PhasePresent  = "present"
)

// Phases lists the frame phases in execution order.
var Phases = []string{PhaseInput, PhaseField, PhaseTrail, PhaseConfetti, PhasePresent}

// PerfSample holds timing data for a single tick.
type PerfSample struct {
	TickDuration time.Duration
	Phases       map[string]time.Duration
}

// PerfCollector tracks performance metrics over a rolling window.
// Not safe for concurrent use; the host loop owns it.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	tickStart     time.Time
	phaseStart    time.Time
	lastPhase     string

	// Frame timing, kept separately so paused hosts still report FPS
	frames        []float64 // Seconds
	frameIndex    int
	frameCount    int
	lastFrameTime time.Time
	frameDuration time.Duration

	now func() time.Time
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of frames to average over (e.g., 60 for 1 second at 60fps).
func NewPerfCollector(windowSize int) *PerfCollector {
	return NewPerfCollectorWithClock(windowSize, time.Now)
}

// NewPerfCollectorWithClock creates a collector reading time from now.
func NewPerfCollectorWithClock(windowSize int, now func() time.Time) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	if now == nil {
		now = time.Now
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
		frames:        make([]float64, windowSize),
		now:           now,
	}
}

// StartTick begins timing a new frame.
func (p *PerfCollector) StartTick() {
	p.tickStart = p.now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase, ending the previous one.
func (p *PerfCollector) StartPhase(phase string) {
	now := p.now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndTick finishes timing the current frame and records the sample.
func (p *PerfCollector) EndTick() {
	now := p.now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		TickDuration: now.Sub(p.tickStart),
		Phases:       p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordFrame records the time between consecutive presented frames.
func (p *PerfCollector) RecordFrame() {
	now := p.now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
		p.frames[p.frameIndex] = p.frameDuration.Seconds()
		p.frameIndex = (p.frameIndex + 1) % p.windowSize
		if p.frameCount < p.windowSize {
			p.frameCount++
		}
	}
	p.lastFrameTime = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	// Tick timing
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration
	StdTickDuration time.Duration

	// Phase breakdown (average durations)
	PhaseAvg map[string]time.Duration

	// Phase percentages of total tick time
	PhasePct map[string]float64

	// Throughput
	TicksPerSecond float64

	// Frame timing
	FrameDuration time.Duration // Last frame
	FPS           float64       // Mean over the frame window
	FrameJitterMS float64       // Standard deviation of frame time
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	out := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frameDuration,
	}

	if p.frameCount > 0 {
		mean, std := stat.MeanStdDev(p.frames[:p.frameCount], nil)
		if mean > 0 {
			out.FPS = 1 / mean
		}
		if p.frameCount > 1 {
			out.FrameJitterMS = std * 1000
		}
	}

	if p.sampleCount == 0 {
		return out
	}

	ticks := make([]float64, p.sampleCount)
	var minTick, maxTick time.Duration
	phaseSum := make(map[string]time.Duration)

	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		ticks[i] = float64(s.TickDuration)

		if i == 0 || s.TickDuration < minTick {
			minTick = s.TickDuration
		}
		if s.TickDuration > maxTick {
			maxTick = s.TickDuration
		}
		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	mean, std := stat.MeanStdDev(ticks, nil)
	if p.sampleCount < 2 {
		std = 0
	}
	avgTick := time.Duration(mean)

	for phase, sum := range phaseSum {
		out.PhaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avgTick > 0 {
			out.PhasePct[phase] = float64(out.PhaseAvg[phase]) / float64(avgTick) * 100
		}
	}

	if avgTick > 0 {
		out.TicksPerSecond = float64(time.Second) / float64(avgTick)
	}
	out.AvgTickDuration = avgTick
	out.MinTickDuration = minTick
	out.MaxTickDuration = maxTick
	out.StdTickDuration = time.Duration(std)
	return out
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Int64("std_tick_us", s.StdTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}

	if s.FPS > 0 {
		attrs = append(attrs,
			slog.Float64("fps", s.FPS),
			slog.Float64("jitter_ms", s.FrameJitterMS),
		)
	}

	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}

	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	Frame       int64   `csv:"frame"`
	Particles   int     `csv:"particles"`
	Connections int     `csv:"connections"`
	AvgTickUS   int64   `csv:"avg_tick_us"`
	MinTickUS   int64   `csv:"min_tick_us"`
	MaxTickUS   int64   `csv:"max_tick_us"`
	StdTickUS   int64   `csv:"std_tick_us"`
	TicksPerSec float64 `csv:"ticks_per_sec"`
	FPS         float64 `csv:"fps"`
	JitterMS    float64 `csv:"jitter_ms"`
	InputPct    float64 `csv:"input_pct"`
	FieldPct    float64 `csv:"field_pct"`
	TrailPct    float64 `csv:"trail_pct"`
	ConfettiPct float64 `csv:"confetti_pct"`
	PresentPct  float64 `csv:"present_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(frame int64, particles, connections int) PerfStatsCSV {
	return PerfStatsCSV{
		Frame:       frame,
		Particles:   particles,
		Connections: connections,
		AvgTickUS:   s.AvgTickDuration.Microseconds(),
		MinTickUS:   s.MinTickDuration.Microseconds(),
		MaxTickUS:   s.MaxTickDuration.Microseconds(),
		StdTickUS:   s.StdTickDuration.Microseconds(),
		TicksPerSec: s.TicksPerSecond,
		FPS:         s.FPS,
		JitterMS:    s.FrameJitterMS,
		InputPct:    s.PhasePct[PhaseInput],
		FieldPct:    s.PhasePct[PhaseField],
		TrailPct:    s.PhasePct[PhaseTrail],
		ConfettiPct: s.PhasePct[PhaseConfetti],
		PresentPct:  s.PhasePct[PhasePresent],
	}
}
