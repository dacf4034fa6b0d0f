package telemetry

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/plexus/detect"
)

// Reasons a profile was applied.
const (
	ReasonStartup = "startup"
	ReasonToggle  = "toggle"
	ReasonReset   = "reset"
	ReasonTheme   = "theme"
)

// ProfileRecord is one applied capability profile, flattened for CSV.
// Signal columns are empty for manual profiles that skipped detection.
type ProfileRecord struct {
	At             string  `csv:"at"`
	Frame          int64   `csv:"frame"`
	Reason         string  `csv:"reason"`
	Enabled        bool    `csv:"enabled"`
	Count          int     `csv:"count"`
	Distance       float32 `csv:"connection_distance"`
	Mode           string  `csv:"mode"`
	Score          int     `csv:"score"`
	UserAgent      string  `csv:"user_agent"`
	ViewportWidth  int     `csv:"viewport_width"`
	GPURenderer    string  `csv:"gpu_renderer"`
	DeviceMemoryGB float64 `csv:"device_memory_gb"`
	CPUCores       int     `csv:"cpu_cores"`
	NetworkType    string  `csv:"network_type"`
	SampledFPS     float64 `csv:"sampled_fps"`
}

// NewProfileRecord flattens p and, for automatic profiles, the decision
// behind it.
func NewProfileRecord(at time.Time, frame int64, reason string, p detect.Profile, dec *detect.Decision) ProfileRecord {
	r := ProfileRecord{
		At:       at.UTC().Format(time.RFC3339Nano),
		Frame:    frame,
		Reason:   reason,
		Enabled:  p.Enabled,
		Count:    p.Count,
		Distance: p.ConnectionDistance,
		Mode:     string(p.Mode),
	}
	if dec == nil || p.Mode != detect.ModeAuto {
		return r
	}

	s := dec.Signals
	r.Score = dec.Score
	r.UserAgent = s.UserAgent
	r.ViewportWidth = s.ViewportWidth
	r.GPURenderer = s.GPURenderer
	if s.DeviceMemoryGB != nil {
		r.DeviceMemoryGB = *s.DeviceMemoryGB
	}
	r.CPUCores = s.CPUCores
	r.NetworkType = s.NetworkType
	r.SampledFPS = s.FPS
	return r
}

// LogValue implements slog.LogValuer.
func (r ProfileRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("reason", r.Reason),
		slog.Bool("enabled", r.Enabled),
		slog.Int("count", r.Count),
		slog.Float64("distance", float64(r.Distance)),
		slog.String("mode", r.Mode),
		slog.Int("score", r.Score),
	)
}
