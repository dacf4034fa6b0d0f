// Package detect decides whether the particle effect is worth running on the
// current device and at which fidelity tier.
package detect

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pthm-cable/plexus/config"
)

// Mode records how a Profile was decided.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeManual Mode = "manual"
)

// Profile is the detector's output, consumed by the renderer at mount.
type Profile struct {
	Enabled            bool    `json:"particlesEnabled"`
	Count              int     `json:"particleCount"`
	ConnectionDistance float32 `json:"connectionDistanceThreshold"`
	Mode               Mode    `json:"detectionMode"`
}

// Active reports whether the profile asks for any particles at all.
func (p Profile) Active() bool {
	return p.Enabled && p.Count > 0
}

// Tier is one fidelity preset.
type Tier struct {
	Count              int
	ConnectionDistance float32
}

// Signals are the device capability inputs to a decision.
// Zero values mean the signal is unknown and contribute nothing.
type Signals struct {
	UserAgent      string   `json:"userAgent"`
	ViewportWidth  int      `json:"viewportWidth"`
	GPURenderer    string   `json:"gpuRenderer"`
	DeviceMemoryGB *float64 `json:"deviceMemory,omitempty"`
	CPUCores       int      `json:"hardwareConcurrency"`
	NetworkType    string   `json:"effectiveType"`
	FPS            float64  `json:"fps"`
}

// Heuristics holds the constants of the scoring function.
type Heuristics struct {
	Mobile           *regexp.Regexp
	SmallScreenWidth int
	GPUVendor        *regexp.Regexp
	MinFPS           float64
	HighTierScore    int
	High             Tier
	Low              Tier
	Manual           Tier
}

// NewHeuristics compiles the detection section of the configuration.
func NewHeuristics(c config.DetectConfig) (Heuristics, error) {
	mobile, err := regexp.Compile(c.MobilePattern)
	if err != nil {
		return Heuristics{}, fmt.Errorf("compiling mobile pattern: %w", err)
	}
	gpu, err := regexp.Compile(c.GPUVendorPattern)
	if err != nil {
		return Heuristics{}, fmt.Errorf("compiling gpu vendor pattern: %w", err)
	}
	return Heuristics{
		Mobile:           mobile,
		SmallScreenWidth: c.SmallScreenWidth,
		GPUVendor:        gpu,
		MinFPS:           c.MinFPS,
		HighTierScore:    c.HighTierScore,
		High:             tierFrom(c.High),
		Low:              tierFrom(c.Low),
		Manual:           tierFrom(c.Manual),
	}, nil
}

// DefaultHeuristics returns heuristics from the embedded defaults.
func DefaultHeuristics() Heuristics {
	cfg, err := config.Defaults()
	if err != nil {
		panic(err)
	}
	h, err := NewHeuristics(cfg.Detect)
	if err != nil {
		panic(err)
	}
	return h
}

func tierFrom(t config.TierConfig) Tier {
	return Tier{Count: t.Count, ConnectionDistance: float32(t.ConnectionDistance)}
}

// IsMobile reports whether the signals describe a phone-class device.
// An unknown (zero) viewport width is not considered small.
func IsMobile(s Signals, h Heuristics) bool {
	if h.Mobile != nil && h.Mobile.MatchString(s.UserAgent) {
		return true
	}
	return s.ViewportWidth > 0 && s.ViewportWidth < h.SmallScreenWidth
}

// Score sums the hardware and network signals.
func Score(s Signals, h Heuristics) int {
	score := 0

	if s.GPURenderer != "" {
		if h.GPUVendor != nil && h.GPUVendor.MatchString(s.GPURenderer) {
			score += 2
		} else {
			score -= 2
		}
	}

	if s.DeviceMemoryGB != nil {
		score += capacityScore(*s.DeviceMemoryGB)
	}
	if s.CPUCores > 0 {
		score += capacityScore(float64(s.CPUCores))
	}

	switch strings.ToLower(s.NetworkType) {
	case "4g":
		score++
	case "3g":
		score--
	case "2g", "slow-2g":
		score -= 2
	}

	return score
}

func capacityScore(v float64) int {
	switch {
	case v >= 8:
		return 2
	case v >= 4:
		return 1
	default:
		return -1
	}
}

// Decide maps signals to a Profile. It is pure.
func Decide(s Signals, h Heuristics) Profile {
	disabled := Profile{Mode: ModeAuto}
	if IsMobile(s, h) {
		return disabled
	}

	score := Score(s, h)
	if s.FPS < h.MinFPS || score < 0 {
		return disabled
	}

	tier := h.Low
	if score >= h.HighTierScore {
		tier = h.High
	}
	return Profile{
		Enabled:            true,
		Count:              tier.Count,
		ConnectionDistance: tier.ConnectionDistance,
		Mode:               ModeAuto,
	}
}

// ManualProfile is the profile returned while a manual override is set.
func ManualProfile(enabled bool, h Heuristics) Profile {
	return Profile{
		Enabled:            enabled,
		Count:              h.Manual.Count,
		ConnectionDistance: h.Manual.ConnectionDistance,
		Mode:               ModeManual,
	}
}
