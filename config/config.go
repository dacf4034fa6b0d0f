// Package config provides configuration loading and access for the particle field.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Field     FieldConfig     `yaml:"field"`
	Detect    DetectConfig    `yaml:"detect"`
	Trail     TrailConfig     `yaml:"trail"`
	KeySeq    KeySeqConfig    `yaml:"keyseq"`
	Confetti  ConfettiConfig  `yaml:"confetti"`
	Theme     ThemeConfig     `yaml:"theme"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Server    ServerConfig    `yaml:"server"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// FieldConfig holds particle field simulation parameters.
// Distances are in screen pixels; the field runs in a centered box of the
// viewport size.
type FieldConfig struct {
	MaxSpeed          float64 `yaml:"max_speed"`          // Per-axis velocity range is [-max/2, max/2] per 60Hz frame
	Depth             float64 `yaml:"depth"`              // Half-extent of the z axis (0 = flat)
	MinRadius         float64 `yaml:"min_radius"`         // Point radius range
	MaxRadius         float64 `yaml:"max_radius"`
	RepulsionRadius   float64 `yaml:"repulsion_radius"`   // Pointer influence radius
	RepulsionStrength float64 `yaml:"repulsion_strength"` // Push per unit of (radius - distance)
	FrameScale        float64 `yaml:"frame_scale"`        // Elapsed-time multiplier (velocity units per second)
	MaxStep           float64 `yaml:"max_step"`           // Largest dt accepted per tick, seconds
	GridThreshold     int     `yaml:"grid_threshold"`     // Particle count above which the spatial grid is used
	FadeAlpha         float64 `yaml:"fade_alpha"`         // Trail fade applied per frame (0 = clear)
	LineAlpha         float64 `yaml:"line_alpha"`         // Connection line opacity
	PointAlpha        float64 `yaml:"point_alpha"`        // Point opacity
	Focal             float64 `yaml:"focal"`              // Perspective focal length for depth
}

// TierConfig is one fidelity preset.
type TierConfig struct {
	Count              int     `yaml:"count"`
	ConnectionDistance float64 `yaml:"connection_distance"`
}

// DetectConfig holds capability detection heuristics.
type DetectConfig struct {
	MobilePattern    string        `yaml:"mobile_pattern"`
	SmallScreenWidth int           `yaml:"small_screen_width"`
	SmallScreenCols  int           `yaml:"small_screen_cols"` // Terminal host threshold in cells
	GPUVendorPattern string        `yaml:"gpu_vendor_pattern"`
	MinFPS           float64       `yaml:"min_fps"`
	HighTierScore    int           `yaml:"high_tier_score"`
	High             TierConfig    `yaml:"high"`
	Low              TierConfig    `yaml:"low"`
	Manual           TierConfig    `yaml:"manual"`
	SampleDuration   time.Duration `yaml:"sample_duration"`
	SampleMaxFrames  int           `yaml:"sample_max_frames"`
	NetworkType      string        `yaml:"network_type"` // Optional host hint: 4g, 3g, 2g, slow-2g
}

// TrailConfig holds mouse-trail parameters.
type TrailConfig struct {
	Throttle      time.Duration `yaml:"throttle"`
	MaxMarks      int           `yaml:"max_marks"`
	Lifetime      time.Duration `yaml:"lifetime"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
	MinSize       float64       `yaml:"min_size"`
	MaxSize       float64       `yaml:"max_size"`
}

// KeySeqConfig holds the key-sequence easter egg parameters.
type KeySeqConfig struct {
	Sequence []string      `yaml:"sequence"`
	Latch    time.Duration `yaml:"latch"`
	Chime    bool          `yaml:"chime"`
	Volume   float64       `yaml:"volume"` // Linear chime volume (0 = silent)
}

// ConfettiConfig holds burst parameters for the key-sequence celebration.
type ConfettiConfig struct {
	MaxParticles int     `yaml:"max_particles"`
	BurstCount   int     `yaml:"burst_count"`
	Speed        float64 `yaml:"speed"`
	Gravity      float64 `yaml:"gravity"`
	Life         int     `yaml:"life"` // Frames
}

// ThemeConfig selects the starting color scheme.
type ThemeConfig struct {
	Dark bool `yaml:"dark"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
	LogInterval         float64 `yaml:"log_interval"` // Seconds between perf log lines
}

// ServerConfig holds HTTP service parameters.
type ServerConfig struct {
	Port     string `yaml:"port"`
	Database string `yaml:"database"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32  float32 // Screen.Width as float32
	ScreenH32  float32 // Screen.Height as float32
	FrameTime  float32 // 1 / TargetFPS
	MaxStep32  float32 // Field.MaxStep as float32
	SequenceOK bool    // KeySeq.Sequence has at least one key
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()
	return cfg, nil
}

// Defaults returns a fresh copy of the embedded defaults.
func Defaults() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	cfg.computeDerived()
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	if c.Screen.TargetFPS <= 0 {
		c.Screen.TargetFPS = 60
	}
	c.Derived.FrameTime = 1 / float32(c.Screen.TargetFPS)

	if c.Field.MaxStep <= 0 {
		c.Field.MaxStep = 0.1
	}
	c.Derived.MaxStep32 = float32(c.Field.MaxStep)

	if c.Field.Focal <= c.Field.Depth {
		c.Field.Focal = c.Field.Depth*4 + 1
	}

	c.Derived.SequenceOK = len(c.KeySeq.Sequence) > 0
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
