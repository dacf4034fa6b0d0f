package game

import (
	"github.com/pthm-cable/plexus/detect"
	"github.com/pthm-cable/plexus/prefs"
	"github.com/pthm-cable/plexus/renderer"
	"github.com/pthm-cable/plexus/telemetry"
)

// Options holds run settings taken from flags.
type Options struct {
	Seed      int64
	LogStats  bool
	Theme     string // "dark", "light" or "" for the configured default
	Terminal  bool   // plain keys for Alt bindings, screen width in cells
	OutputDir string
}

// Player plays the completion chime.
type Player interface {
	Play()
}

// Deps are the host-provided collaborators of an App.
// Store and Probe may be nil: overrides then live in memory and detection
// sees no signals (which decides to disabled).
type Deps struct {
	Surface renderer.Surface
	Store   prefs.Store
	Probe   detect.Probe
	Chime   Player
	Output  *telemetry.OutputManager
}
