package ui

import (
	"fmt"
	"strings"
)

// ToggleID uniquely identifies a toggle.
type ToggleID string

// Standard toggle IDs.
const (
	ToggleParticles ToggleID = "particles"
	ToggleTrail     ToggleID = "trail"
	ToggleTheme     ToggleID = "theme"
	ToggleHUD       ToggleID = "hud"
	TogglePause     ToggleID = "pause"
	ToggleRedetect  ToggleID = "redetect"
)

// ToggleDescriptor defines a user-facing switch and its key binding.
type ToggleDescriptor struct {
	ID       ToggleID
	Name     string
	Key      string // Logical key name, lower case (e.g. "p", "space")
	Alt      bool   // Requires the Alt modifier
	KeyLabel string
	Category string // "effects" or "view"
	Button   bool   // Also shown as an on-screen button
}

// ToggleRegistry holds toggle metadata and mirrors their state for display.
// The owning app performs the actual switch and reports back via SetEnabled.
type ToggleRegistry struct {
	descriptors []ToggleDescriptor
	byID        map[ToggleID]int
	enabled     map[ToggleID]bool
}

// NewToggleRegistry creates a registry with the standard toggles.
func NewToggleRegistry() *ToggleRegistry {
	reg := &ToggleRegistry{
		byID:    make(map[ToggleID]int),
		enabled: make(map[ToggleID]bool),
	}
	reg.registerDefaults()
	return reg
}

func (r *ToggleRegistry) registerDefaults() {
	r.Register(ToggleDescriptor{ID: ToggleParticles, Name: "Particles", Key: "p", KeyLabel: "P", Category: "effects", Button: true})
	r.Register(ToggleDescriptor{ID: ToggleTrail, Name: "Trail", Key: "m", Alt: true, KeyLabel: "Alt+M", Category: "effects", Button: true})
	r.Register(ToggleDescriptor{ID: ToggleTheme, Name: "Theme", Key: "t", KeyLabel: "T", Category: "view", Button: true})
	r.Register(ToggleDescriptor{ID: ToggleHUD, Name: "HUD", Key: "h", KeyLabel: "H", Category: "view"})
	r.Register(ToggleDescriptor{ID: TogglePause, Name: "Pause", Key: "space", KeyLabel: "Space", Category: "view"})
	r.Register(ToggleDescriptor{ID: ToggleRedetect, Name: "Auto", Key: "r", KeyLabel: "R", Category: "effects"})
}

// Register adds a toggle. Registering an existing ID replaces it.
func (r *ToggleRegistry) Register(desc ToggleDescriptor) {
	if i, ok := r.byID[desc.ID]; ok {
		r.descriptors[i] = desc
		return
	}
	r.byID[desc.ID] = len(r.descriptors)
	r.descriptors = append(r.descriptors, desc)
}

// Get returns a descriptor by ID.
func (r *ToggleRegistry) Get(id ToggleID) (ToggleDescriptor, bool) {
	i, ok := r.byID[id]
	if !ok {
		return ToggleDescriptor{}, false
	}
	return r.descriptors[i], true
}

// All returns all toggles in registration order.
func (r *ToggleRegistry) All() []ToggleDescriptor {
	return r.descriptors
}

// Buttons returns the toggles shown as on-screen buttons.
func (r *ToggleRegistry) Buttons() []ToggleDescriptor {
	var result []ToggleDescriptor
	for _, desc := range r.descriptors {
		if desc.Button {
			result = append(result, desc)
		}
	}
	return result
}

// SetEnabled records a toggle's current state.
func (r *ToggleRegistry) SetEnabled(id ToggleID, enabled bool) {
	r.enabled[id] = enabled
}

// IsEnabled returns a toggle's recorded state.
func (r *ToggleRegistry) IsEnabled(id ToggleID) bool {
	return r.enabled[id]
}

// Match returns the toggle bound to key. Toggles that require Alt only
// match when alt is held.
func (r *ToggleRegistry) Match(key string, alt bool) (ToggleID, bool) {
	key = strings.ToLower(key)
	for _, desc := range r.descriptors {
		if desc.Key == key && (alt || !desc.Alt) {
			return desc.ID, true
		}
	}
	return "", false
}

// RelaxModifiers drops Alt requirements, for hosts where the plain key is
// free (the terminal has no text input to protect).
func (r *ToggleRegistry) RelaxModifiers() {
	for i := range r.descriptors {
		if r.descriptors[i].Alt {
			r.descriptors[i].Alt = false
			r.descriptors[i].KeyLabel = strings.ToUpper(r.descriptors[i].Key)
		}
	}
}

// Legend returns the key legend, e.g. "[P] Particles  [Alt+M] Trail".
func (r *ToggleRegistry) Legend() string {
	parts := make([]string, 0, len(r.descriptors))
	for _, desc := range r.descriptors {
		parts = append(parts, fmt.Sprintf("[%s] %s", desc.KeyLabel, desc.Name))
	}
	return strings.Join(parts, "  ")
}
