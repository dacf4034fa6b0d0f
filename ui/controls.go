package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsPanel renders the on-screen toggle buttons.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a visible controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// SetTheme restyles the panel.
func (c *ControlsPanel) SetTheme(t Theme) {
	c.renderer.Theme = t
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Position returns the panel's top left corner.
func (c *ControlsPanel) Position() (int32, int32) {
	return c.x, c.y
}

// Width returns the panel width.
func (c *ControlsPanel) Width() int32 {
	return c.width
}

// SetVisible shows or hides the panel.
func (c *ControlsPanel) SetVisible(visible bool) {
	c.visible = visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Height returns the panel height for n buttons.
func (c *ControlsPanel) Height(n int) int32 {
	return int32(n)*(buttonHeight+buttonGap) + c.renderer.Theme.Padding*2 - buttonGap
}

const (
	buttonHeight = 26
	buttonGap    = 6
)

// Draw renders one button per registry toggle and returns the toggles
// clicked this frame.
func (c *ControlsPanel) Draw(toggles *ToggleRegistry) []ToggleID {
	if !c.visible {
		return nil
	}

	buttons := toggles.Buttons()
	r := c.renderer
	padding := r.Theme.Padding
	r.DrawPanel(c.x, c.y, c.width, c.Height(len(buttons)))

	var clicked []ToggleID
	y := c.y + padding
	for _, desc := range buttons {
		bounds := rl.Rectangle{
			X:      float32(c.x + padding),
			Y:      float32(y),
			Width:  float32(c.width - padding*2),
			Height: buttonHeight,
		}
		if gui.Button(bounds, ButtonLabel(desc, toggles.IsEnabled(desc.ID))) {
			clicked = append(clicked, desc.ID)
		}
		y += buttonHeight + buttonGap
	}
	return clicked
}

// ButtonLabel returns the caption for a toggle button.
func ButtonLabel(desc ToggleDescriptor, enabled bool) string {
	state := "Off"
	if enabled {
		state = "On"
	}
	if desc.ID == ToggleTheme {
		state = "Light"
		if enabled {
			state = "Dark"
		}
	}
	return fmt.Sprintf("%s: %s [%s]", desc.Name, state, desc.KeyLabel)
}
