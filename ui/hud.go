package ui

import (
	"fmt"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pthm-cable/plexus/detect"
)

// HUDData holds everything the HUD shows for one frame.
type HUDData struct {
	Title        string
	FPS          float32
	TargetFPS    float32
	Profile      detect.Profile
	Score        int
	Detected     bool // an automatic decision exists
	Particles    int
	Connections  int
	TrailEnabled bool
	TrailMarks   int
	Confetti     int
	KeyProgress  int
	KeyLength    int
	ThemeName    string
	Accent       color.RGBA
	Paused       bool
	Message      string
}

// StatsPanel describes the HUD stats panel.
func StatsPanel() PanelDescriptor {
	return PanelDescriptor{
		ID:     "stats",
		Width:  240,
		Anchor: AnchorTopRight,
		Sections: []SectionDescriptor{
			{
				ID:    "frame",
				Title: "Frame",
				Fields: []FieldDescriptor{
					{
						ID: "fps", Label: "FPS", Widget: WidgetBar, Format: "%.0f",
						Getter: func(d HUDData) float32 { return d.FPS },
						Range:  FieldRange{Min: 0, Max: 60},
					},
					{
						ID: "particles", Label: "Particles", Widget: WidgetText,
						Getter: func(d HUDData) float32 { return float32(d.Particles) },
					},
					{
						ID: "connections", Label: "Lines", Widget: WidgetText,
						Getter: func(d HUDData) float32 { return float32(d.Connections) },
					},
					{
						ID: "paused", Label: "State", Widget: WidgetText,
						TextGetter: func(HUDData) string { return "paused" },
						Visible:    func(d HUDData) bool { return d.Paused },
					},
				},
			},
			{
				ID:    "capability",
				Title: "Capability",
				Fields: []FieldDescriptor{
					{
						ID: "enabled", Label: "Particles", Widget: WidgetText,
						TextGetter: func(d HUDData) string { return onOff(d.Profile.Enabled) },
					},
					{
						ID: "mode", Label: "Mode", Widget: WidgetText,
						TextGetter: func(d HUDData) string { return string(d.Profile.Mode) },
					},
					{
						ID: "score", Label: "Score", Widget: WidgetText,
						Getter:  func(d HUDData) float32 { return float32(d.Score) },
						Visible: func(d HUDData) bool { return d.Detected && d.Profile.Mode == detect.ModeAuto },
					},
					{
						ID: "count", Label: "Count", Widget: WidgetText,
						Getter: func(d HUDData) float32 { return float32(d.Profile.Count) },
					},
					{
						ID: "distance", Label: "Distance", Widget: WidgetText, Format: "%.0f",
						Getter: func(d HUDData) float32 { return d.Profile.ConnectionDistance },
					},
				},
			},
			{
				ID:    "effects",
				Title: "Effects",
				Fields: []FieldDescriptor{
					{
						ID: "trail", Label: "Trail", Widget: WidgetText,
						TextGetter: func(d HUDData) string {
							if !d.TrailEnabled {
								return "off"
							}
							return fmt.Sprintf("on (%d)", d.TrailMarks)
						},
					},
					{
						ID: "keyseq", Label: "Sequence", Widget: WidgetBar,
						TextGetter: func(d HUDData) string { return fmt.Sprintf("%d/%d", d.KeyProgress, d.KeyLength) },
						Getter:     func(d HUDData) float32 { return float32(d.KeyProgress) },
						Range:      FieldRange{Min: 0, Max: 10},
						Visible:    func(d HUDData) bool { return d.KeyProgress > 0 },
					},
					{
						ID: "confetti", Label: "Confetti", Widget: WidgetText,
						Getter:  func(d HUDData) float32 { return float32(d.Confetti) },
						Visible: func(d HUDData) bool { return d.Confetti > 0 },
					},
					{
						ID: "theme", Label: "Theme", Widget: WidgetColorSwatch,
						TextGetter:  func(d HUDData) string { return d.ThemeName },
						ColorGetter: func(d HUDData) color.RGBA { return d.Accent },
					},
				},
			},
		},
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// HUD renders the heads-up display.
type HUD struct {
	renderer *Renderer
	panel    PanelDescriptor
	visible  bool
}

// NewHUD creates a visible HUD.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		panel:    StatsPanel(),
		visible:  true,
	}
}

// SetTheme restyles the HUD.
func (h *HUD) SetTheme(t Theme) {
	h.renderer.Theme = t
}

// Visible reports whether the stats panel is shown.
func (h *HUD) Visible() bool {
	return h.visible
}

// Toggle switches the stats panel on or off.
func (h *HUD) Toggle() bool {
	h.visible = !h.visible
	return h.visible
}

// Lines returns the stats panel as plain text lines.
func (h *HUD) Lines(data HUDData) []string {
	rows := h.rows(data)
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.Widget == WidgetSpacer {
			continue
		}
		lines = append(lines, row.String())
	}
	return lines
}

func (h *HUD) rows(data HUDData) []Row {
	rows := Rows(h.panel, data)
	if data.KeyLength > 0 {
		// Sequence bar range follows the configured sequence
		for i := range rows {
			if rows[i].Label == "Sequence" {
				rows[i].Fill = FieldRange{Max: float32(data.KeyLength)}.Normalize(float32(data.KeyProgress))
			}
		}
	}
	return rows
}

// Draw renders the title, the stats panel and any message banner.
func (h *HUD) Draw(data HUDData, screenW, screenH int32) {
	t := h.renderer.Theme
	if data.Title != "" {
		rl.DrawText(data.Title, 10, 10, 20, t.ValueColor)
	}
	if h.visible {
		h.renderer.DrawPanelRows(h.rows(data), h.panel.Anchor, h.panel.Width, screenW, screenH)
	}
	if data.Message != "" {
		h.DrawMessage(data.Message, screenW, screenH)
	}
}

// DrawMessage draws a centered banner.
func (h *HUD) DrawMessage(msg string, screenW, screenH int32) {
	t := h.renderer.Theme
	size := int32(24)
	w := rl.MeasureText(msg, size)
	x := (screenW - w) / 2
	y := screenH/2 - size
	h.renderer.DrawPanel(x-16, y-12, w+32, size+24)
	rl.DrawText(msg, x, y, size, t.SectionHeader)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, h.renderer.Theme.MutedColor)
}
