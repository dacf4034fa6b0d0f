// Package ui provides the on-screen HUD and toggle controls for the window
// host. Panels are described by metadata so the same rows can be drawn with
// raylib or printed by the terminal host.
package ui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pthm-cable/plexus/renderer"
)

// WidgetType specifies how a field should be rendered.
type WidgetType int

const (
	WidgetText        WidgetType = iota // Plain text with format string
	WidgetBar                           // Progress bar over Range
	WidgetColorSwatch                   // Color preview square
	WidgetSpacer                        // Vertical spacing
)

// FieldRange defines the value range for bar widgets.
type FieldRange struct {
	Min float32
	Max float32
}

// DefaultRange returns a [0, 1] range.
func DefaultRange() FieldRange {
	return FieldRange{Min: 0, Max: 1}
}

// Normalize maps v into [0, 1] over the range.
func (r FieldRange) Normalize(v float32) float32 {
	if r.Max <= r.Min {
		return 0
	}
	n := (v - r.Min) / (r.Max - r.Min)
	if n < 0 {
		return 0
	}
	if n > 1 {
		return 1
	}
	return n
}

// FieldDescriptor defines how to display a single piece of HUD data.
type FieldDescriptor struct {
	ID          string                   // Unique identifier for the field
	Label       string                   // Display label
	Widget      WidgetType               // How to render
	Format      string                   // Printf format for numeric text (e.g., "%.1f")
	Range       FieldRange               // Value range for bars
	Visible     func(HUDData) bool       // Optional visibility check (nil = always visible)
	Getter      func(HUDData) float32    // Value extractor (numeric fields)
	TextGetter  func(HUDData) string     // Value extractor (text fields)
	ColorGetter func(HUDData) color.RGBA // Color extractor (swatches)
}

// SectionDescriptor defines a group of fields with a header.
type SectionDescriptor struct {
	ID      string
	Title   string
	Fields  []FieldDescriptor
	Visible func(HUDData) bool
}

// PanelDescriptor defines a complete panel layout.
type PanelDescriptor struct {
	ID       string
	Title    string
	Sections []SectionDescriptor
	Width    int32 // 0 = default
	Anchor   PanelAnchor
}

// PanelAnchor specifies where a panel is anchored on screen.
type PanelAnchor int

const (
	AnchorTopLeft PanelAnchor = iota
	AnchorTopRight
	AnchorBottomLeft
	AnchorBottomRight
)

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	MutedColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	BarFillLow     rl.Color
	BarFillMedium  rl.Color
	BarFillHigh    rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the dark UI theme.
func DefaultTheme() Theme {
	return ThemeFor(renderer.Dark)
}

// ThemeFor derives UI styling from a field theme so panels follow the
// light/dark switch.
func ThemeFor(t renderer.Theme) Theme {
	bg := rgba(t.Background)
	bg.A = 220
	text := rgba(t.Text)
	accent := rgba(t.Line)

	border := text
	border.A = 60
	muted := text
	muted.A = 150
	barBg := text
	barBg.A = 40

	return Theme{
		PanelBg:        bg,
		PanelBorder:    border,
		SectionHeader:  accent,
		LabelColor:     muted,
		ValueColor:     text,
		MutedColor:     muted,
		BarBg:          barBg,
		BarFill:        accent,
		BarFillLow:     rl.Color{R: 200, G: 100, B: 100, A: 255},
		BarFillMedium:  rl.Color{R: 200, G: 180, B: 100, A: 255},
		BarFillHigh:    rl.Color{R: 100, G: 200, B: 100, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     90,
		BarHeight:      10,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}

func rgba(c color.RGBA) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
