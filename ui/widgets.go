package ui

import (
	"fmt"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Row is one resolved line of a panel.
type Row struct {
	Header bool
	Label  string
	Value  string
	Widget WidgetType
	Fill   float32 // Bar fill in [0, 1]
	Color  color.RGBA
}

// String formats the row as plain text.
func (r Row) String() string {
	switch {
	case r.Header:
		return r.Label
	case r.Widget == WidgetSpacer:
		return ""
	case r.Label == "":
		return r.Value
	default:
		return r.Label + ": " + r.Value
	}
}

// Rows resolves a panel against data, skipping hidden sections and fields.
func Rows(p PanelDescriptor, data HUDData) []Row {
	var rows []Row
	if p.Title != "" {
		rows = append(rows, Row{Header: true, Label: p.Title})
	}
	for _, sd := range p.Sections {
		if sd.Visible != nil && !sd.Visible(data) {
			continue
		}
		if sd.Title != "" {
			rows = append(rows, Row{Header: true, Label: sd.Title})
		}
		for _, fd := range sd.Fields {
			if fd.Visible != nil && !fd.Visible(data) {
				continue
			}
			rows = append(rows, resolve(fd, data))
		}
	}
	return rows
}

func resolve(fd FieldDescriptor, data HUDData) Row {
	row := Row{Label: fd.Label, Widget: fd.Widget}
	var v float32
	if fd.Getter != nil {
		v = fd.Getter(data)
	}

	switch {
	case fd.TextGetter != nil:
		row.Value = fd.TextGetter(data)
	case fd.Getter != nil:
		format := fd.Format
		if format == "" {
			format = "%.0f"
		}
		row.Value = fmt.Sprintf(format, v)
	}

	switch fd.Widget {
	case WidgetBar:
		row.Fill = fd.Range.Normalize(v)
	case WidgetColorSwatch:
		if fd.ColorGetter != nil {
			row.Color = fd.ColorGetter(data)
		}
	}
	return row
}

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	if label != "" {
		rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
		x += r.Theme.LabelWidth
	}
	rl.DrawText(value, x, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawBar draws a labelled bar filled to fill in [0, 1] with the value text.
func (r *Renderer) DrawBar(x, y int32, label, value string, fill float32, width int32) int32 {
	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 50

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)

	// Low fill reads as trouble (e.g. frame rate)
	barColor := r.Theme.BarFillHigh
	if fill < 0.3 {
		barColor = r.Theme.BarFillLow
	} else if fill < 0.6 {
		barColor = r.Theme.BarFillMedium
	}
	rl.DrawRectangle(barX, y+2, int32(float32(barWidth)*fill), r.Theme.BarHeight, barColor)

	rl.DrawText(value, barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight + 2
}

// DrawColorSwatch draws a color swatch with the value text beside it.
func (r *Renderer) DrawColorSwatch(x, y int32, label, value string, c color.RGBA) int32 {
	swatchSize := int32(12)
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(x+r.Theme.LabelWidth, y+1, swatchSize, swatchSize, rgba(c))
	rl.DrawText(value, x+r.Theme.LabelWidth+swatchSize+6, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawRow renders one resolved row and returns the new Y.
func (r *Renderer) DrawRow(x, y int32, row Row, width int32) int32 {
	if row.Header {
		return r.DrawSectionHeader(x, y, row.Label)
	}
	switch row.Widget {
	case WidgetBar:
		return r.DrawBar(x, y, row.Label, row.Value, row.Fill, width)
	case WidgetColorSwatch:
		return r.DrawColorSwatch(x, y, row.Label, row.Value, row.Color)
	case WidgetSpacer:
		return y + 6
	default:
		return r.DrawLabelValue(x, y, row.Label, row.Value)
	}
}

// PanelHeight returns the pixel height needed for rows.
func (r *Renderer) PanelHeight(rows []Row) int32 {
	h := r.Theme.Padding * 2
	for _, row := range rows {
		switch {
		case row.Widget == WidgetSpacer && !row.Header:
			h += 6
		case row.Widget == WidgetBar && !row.Header:
			h += r.Theme.LineHeight + 2
		default:
			h += r.Theme.LineHeight
		}
	}
	return h
}

// DrawPanelRows draws a background panel sized to rows at the anchor and
// returns its bounds.
func (r *Renderer) DrawPanelRows(rows []Row, anchor PanelAnchor, width, screenW, screenH int32) rl.Rectangle {
	height := r.PanelHeight(rows)
	x, y := anchorOrigin(anchor, width, height, screenW, screenH, r.Theme.Padding)

	r.DrawPanel(x, y, width, height)
	cy := y + r.Theme.Padding
	for _, row := range rows {
		cy = r.DrawRow(x+r.Theme.Padding, cy, row, width-r.Theme.Padding*2)
	}
	return rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(width), Height: float32(height)}
}

func anchorOrigin(a PanelAnchor, w, h, screenW, screenH, margin int32) (int32, int32) {
	switch a {
	case AnchorTopRight:
		return screenW - w - margin, margin
	case AnchorBottomLeft:
		return margin, screenH - h - margin
	case AnchorBottomRight:
		return screenW - w - margin, screenH - h - margin
	default:
		return margin, margin
	}
}
