package renderer

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
)

// Terminal cells are treated as CellW x CellH virtual pixels so the field
// keeps roughly the proportions it has in a window.
const (
	CellW = 8
	CellH = 16
)

// TerminalSurface draws into a tcell screen. Every Fade clears the screen;
// cells cannot blend, so translucency only scales the color.
type TerminalSurface struct {
	screen tcell.Screen
	bg     tcell.Color
}

// NewTerminalSurface wraps an initialised screen. The surface owns it and
// finalises it on Close.
func NewTerminalSurface(screen tcell.Screen) *TerminalSurface {
	return &TerminalSurface{screen: screen, bg: tcell.ColorDefault}
}

// Screen returns the underlying screen.
func (t *TerminalSurface) Screen() tcell.Screen {
	return t.screen
}

// Begin implements Surface.
func (t *TerminalSurface) Begin() {}

// Fade implements Surface.
func (t *TerminalSurface) Fade(c color.RGBA) {
	t.bg = tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	t.screen.SetStyle(tcell.StyleDefault.Background(t.bg))
	t.screen.Clear()
}

// Point implements Surface.
func (t *TerminalSurface) Point(x, y, r float32, c color.RGBA) {
	col, row := int(x)/CellW, int(y)/CellH
	ch := '·'
	if r >= 3 {
		ch = '●'
	} else if r >= 1.5 {
		ch = '•'
	}
	t.set(col, row, ch, c, true)
}

// Line implements Surface. Lines never overwrite points.
func (t *TerminalSurface) Line(x1, y1, x2, y2 float32, c color.RGBA) {
	c0, r0 := int(x1)/CellW, int(y1)/CellH
	c1, r1 := int(x2)/CellW, int(y2)/CellH
	ch := lineRune(x2-x1, y2-y1)

	// Bresenham over cells
	dc := abs(c1 - c0)
	dr := -abs(r1 - r0)
	sc, sr := sign(c1-c0), sign(r1-r0)
	err := dc + dr
	for {
		t.set(c0, r0, ch, c, false)
		if c0 == c1 && r0 == r1 {
			return
		}
		e2 := 2 * err
		if e2 >= dr {
			err += dr
			c0 += sc
		}
		if e2 <= dc {
			err += dc
			r0 += sr
		}
	}
}

// End implements Surface.
func (t *TerminalSurface) End() {
	t.screen.Show()
}

// Size returns the screen size in virtual pixels.
func (t *TerminalSurface) Size() (int, int) {
	cols, rows := t.screen.Size()
	return cols * CellW, rows * CellH
}

// Text writes s starting at a cell, clipped to the screen.
func (t *TerminalSurface) Text(col, row int, s string, c color.RGBA) {
	cols, rows := t.screen.Size()
	if row < 0 || row >= rows {
		return
	}
	style := tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))).
		Background(t.bg)
	for _, r := range s {
		if col >= cols {
			return
		}
		if col >= 0 {
			t.screen.SetContent(col, row, r, nil, style)
		}
		col++
	}
}

// Close finalises the screen.
func (t *TerminalSurface) Close() error {
	t.screen.Fini()
	return nil
}

func (t *TerminalSurface) set(col, row int, ch rune, c color.RGBA, point bool) {
	cols, rows := t.screen.Size()
	if col < 0 || row < 0 || col >= cols || row >= rows {
		return
	}
	if !point {
		if existing, _, _, _ := t.screen.GetContent(col, row); existing == '·' || existing == '•' || existing == '●' {
			return
		}
	}
	// Blend toward the background by alpha
	a := float64(c.A) / 255
	br, bg, bb := t.bg.RGB()
	if br < 0 {
		br, bg, bb = 0, 0, 0
	}
	fg := tcell.NewRGBColor(
		int32(float64(c.R)*a+float64(br)*(1-a)),
		int32(float64(c.G)*a+float64(bg)*(1-a)),
		int32(float64(c.B)*a+float64(bb)*(1-a)),
	)
	t.screen.SetContent(col, row, ch, nil, tcell.StyleDefault.Foreground(fg).Background(t.bg))
}

func lineRune(dx, dy float32) rune {
	// Screen y points down
	angle := math.Atan2(float64(-dy), float64(dx)) * 180 / math.Pi
	if angle < 0 {
		angle += 180
	}
	switch {
	case angle < 22.5 || angle >= 157.5:
		return '─'
	case angle < 67.5:
		return '╱'
	case angle < 112.5:
		return '│'
	default:
		return '╲'
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
