package game

import (
	"context"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/plexus/renderer"
)

// TerminalInput folds tcell events into the next frame's Input.
// Not safe for concurrent use; the loop goroutine owns it.
type TerminalInput struct {
	pending Input
	pointer renderer.ScreenPointer
	last    time.Time
}

// NewTerminalInput creates an input accumulator.
func NewTerminalInput() *TerminalInput {
	return &TerminalInput{}
}

// Handle folds one event. Returns false when the user asked to quit.
func (t *TerminalInput) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune && ev.Rune() == 'q' {
			return false
		}
		if name, ok := terminalKeyName(ev); ok {
			t.pending.Keys = append(t.pending.Keys, Key{Name: name, Alt: ev.Modifiers()&tcell.ModAlt != 0})
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		p := renderer.ScreenPointer{
			X:      float32(col*renderer.CellW + renderer.CellW/2),
			Y:      float32(row*renderer.CellH + renderer.CellH/2),
			Inside: true,
		}
		if p != t.pointer {
			t.pending.PointerMoved = true
		}
		t.pointer = p

	case *tcell.EventResize:
		cols, rows := ev.Size()
		t.pending.Width = cols * renderer.CellW
		t.pending.Height = rows * renderer.CellH
	}
	return true
}

// Next returns the input accumulated since the previous call.
func (t *TerminalInput) Next(now time.Time) Input {
	in := t.pending
	t.pending = Input{}

	in.Now = now
	in.Pointer = t.pointer
	if !t.last.IsZero() {
		in.DT = float32(now.Sub(t.last).Seconds())
	}
	t.last = now
	return in
}

func terminalKeyName(ev *tcell.EventKey) (string, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return "up", true
	case tcell.KeyDown:
		return "down", true
	case tcell.KeyLeft:
		return "left", true
	case tcell.KeyRight:
		return "right", true
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			return "space", true
		}
		return strings.ToLower(string(ev.Rune())), true
	}
	return "", false
}

// RunTerminal drives app from a frame ticker and terminal events until ctx
// is cancelled, the user quits or maxFrames frames are drawn.
func RunTerminal(ctx context.Context, app *App, surface *renderer.TerminalSurface, fps int, maxFrames int64) {
	if fps <= 0 {
		fps = 30
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	screen := surface.Screen()
	screen.EnableMouse(tcell.MouseMotionEvents)
	defer screen.DisableMouse()

	app.SetPresentHook(func() { drawTerminalOverlay(app, surface) })

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				// Screen finalised
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	input := NewTerminalInput()
	for {
		select {
		case <-ctx.Done():
			return

		case ev := <-events:
			if !input.Handle(ev) {
				return
			}

		case now := <-ticker.C:
			app.Update(ctx, input.Next(now))
			app.Draw()
			if maxFrames > 0 && app.Frame() >= maxFrames {
				return
			}
		}
	}
}

// drawTerminalOverlay prints the HUD, banner and key legend as text.
func drawTerminalOverlay(app *App, surface *renderer.TerminalSurface) {
	cols, rows := surface.Screen().Size()
	theme := app.Theme()

	if app.HUD().Visible() {
		lines := app.HUD().Lines(app.HUDData())
		width := 0
		for _, l := range lines {
			if len(l) > width {
				width = len(l)
			}
		}
		for i, l := range lines {
			surface.Text(cols-width-1, i, l, theme.Text)
		}
	}
	if msg := app.Message(); msg != "" {
		surface.Text((cols-len(msg))/2, rows/2, msg, theme.Line)
	}
	surface.Text(0, rows-1, app.Toggles().Legend()+"  [Q] Quit", theme.Text)
}
