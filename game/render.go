package game

import (
	"context"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/plexus/renderer"
	"github.com/pthm-cable/plexus/ui"
)

// RunWindow drives app from the raylib frame loop until the window closes,
// ctx is cancelled or maxFrames frames are drawn. The window must be open.
func RunWindow(ctx context.Context, app *App, surface *renderer.RaylibSurface, maxFrames int64) {
	controls := ui.NewControlsPanel(10, 40, 200)
	controls.SetTheme(ui.ThemeFor(app.Theme()))

	var clicked []ui.ToggleID
	surface.Overlay = func() {
		clicked = drawWindowOverlay(app, controls)
	}
	defer func() { surface.Overlay = nil }()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		in := PollRaylib()
		if in.Quit {
			return
		}
		in.Clicked, clicked = clicked, nil

		// Buttons eat the click; keep the trail off the panel
		if in.Pointer.Inside && overPanel(controls, app, in.Pointer) {
			in.PointerMoved = false
		}

		app.Update(ctx, in)
		controls.SetTheme(ui.ThemeFor(app.Theme()))
		app.Draw()

		if maxFrames > 0 && app.Frame() >= maxFrames {
			return
		}
	}
}

// drawWindowOverlay draws the HUD, toggle buttons and key legend over the
// presented frame and returns the buttons clicked.
func drawWindowOverlay(app *App, controls *ui.ControlsPanel) []ui.ToggleID {
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())

	hud := app.HUD()
	hud.Draw(app.HUDData(), w, h)

	controls.SetVisible(hud.Visible())
	clicked := controls.Draw(app.Toggles())

	hud.DrawControls(h, app.Toggles().Legend())
	return clicked
}

func overPanel(controls *ui.ControlsPanel, app *App, p renderer.ScreenPointer) bool {
	if !controls.IsVisible() {
		return false
	}
	x, y := controls.Position()
	bounds := rl.Rectangle{
		X:      float32(x),
		Y:      float32(y),
		Width:  float32(controls.Width()),
		Height: float32(controls.Height(len(app.Toggles().Buttons()))),
	}
	return rl.CheckCollisionPointRec(rl.Vector2{X: p.X, Y: p.Y}, bounds)
}
