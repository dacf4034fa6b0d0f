package game

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/plexus/renderer"
	"github.com/pthm-cable/plexus/ui"
)

// Key is one key press with a logical, lower case name ("p", "up", "space").
type Key struct {
	Name string
	Alt  bool
}

// Input is everything a host observed since the previous frame.
type Input struct {
	Now          time.Time
	DT           float32 // Seconds since the previous frame
	Width        int     // Surface size, 0 = unchanged
	Height       int
	Pointer      renderer.ScreenPointer
	PointerMoved bool
	Keys         []Key
	Clicked      []ui.ToggleID // On-screen buttons pressed
	Quit         bool
}

// raylibKeys maps raylib key codes to logical names.
var raylibKeys = map[int32]string{
	rl.KeyUp:    "up",
	rl.KeyDown:  "down",
	rl.KeyLeft:  "left",
	rl.KeyRight: "right",
	rl.KeySpace: "space",
	rl.KeyA:     "a",
	rl.KeyB:     "b",
	rl.KeyH:     "h",
	rl.KeyM:     "m",
	rl.KeyP:     "p",
	rl.KeyR:     "r",
	rl.KeyT:     "t",
}

// PollRaylib reads input from the open raylib window.
func PollRaylib() Input {
	in := Input{
		Now: time.Now(),
		DT:  rl.GetFrameTime(),
	}

	if rl.IsWindowResized() {
		in.Width, in.Height = rl.GetScreenWidth(), rl.GetScreenHeight()
	}

	mouse := rl.GetMousePosition()
	delta := rl.GetMouseDelta()
	in.Pointer = renderer.ScreenPointer{X: mouse.X, Y: mouse.Y, Inside: rl.IsCursorOnScreen()}
	in.PointerMoved = in.Pointer.Inside && (delta.X != 0 || delta.Y != 0)

	alt := rl.IsKeyDown(rl.KeyLeftAlt) || rl.IsKeyDown(rl.KeyRightAlt)
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		if name, ok := raylibKeys[key]; ok {
			in.Keys = append(in.Keys, Key{Name: name, Alt: alt})
		}
	}

	// Fullscreen toggle stays with the host
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	in.Quit = rl.WindowShouldClose()
	return in
}
