package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// RaylibSurface draws into an offscreen render target so translucent fades
// accumulate across frames, then presents it to the window.
// Requires an open raylib window; all calls must come from the main thread.
type RaylibSurface struct {
	target rl.RenderTexture2D
	width  int32
	height int32
	loaded bool

	// Overlay is drawn on top of the presented frame (HUD, widgets).
	Overlay func()
}

// NewRaylibSurface creates a surface sized to the current window.
func NewRaylibSurface() *RaylibSurface {
	s := &RaylibSurface{}
	s.ensureTarget()
	return s
}

func (s *RaylibSurface) ensureTarget() {
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	if s.loaded && w == s.width && h == s.height {
		return
	}
	if s.loaded {
		rl.UnloadRenderTexture(s.target)
	}
	s.target = rl.LoadRenderTexture(w, h)
	s.width, s.height = w, h
	s.loaded = true

	// Start from a clean target
	rl.BeginTextureMode(s.target)
	rl.ClearBackground(rl.Blank)
	rl.EndTextureMode()
}

// Begin implements Surface.
func (s *RaylibSurface) Begin() {
	s.ensureTarget()
	rl.BeginTextureMode(s.target)
}

// Fade implements Surface.
func (s *RaylibSurface) Fade(c color.RGBA) {
	if c.A == 255 {
		rl.ClearBackground(toRL(c))
		return
	}
	rl.DrawRectangle(0, 0, s.width, s.height, toRL(c))
}

// Point implements Surface.
func (s *RaylibSurface) Point(x, y, r float32, c color.RGBA) {
	rl.DrawCircleV(rl.Vector2{X: x, Y: y}, r, toRL(c))
}

// Line implements Surface.
func (s *RaylibSurface) Line(x1, y1, x2, y2 float32, c color.RGBA) {
	rl.DrawLineEx(rl.Vector2{X: x1, Y: y1}, rl.Vector2{X: x2, Y: y2}, 1, toRL(c))
}

// End presents the render target and the overlay.
func (s *RaylibSurface) End() {
	rl.EndTextureMode()

	rl.BeginDrawing()
	srcRect := rl.Rectangle{
		X:      0,
		Y:      float32(s.height),
		Width:  float32(s.width),
		Height: -float32(s.height), // Negative to flip
	}
	dstRect := rl.Rectangle{
		Width:  float32(s.width),
		Height: float32(s.height),
	}
	rl.DrawTexturePro(s.target.Texture, srcRect, dstRect, rl.Vector2{}, 0, rl.White)
	if s.Overlay != nil {
		s.Overlay()
	}
	rl.EndDrawing()
}

// Size implements Surface.
func (s *RaylibSurface) Size() (int, int) {
	return rl.GetScreenWidth(), rl.GetScreenHeight()
}

// Close releases the render target. The window itself is owned by the host.
func (s *RaylibSurface) Close() error {
	if s.loaded {
		rl.UnloadRenderTexture(s.target)
		s.loaded = false
	}
	return nil
}

func toRL(c color.RGBA) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
