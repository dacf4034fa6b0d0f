package game

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/pthm-cable/plexus/renderer"
)

// ScriptedPointer moves a virtual pointer along a Lissajous curve so
// headless runs exercise repulsion and the trail.
type ScriptedPointer struct {
	W, H   float32
	Period time.Duration
}

// At returns the pointer position at elapsed time t.
func (s ScriptedPointer) At(t time.Duration) renderer.ScreenPointer {
	period := s.Period
	if period <= 0 {
		period = 8 * time.Second
	}
	phase := 2 * math.Pi * t.Seconds() / period.Seconds()
	return renderer.ScreenPointer{
		X:      s.W/2 + s.W*0.4*float32(math.Sin(phase)),
		Y:      s.H/2 + s.H*0.4*float32(math.Sin(2*phase)),
		Inside: true,
	}
}

// RunHeadless drives app from a ticker at fps until ctx is cancelled or
// maxFrames frames are drawn (0 = unlimited). A zero fps runs unpaced with
// a fixed 1/60 s step.
func RunHeadless(ctx context.Context, app *App, fps int, maxFrames int64, script *ScriptedPointer) {
	var tick <-chan time.Time
	step := time.Second / 60
	if fps > 0 {
		step = time.Second / time.Duration(fps)
		t := time.NewTicker(step)
		defer t.Stop()
		tick = t.C
	}

	start := time.Now()
	now := start
	for {
		if tick != nil {
			select {
			case <-ctx.Done():
				return
			case now = <-tick:
			}
		} else {
			select {
			case <-ctx.Done():
				return
			default:
			}
			now = now.Add(step)
		}

		in := Input{Now: now, DT: float32(step.Seconds())}
		if script != nil {
			in.Pointer = script.At(now.Sub(start))
			in.PointerMoved = true
		}
		app.Update(ctx, in)
		app.Draw()

		if maxFrames > 0 && app.Frame() >= maxFrames {
			slog.Info("max frames reached", "frame", app.Frame())
			return
		}
	}
}
