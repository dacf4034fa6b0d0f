package game

import (
	"context"
	"image/color"
	"log/slog"
	"time"

	"github.com/pthm-cable/plexus/config"
	"github.com/pthm-cable/plexus/detect"
	"github.com/pthm-cable/plexus/renderer"
)

// FrameSampler returns a probe hook measuring how fast the host presents
// blank frames on s. A positive interval paces frames with a ticker; zero
// leaves pacing to the surface (raylib's target FPS).
func FrameSampler(s renderer.Surface, bg color.RGBA, interval time.Duration, cfg config.DetectConfig) func(ctx context.Context) float64 {
	return func(ctx context.Context) float64 {
		sampler := detect.NewFPSSampler(cfg.SampleDuration, cfg.SampleMaxFrames, nil)

		var tick <-chan time.Time
		if interval > 0 {
			t := time.NewTicker(interval)
			defer t.Stop()
			tick = t.C
		}

		fps := sampler.Run(ctx, func() {
			if tick != nil {
				select {
				case <-tick:
				case <-ctx.Done():
				}
			}
			s.Begin()
			s.Fade(bg)
			s.End()
		})
		st := sampler.Stats()
		if st.Frames > 0 {
			logFrameSample(st)
		}
		return fps
	}
}

func logFrameSample(st detect.SampleStats) {
	slog.Info("frame rate sampled",
		"frames", st.Frames,
		"fps", st.FPS,
		"mean_frame_ms", st.MeanFrameMS,
		"stddev_ms", st.StdDevMS,
	)
}
