package detect

import (
	"context"
	"time"

	"gonum.org/v1/gonum/stat"
)

// FPSSampler measures frame rate over a short window.
// The window ends after maxFrames frames or duration elapsed, whichever
// comes first, so displays faster than 60Hz still finish early.
type FPSSampler struct {
	clock     func() time.Time
	duration  time.Duration
	maxFrames int

	start      time.Time
	last       time.Time
	frames     int
	frameTimes []float64 // ms
	fps        float64
	done       bool
}

// SampleStats summarises a finished sample.
type SampleStats struct {
	Frames      int
	FPS         float64
	MeanFrameMS float64
	StdDevMS    float64
}

// NewFPSSampler starts a sample window now. A nil clock uses time.Now.
func NewFPSSampler(duration time.Duration, maxFrames int, clock func() time.Time) *FPSSampler {
	if clock == nil {
		clock = time.Now
	}
	if duration <= 0 {
		duration = time.Second
	}
	if maxFrames <= 0 {
		maxFrames = 60
	}
	now := clock()
	return &FPSSampler{
		clock:      clock,
		duration:   duration,
		maxFrames:  maxFrames,
		start:      now,
		last:       now,
		frameTimes: make([]float64, 0, maxFrames),
	}
}

// Frame records one presented frame and reports whether the sample is done.
func (s *FPSSampler) Frame() bool {
	if s.done {
		return true
	}
	now := s.clock()
	s.frames++
	s.frameTimes = append(s.frameTimes, float64(now.Sub(s.last))/float64(time.Millisecond))
	s.last = now

	elapsed := now.Sub(s.start)
	if s.frames >= s.maxFrames || elapsed >= s.duration {
		if elapsed < time.Millisecond {
			elapsed = time.Millisecond
		}
		s.fps = float64(s.frames) / elapsed.Seconds()
		s.done = true
	}
	return s.done
}

// Done reports whether the window has closed.
func (s *FPSSampler) Done() bool {
	return s.done
}

// FPS returns the measured frame rate, or 0 before the sample is done.
func (s *FPSSampler) FPS() float64 {
	return s.fps
}

// Stats returns frame-time statistics for the frames seen so far.
func (s *FPSSampler) Stats() SampleStats {
	st := SampleStats{Frames: s.frames, FPS: s.fps}
	if len(s.frameTimes) > 0 {
		st.MeanFrameMS, st.StdDevMS = stat.MeanStdDev(s.frameTimes, nil)
	}
	return st
}

// Run calls frame until the sample is done or ctx is cancelled and returns
// the measured rate. A cancelled sample reports 0.
func (s *FPSSampler) Run(ctx context.Context, frame func()) float64 {
	for !s.done {
		select {
		case <-ctx.Done():
			return 0
		default:
		}
		frame()
		s.Frame()
	}
	return s.fps
}
