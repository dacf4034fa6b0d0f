// Package audio plays the key-sequence chime.
package audio

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Arpeggio notes (C major, rising) and the length of each.
var chimeNotes = []float64{523.25, 659.25, 783.99, 1046.5}

const noteLength = 90 * time.Millisecond

// Chime plays a short rising arpeggio. Audio failures are logged once and
// the chime becomes silent; nothing is ever returned to the caller.
type Chime struct {
	mu     sync.Mutex
	ready  bool
	tried  bool
	volume float64
	logger *slog.Logger
}

// NewChime creates a chime. The speaker is opened lazily on first Play.
func NewChime(volume float64, logger *slog.Logger) *Chime {
	if logger == nil {
		logger = slog.Default()
	}
	return &Chime{volume: volume, logger: logger}
}

// Play starts the chime without blocking.
func (c *Chime) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.tried {
		c.tried = true
		if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
			// Non-fatal, the effect runs without sound
			c.logger.Warn("audio initialization failed", "error", err)
			return
		}
		c.ready = true
	}
	if !c.ready {
		return
	}

	s, err := Melody(sampleRate, c.volume)
	if err != nil {
		c.logger.Warn("building chime failed", "error", err)
		return
	}
	speaker.Play(s)
}

// Close stops playback.
func (c *Chime) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ready {
		speaker.Clear()
	}
}

// Melody builds the chime streamer at the given rate and linear volume.
func Melody(rate beep.SampleRate, volume float64) (beep.Streamer, error) {
	notes := make([]beep.Streamer, 0, len(chimeNotes))
	for _, freq := range chimeNotes {
		sine, err := generators.SineTone(rate, freq)
		if err != nil {
			return nil, err
		}
		notes = append(notes, beep.Take(rate.N(noteLength), sine))
	}
	return gain(beep.Seq(notes...), volume), nil
}

// Length returns the chime duration.
func Length() time.Duration {
	return time.Duration(len(chimeNotes)) * noteLength
}

func gain(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
