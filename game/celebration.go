package game

import (
	"math/rand"
	"time"

	"github.com/pthm-cable/plexus/systems"
)

// Celebration timing for a completed key sequence.
const (
	celebrationLength   = 3 * time.Second
	celebrationInterval = 250 * time.Millisecond
	messageLength       = 5 * time.Second
)

// CelebrationMessage is shown while a celebration message is up.
const CelebrationMessage = "Achievement Unlocked! Konami Code Master"

// celebration schedules confetti bursts from both sides of the screen with
// a count shrinking to zero over celebrationLength.
type celebration struct {
	start  time.Time
	next   time.Time
	active bool
}

func (c *celebration) begin(now time.Time) {
	c.start = now
	c.next = now
	c.active = true
}

// update emits every burst due at now. Returns bursts fired.
func (c *celebration) update(now time.Time, ps *systems.ParticleSystem, base int, w, h float32, rng *rand.Rand) int {
	if !c.active {
		return 0
	}
	fired := 0
	for !now.Before(c.next) {
		left := celebrationLength - c.next.Sub(c.start)
		if left <= 0 {
			c.active = false
			break
		}
		n := int(float64(base) * float64(left) / float64(celebrationLength))

		// One burst from each side, upper part of the screen
		ps.BurstN(w*between(rng, 0.1, 0.3), h*between(rng, 0, 0.5), n)
		ps.BurstN(w*between(rng, 0.7, 0.9), h*between(rng, 0, 0.5), n)
		fired += 2

		c.next = c.next.Add(celebrationInterval)
	}
	return fired
}

func between(rng *rand.Rand, lo, hi float32) float32 {
	return lo + rng.Float32()*(hi-lo)
}
