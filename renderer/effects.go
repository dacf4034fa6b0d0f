package renderer

import (
	"time"

	"github.com/pthm-cable/plexus/components"
	"github.com/pthm-cable/plexus/systems"
)

// DrawTrail draws trail marks shrinking and fading over their lifetime.
func DrawTrail(s Surface, marks []components.TrailMark, now time.Time, lifetime time.Duration, theme Theme) {
	if lifetime <= 0 {
		return
	}
	for i := range marks {
		m := &marks[i]

		remaining := 1 - float32(m.Age(now))/float32(lifetime)
		if remaining <= 0 {
			continue
		}
		if remaining > 1 {
			remaining = 1
		}

		r := m.Size / 2 * remaining
		if r < 0.5 {
			r = 0.5
		}
		c := WithAlpha(pick(theme.Trail, m.Color, theme.Line), 0.8*remaining)
		s.Point(m.X, m.Y, r, c)
	}
}

// DrawConfetti draws effect particles fading with their remaining life.
func DrawConfetti(s Surface, particles []systems.EffectParticle, theme Theme) {
	for i := range particles {
		p := &particles[i]

		lifeRatio := p.LifeRatio()
		size := p.Size * lifeRatio
		if size < 0.5 {
			size = 0.5
		}
		c := WithAlpha(pick(theme.Confetti, p.Color, theme.Line), lifeRatio*0.9)
		s.Point(p.X, p.Y, size, c)
	}
}
