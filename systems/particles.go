package systems

import (
	"math"
	"math/rand"
)

// EffectParticle is a short-lived confetti particle in screen space.
type EffectParticle struct {
	X, Y       float32
	VelX, VelY float32
	Life       int32
	MaxLife    int32
	Color      uint8 // Index into the confetti palette
	Size       float32
}

// LifeRatio returns the remaining life in [0, 1].
func (p EffectParticle) LifeRatio() float32 {
	if p.MaxLife <= 0 {
		return 0
	}
	return float32(p.Life) / float32(p.MaxLife)
}

// BurstConfig holds confetti burst parameters.
type BurstConfig struct {
	MaxParticles int
	BurstCount   int
	Speed        float32
	Gravity      float32
	Life         int32 // Frames
	Colors       int
}

// ParticleSystem manages pooled effect particles.
// Emits beyond MaxParticles are dropped.
type ParticleSystem struct {
	Particles []EffectParticle
	cfg       BurstConfig
	rng       *rand.Rand
}

// NewParticleSystem creates a new particle system.
func NewParticleSystem(cfg BurstConfig, rng *rand.Rand) *ParticleSystem {
	if cfg.MaxParticles <= 0 {
		cfg.MaxParticles = 500
	}
	if cfg.Life <= 0 {
		cfg.Life = 120
	}
	if cfg.Colors <= 0 {
		cfg.Colors = 1
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &ParticleSystem{
		Particles: make([]EffectParticle, 0, cfg.MaxParticles),
		cfg:       cfg,
		rng:       rng,
	}
}

// Update advances every particle one frame and compacts out the dead ones.
func (s *ParticleSystem) Update() {
	alive := 0
	for i := range s.Particles {
		p := &s.Particles[i]

		p.Life--
		if p.Life <= 0 {
			continue
		}

		p.VelY += s.cfg.Gravity

		// Drag
		p.VelX *= 0.98
		p.VelY *= 0.98

		p.X += p.VelX
		p.Y += p.VelY

		s.Particles[alive] = s.Particles[i]
		alive++
	}
	s.Particles = s.Particles[:alive]
}

// Burst emits BurstCount particles radiating from (x, y).
// Returns the number actually emitted.
func (s *ParticleSystem) Burst(x, y float32) int {
	return s.BurstN(x, y, s.cfg.BurstCount)
}

// BurstN emits n particles radiating from (x, y).
func (s *ParticleSystem) BurstN(x, y float32, n int) int {
	emitted := 0
	for i := 0; i < n; i++ {
		if !s.emit(x, y) {
			break
		}
		emitted++
	}
	return emitted
}

func (s *ParticleSystem) emit(x, y float32) bool {
	if len(s.Particles) >= s.cfg.MaxParticles {
		return false
	}

	// Radial burst biased upward
	angle := s.rng.Float32() * 2 * math.Pi
	speed := s.cfg.Speed * (0.4 + s.rng.Float32()*0.6)
	velX := float32(math.Cos(float64(angle))) * speed
	velY := float32(math.Sin(float64(angle)))*speed - s.cfg.Speed*0.5

	life := s.cfg.Life/2 + s.rng.Int31n(s.cfg.Life/2+1)

	s.Particles = append(s.Particles, EffectParticle{
		X:       x + (s.rng.Float32()-0.5)*6,
		Y:       y + (s.rng.Float32()-0.5)*6,
		VelX:    velX,
		VelY:    velY,
		Life:    life,
		MaxLife: life,
		Color:   uint8(s.rng.Intn(s.cfg.Colors)),
		Size:    2 + s.rng.Float32()*3,
	})
	return true
}

// Clear removes every particle.
func (s *ParticleSystem) Clear() {
	s.Particles = s.Particles[:0]
}

// Count returns the current number of active particles.
func (s *ParticleSystem) Count() int {
	return len(s.Particles)
}
