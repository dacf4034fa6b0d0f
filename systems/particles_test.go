package systems

import (
	"math/rand"
	"testing"
)

func TestBurstRespectsPool(t *testing.T) {
	s := NewParticleSystem(BurstConfig{
		MaxParticles: 50,
		BurstCount:   30,
		Speed:        4,
		Gravity:      0.1,
		Life:         20,
		Colors:       5,
	}, rand.New(rand.NewSource(1)))

	if n := s.Burst(100, 100); n != 30 {
		t.Errorf("first burst emitted %d, want 30", n)
	}
	if n := s.Burst(100, 100); n != 20 {
		t.Errorf("second burst emitted %d, want 20 (pool full)", n)
	}
	if s.Count() != 50 {
		t.Errorf("count = %d, want 50", s.Count())
	}
	for _, p := range s.Particles {
		if p.Color >= 5 {
			t.Errorf("color %d outside palette", p.Color)
		}
	}
}

func TestParticlesExpire(t *testing.T) {
	s := NewParticleSystem(BurstConfig{BurstCount: 10, Speed: 2, Life: 10}, nil)
	s.Burst(0, 0)

	for i := 0; i < 10; i++ {
		s.Update()
	}
	if s.Count() != 0 {
		t.Errorf("expected all particles expired, %d left", s.Count())
	}
}

func TestLifeRatio(t *testing.T) {
	p := EffectParticle{Life: 5, MaxLife: 10}
	if r := p.LifeRatio(); r != 0.5 {
		t.Errorf("LifeRatio = %v, want 0.5", r)
	}
	if r := (EffectParticle{}).LifeRatio(); r != 0 {
		t.Errorf("zero particle LifeRatio = %v, want 0", r)
	}
}
