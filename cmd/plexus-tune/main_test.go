package main

import (
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/plexus/config"
	"github.com/pthm-cable/plexus/renderer"
)

func TestFieldYAMLLoadsBack(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	p := paramsFrom(cfg)
	p.Count = 80
	p.Distance = 120
	p.RepulsionStrength = 0.05

	if err := yaml.Unmarshal([]byte(fieldYAML(p)), cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if cfg.Detect.High.Count != 80 {
		t.Errorf("count = %d, want 80", cfg.Detect.High.Count)
	}
	if cfg.Detect.High.ConnectionDistance != 120 {
		t.Errorf("distance = %v, want 120", cfg.Detect.High.ConnectionDistance)
	}
	if cfg.Field.RepulsionStrength != 0.05 {
		t.Errorf("repulsion strength = %v, want 0.05", cfg.Field.RepulsionStrength)
	}
	// Untouched keys survive the merge
	if cfg.Field.FrameScale != 60 {
		t.Errorf("frame scale = %v, want 60", cfg.Field.FrameScale)
	}
}

func TestViewConfigOverrides(t *testing.T) {
	p := tuneParams{RepulsionRadius: 10, RepulsionStrength: 0.5, MaxSpeed: 2, Depth: 0}
	cfg, _ := config.Load("")
	got := p.viewConfig(renderer.ViewConfigFrom(cfg))
	if got.Field.RepulsionRadius != 10 || got.Field.MaxSpeed != 2 || got.Field.Depth != 0 {
		t.Errorf("overrides not applied: %+v", got.Field)
	}
}
