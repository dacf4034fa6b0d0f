package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Detect.MinFPS != 50 {
		t.Errorf("expected min_fps 50, got %v", cfg.Detect.MinFPS)
	}
	if cfg.Detect.High.Count != 25 || cfg.Detect.Low.Count != 15 {
		t.Errorf("unexpected tier counts: high=%d low=%d", cfg.Detect.High.Count, cfg.Detect.Low.Count)
	}
	if cfg.Trail.Throttle != 30*time.Millisecond {
		t.Errorf("expected 30ms throttle, got %v", cfg.Trail.Throttle)
	}
	if cfg.Trail.Lifetime != time.Second {
		t.Errorf("expected 1s lifetime, got %v", cfg.Trail.Lifetime)
	}
	if len(cfg.KeySeq.Sequence) != 10 {
		t.Errorf("expected 10-key sequence, got %d", len(cfg.KeySeq.Sequence))
	}
	if cfg.Derived.FrameTime <= 0 {
		t.Error("expected derived frame time to be set")
	}
}

func TestLoadOverridesOnlyPresentFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	data := []byte("detect:\n  min_fps: 30\nfield:\n  depth: 0\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Detect.MinFPS != 30 {
		t.Errorf("expected overridden min_fps 30, got %v", cfg.Detect.MinFPS)
	}
	if cfg.Detect.HighTierScore != 3 {
		t.Errorf("expected default high_tier_score to survive, got %d", cfg.Detect.HighTierScore)
	}
	if cfg.Field.Depth != 0 {
		t.Errorf("expected flat field, got depth %v", cfg.Field.Depth)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Detect.MinFPS = 42

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Detect.MinFPS != 42 {
		t.Errorf("expected 42 after round trip, got %v", loaded.Detect.MinFPS)
	}
	if loaded.Trail.SweepInterval != cfg.Trail.SweepInterval {
		t.Errorf("sweep interval changed: %v -> %v", cfg.Trail.SweepInterval, loaded.Trail.SweepInterval)
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("expected panic from Cfg before Init")
		}
	}()
	Cfg()
}
