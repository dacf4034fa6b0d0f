package detect

import "testing"

func gb(v float64) *float64 { return &v }

func desktopSignals() Signals {
	return Signals{
		UserAgent:      "Mozilla/5.0 (X11; Linux x86_64)",
		ViewportWidth:  1920,
		GPURenderer:    "NVIDIA GeForce RTX 3060",
		DeviceMemoryGB: gb(8),
		CPUCores:       8,
		NetworkType:    "4g",
		FPS:            60,
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Signals)
		want   int
	}{
		{"strong desktop", func(s *Signals) {}, 7},
		{"unknown gpu vendor", func(s *Signals) { s.GPURenderer = "llvmpipe" }, 3},
		{"gpu probe failed", func(s *Signals) { s.GPURenderer = "" }, 5},
		{"4gb memory", func(s *Signals) { s.DeviceMemoryGB = gb(4) }, 6},
		{"2gb memory", func(s *Signals) { s.DeviceMemoryGB = gb(2) }, 4},
		{"memory unknown", func(s *Signals) { s.DeviceMemoryGB = nil }, 5},
		{"quad core", func(s *Signals) { s.CPUCores = 4 }, 6},
		{"dual core", func(s *Signals) { s.CPUCores = 2 }, 4},
		{"cores unknown", func(s *Signals) { s.CPUCores = 0 }, 5},
		{"3g", func(s *Signals) { s.NetworkType = "3g" }, 5},
		{"slow-2g", func(s *Signals) { s.NetworkType = "slow-2g" }, 4},
		{"network unknown", func(s *Signals) { s.NetworkType = "" }, 6},
	}

	h := DefaultHeuristics()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := desktopSignals()
			tt.mutate(&s)
			if got := Score(s, h); got != tt.want {
				t.Errorf("Score = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Signals)
		wantEnabled bool
		wantCount   int
		wantDist    float32
	}{
		{"high tier", func(s *Signals) {}, true, 25, 150},
		{"low tier", func(s *Signals) {
			s.GPURenderer = ""
			s.DeviceMemoryGB = gb(4)
			s.CPUCores = 4
			s.NetworkType = ""
		}, true, 15, 100},
		{"score zero still enabled", func(s *Signals) {
			s.GPURenderer = "llvmpipe"
			s.DeviceMemoryGB = gb(4)
			s.CPUCores = 4
			s.NetworkType = ""
		}, true, 15, 100},
		{"negative score", func(s *Signals) {
			s.GPURenderer = "llvmpipe"
			s.DeviceMemoryGB = gb(2)
			s.CPUCores = 2
		}, false, 0, 0},
		{"low fps", func(s *Signals) { s.FPS = 49.9 }, false, 0, 0},
		{"fps at threshold", func(s *Signals) { s.FPS = 50 }, true, 25, 150},
		{"small viewport", func(s *Signals) { s.ViewportWidth = 767 }, false, 0, 0},
		{"unknown viewport", func(s *Signals) { s.ViewportWidth = 0 }, true, 25, 150},
	}

	h := DefaultHeuristics()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := desktopSignals()
			tt.mutate(&s)
			p := Decide(s, h)
			if p.Enabled != tt.wantEnabled || p.Count != tt.wantCount || p.ConnectionDistance != tt.wantDist {
				t.Errorf("Decide = %+v, want enabled=%v count=%d dist=%v", p, tt.wantEnabled, tt.wantCount, tt.wantDist)
			}
			if p.Mode != ModeAuto {
				t.Errorf("mode = %q, want auto", p.Mode)
			}
		})
	}
}

func TestMobileAlwaysDisabled(t *testing.T) {
	agents := []string{
		"Mozilla/5.0 (Linux; Android 14; Pixel 8)",
		"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)",
		"Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X)",
		"Opera/9.80 (J2ME/MIDP; Opera Mini/9.80)",
	}

	h := DefaultHeuristics()
	for _, ua := range agents {
		t.Run(ua, func(t *testing.T) {
			s := desktopSignals()
			s.UserAgent = ua
			s.FPS = 120
			if p := Decide(s, h); p.Enabled || p.Count != 0 {
				t.Errorf("expected disabled profile for mobile agent, got %+v", p)
			}
		})
	}
}

func TestManualProfile(t *testing.T) {
	h := DefaultHeuristics()
	p := ManualProfile(true, h)
	if !p.Enabled || p.Count != 25 || p.ConnectionDistance != 150 || p.Mode != ModeManual {
		t.Errorf("unexpected manual profile %+v", p)
	}
	if ManualProfile(false, h).Active() {
		t.Error("disabled manual profile should not be active")
	}
}
