package keyseq

import (
	"testing"
	"time"
)

func press(m *Matcher, keys []string, now time.Time) bool {
	done := false
	for _, k := range keys {
		done = m.Press(k, now)
	}
	return done
}

func TestMatcher(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want bool
	}{
		{"exact", Konami, true},
		{"uppercase", []string{"UP", "Up", "DOWN", "down", "LEFT", "RIGHT", "left", "right", "B", "A"}, true},
		{"prefixed noise", append([]string{"x", "y"}, Konami...), true},
		{"extra up before start", append([]string{"up"}, Konami...), true},
		{"wrong key in middle", []string{"up", "up", "down", "x", "left", "right", "left", "right", "b", "a"}, false},
		{"incomplete", Konami[:9], false},
	}

	t0 := time.Unix(0, 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMatcher(Konami, 3*time.Second)
			if got := press(m, tt.keys, t0); got != tt.want {
				t.Errorf("completed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatcherLatch(t *testing.T) {
	m := NewMatcher(Konami, 3*time.Second)
	t0 := time.Unix(0, 0)

	if !press(m, Konami, t0) {
		t.Fatal("expected completion")
	}
	if !m.Active(t0.Add(2 * time.Second)) {
		t.Error("expected active within latch")
	}
	if m.Active(t0.Add(3 * time.Second)) {
		t.Error("expected reset after latch")
	}
	if m.Progress() != 0 {
		t.Errorf("progress = %d, want 0", m.Progress())
	}
}

func TestMatcherEmptySequence(t *testing.T) {
	m := NewMatcher(nil, time.Second)
	if m.Press("a", time.Now()) {
		t.Error("empty sequence must never complete")
	}
}
