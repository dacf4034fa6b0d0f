package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/plexus/components"
)

func TestReflectNegatesAndClamps(t *testing.T) {
	b := NewBounds(100, 50, 10)

	tests := []struct {
		name    string
		pos     components.Position
		vel     components.Velocity
		wantPos components.Position
		wantVel components.Velocity
	}{
		{
			name:    "inside untouched",
			pos:     components.Position{X: 10, Y: -5, Z: 1},
			vel:     components.Velocity{X: 1, Y: 1, Z: 1},
			wantPos: components.Position{X: 10, Y: -5, Z: 1},
			wantVel: components.Velocity{X: 1, Y: 1, Z: 1},
		},
		{
			name:    "past right edge",
			pos:     components.Position{X: 53},
			vel:     components.Velocity{X: 2},
			wantPos: components.Position{X: 50},
			wantVel: components.Velocity{X: -2},
		},
		{
			name:    "past bottom edge",
			pos:     components.Position{Y: -30},
			vel:     components.Velocity{Y: -0.5},
			wantPos: components.Position{Y: -25},
			wantVel: components.Velocity{Y: 0.5},
		},
		{
			name:    "past depth",
			pos:     components.Position{Z: 12},
			vel:     components.Velocity{Z: 3},
			wantPos: components.Position{Z: 10},
			wantVel: components.Velocity{Z: -3},
		},
		{
			name:    "outside but already heading inward",
			pos:     components.Position{X: -51},
			vel:     components.Velocity{X: 1},
			wantPos: components.Position{X: -50},
			wantVel: components.Velocity{X: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, vel := tt.pos, tt.vel
			Reflect(&pos, &vel, b)
			if pos != tt.wantPos {
				t.Errorf("pos = %+v, want %+v", pos, tt.wantPos)
			}
			if vel != tt.wantVel {
				t.Errorf("vel = %+v, want %+v", vel, tt.wantVel)
			}
		})
	}
}

func TestReflectZeroExtentPinsAxis(t *testing.T) {
	b := NewBounds(100, 100, 0)
	pos := components.Position{Z: 5}
	vel := components.Velocity{Z: 1}
	Reflect(&pos, &vel, b)
	if pos.Z != 0 {
		t.Errorf("expected z pinned at 0, got %v", pos.Z)
	}
}

func TestRepel(t *testing.T) {
	tests := []struct {
		name      string
		pos       components.Position
		pointer   Pointer
		wantMoved bool
	}{
		{"inside radius", components.Position{X: 1}, Pointer{Active: true}, true},
		{"outside radius", components.Position{X: 3}, Pointer{Active: true}, false},
		{"exactly at radius", components.Position{X: 2}, Pointer{Active: true}, false},
		{"on pointer", components.Position{}, Pointer{Active: true}, false},
		{"inactive pointer", components.Position{X: 1}, Pointer{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := tt.pos
			Repel(&pos, tt.pointer, 2, 0.02)
			moved := pos != tt.pos
			if moved != tt.wantMoved {
				t.Errorf("moved = %v, want %v (pos %+v)", moved, tt.wantMoved, pos)
			}
		})
	}
}

func TestRepelPushesAwayByStrength(t *testing.T) {
	pos := components.Position{X: 3, Y: 4}
	Repel(&pos, Pointer{Active: true}, 10, 0.5)

	// d = 5, push = 0.5 * (10 - 5) = 2.5 along (0.6, 0.8)
	wantX, wantY := float32(3+1.5), float32(4+2)
	if math.Abs(float64(pos.X-wantX)) > 1e-5 || math.Abs(float64(pos.Y-wantY)) > 1e-5 {
		t.Errorf("pos = (%v, %v), want (%v, %v)", pos.X, pos.Y, wantX, wantY)
	}
	if pos.Z != 0 {
		t.Errorf("repulsion must not move z, got %v", pos.Z)
	}
}

func TestIntegrate(t *testing.T) {
	pos := components.Position{X: 1, Y: 2, Z: 3}
	Integrate(&pos, components.Velocity{X: 1, Y: -1, Z: 0.5}, 2)
	want := components.Position{X: 3, Y: 0, Z: 4}
	if pos != want {
		t.Errorf("pos = %+v, want %+v", pos, want)
	}
}
