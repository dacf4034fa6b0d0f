package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestFieldOriginIsScreenCenter(t *testing.T) {
	v := New(1280, 720, 1000)

	sx, sy, scale := v.FieldToScreen(0, 0, 0)
	if !near(sx, 640) || !near(sy, 360) {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", sx, sy)
	}
	if scale != 1 {
		t.Errorf("expected scale 1 at z=0, got %f", scale)
	}
}

func TestYAxisPointsUp(t *testing.T) {
	v := New(1280, 720, 0)

	_, sy, _ := v.FieldToScreen(0, 100, 0)
	if sy >= 360 {
		t.Errorf("expected positive field y above center, got sy=%f", sy)
	}
}

func TestScreenToFieldRoundtrip(t *testing.T) {
	v := New(1280, 720, 1000)
	v.SetZoom(1.5)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},  // center
		{0, 0},      // top-left
		{1200, 600}, // near bottom-right
	}

	for _, tc := range testCases {
		x, y := v.ScreenToField(tc.sx, tc.sy)
		sx, sy, _ := v.FieldToScreen(x, y, 0)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, x, y, sx, sy)
		}
	}
}

func TestPerspective(t *testing.T) {
	v := New(1280, 720, 1000)

	if s := v.Perspective(200); s <= 1 {
		t.Errorf("expected near points enlarged, got %f", s)
	}
	if s := v.Perspective(-200); s >= 1 {
		t.Errorf("expected far points shrunk, got %f", s)
	}
	if s := v.Perspective(5000); math.IsInf(float64(s), 0) || s <= 0 {
		t.Errorf("expected finite scale behind the focal point, got %f", s)
	}

	flat := New(1280, 720, 0)
	if s := flat.Perspective(200); s != 1 {
		t.Errorf("expected no perspective with zero focal, got %f", s)
	}
}

func TestZoomClamp(t *testing.T) {
	v := New(1280, 720, 0)

	v.SetZoom(100)
	if v.Zoom != v.MaxZoom {
		t.Errorf("expected zoom clamped to %f, got %f", v.MaxZoom, v.Zoom)
	}
	v.ZoomBy(0.001)
	if v.Zoom != v.MinZoom {
		t.Errorf("expected zoom clamped to %f, got %f", v.MinZoom, v.Zoom)
	}
	v.Reset()
	if v.Zoom != 1 {
		t.Errorf("expected zoom 1 after reset, got %f", v.Zoom)
	}
}

func TestFieldSizeFollowsResize(t *testing.T) {
	v := New(1280, 720, 0)
	v.Resize(800, 0)

	w, h := v.FieldSize()
	if w != 800 || h != 1 {
		t.Errorf("expected (800, 1), got (%f, %f)", w, h)
	}
}

func TestIsVisible(t *testing.T) {
	v := New(100, 100, 0)

	tests := []struct {
		sx, sy, r float32
		want      bool
	}{
		{50, 50, 1, true},
		{-2, 50, 3, true},
		{-5, 50, 3, false},
		{50, 110, 3, false},
	}
	for _, tt := range tests {
		if got := v.IsVisible(tt.sx, tt.sy, tt.r); got != tt.want {
			t.Errorf("IsVisible(%v, %v, %v) = %v, want %v", tt.sx, tt.sy, tt.r, got, tt.want)
		}
	}
}
