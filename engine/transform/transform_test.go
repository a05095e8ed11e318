package transform

import (
	"math"
	"testing"

	"github.com/lumen2d/lumen/common"
	"github.com/lumen2d/lumen/engine/view"
)

func almostEqual(a, b, tol float32) bool {
	return math.Abs(float64(a-b)) <= float64(tol)
}

func TestScreenToNDC(t *testing.T) {
	screen := view.ScreenSize{Width: 800, Height: 600}
	tests := []struct {
		name string
		pos  common.Vec2
		want common.Vec2
	}{
		{"top-left corner", common.Vec2{X: 0, Y: 0}, common.Vec2{X: -1, Y: -1}},
		{"center", common.Vec2{X: 400, Y: 300}, common.Vec2{X: 0, Y: 0}},
		{"bottom-right corner", common.Vec2{X: 800, Y: 600}, common.Vec2{X: 1, Y: 1}},
		{"quarter", common.Vec2{X: 200, Y: 150}, common.Vec2{X: -0.5, Y: -0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ScreenToNDC(tt.pos, screen)
			if !ok {
				t.Fatal("expected finite result")
			}
			if !almostEqual(got.X, tt.want.X, 1e-6) || !almostEqual(got.Y, tt.want.Y, 1e-6) {
				t.Errorf("ScreenToNDC(%+v) = %+v, want %+v", tt.pos, got, tt.want)
			}
		})
	}
}

// Any pixel inside the screen must land inside [-1, 1] on both axes.
func TestScreenToNDCRange(t *testing.T) {
	screen := view.ScreenSize{Width: 1280, Height: 720}
	for x := float32(0); x <= screen.Width; x += 64 {
		for y := float32(0); y <= screen.Height; y += 45 {
			got, ok := ScreenToNDC(common.Vec2{X: x, Y: y}, screen)
			if !ok {
				t.Fatalf("non-finite result at (%v, %v)", x, y)
			}
			if got.X < -1 || got.X > 1 || got.Y < -1 || got.Y > 1 {
				t.Fatalf("NDC out of range at (%v, %v): %+v", x, y, got)
			}
		}
	}
}

func TestWorldToNDC(t *testing.T) {
	screen := view.ScreenSize{Width: 800, Height: 600}
	tests := []struct {
		name   string
		pos    common.Vec2
		camPos common.Vec2
		zoom   float32
		want   common.Vec2
	}{
		{"camera center maps to origin", common.Vec2{X: 50, Y: 50}, common.Vec2{X: 50, Y: 50}, 1, common.Vec2{}},
		{"unit zoom right edge", common.Vec2{X: 400, Y: 0}, common.Vec2{}, 1, common.Vec2{X: 1, Y: 0}},
		{"unit zoom reference displacement", common.Vec2{X: 100, Y: 0}, common.Vec2{}, 1, common.Vec2{X: 0.25, Y: 0}},
		{"zoom doubles displacement", common.Vec2{X: 100, Y: 0}, common.Vec2{}, 2, common.Vec2{X: 0.5, Y: 0}},
		{"pan offsets", common.Vec2{X: 0, Y: 150}, common.Vec2{X: 0, Y: -150}, 1, common.Vec2{X: 0, Y: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := WorldToNDC(tt.pos, tt.camPos, tt.zoom, screen)
			if !ok {
				t.Fatal("expected finite result")
			}
			if !almostEqual(got.X, tt.want.X, 1e-6) || !almostEqual(got.Y, tt.want.Y, 1e-6) {
				t.Errorf("WorldToNDC(%+v) = %+v, want %+v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestWorldInstanceToNDC(t *testing.T) {
	screen := view.ScreenSize{Width: 200, Height: 200}
	// Quad corner (0.5, 0.5) at size 20 around instance (10, 10): world (20, 20).
	got, ok := WorldInstanceToNDC(common.Vec2{X: 0.5, Y: 0.5}, 20, common.Vec2{X: 10, Y: 10}, common.Vec2{}, 1, screen)
	if !ok {
		t.Fatal("expected finite result")
	}
	if !almostEqual(got.X, 0.2, 1e-6) || !almostEqual(got.Y, 0.2, 1e-6) {
		t.Errorf("got %+v, want (0.2, 0.2)", got)
	}
}

func TestNonFiniteInputsRejected(t *testing.T) {
	screen := view.ScreenSize{Width: 800, Height: 600}
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))
	tests := []struct {
		name string
		pos  common.Vec2
	}{
		{"nan x", common.Vec2{X: nan, Y: 0}},
		{"inf y", common.Vec2{X: 0, Y: inf}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := ScreenToNDC(tt.pos, screen); ok {
				t.Error("ScreenToNDC accepted non-finite input")
			}
			if _, ok := WorldToNDC(tt.pos, common.Vec2{}, 1, screen); ok {
				t.Error("WorldToNDC accepted non-finite input")
			}
		})
	}
}

func TestZeroScreenRejected(t *testing.T) {
	if _, ok := ScreenToNDC(common.Vec2{X: 10, Y: 10}, view.ScreenSize{}); ok {
		t.Error("zero screen size must not yield a finite NDC")
	}
}
