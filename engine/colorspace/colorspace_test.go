package colorspace

import (
	"math"
	"testing"

	"github.com/lumen2d/lumen/common"
)

func almostEqual(a, b, tol float32) bool {
	return math.Abs(float64(a-b)) <= float64(tol)
}

func TestLinearFromSRGBKnownValues(t *testing.T) {
	tests := []struct {
		name  string
		s     float32
		scale float32
		want  float32
		tol   float32
	}{
		{"zero unit", 0, ScaleUnit, 0, 0},
		{"one unit", 1, ScaleUnit, 1, 1e-6},
		{"below threshold unit", 0.04, ScaleUnit, 0.04 / 12.92, 1e-6},
		{"mid gray unit", 0.5, ScaleUnit, 0.21404114, 1e-5},
		{"zero byte", 0, ScaleByte, 0, 0},
		{"full byte", 255, ScaleByte, 1, 1e-6},
		{"below threshold byte", 10, ScaleByte, 10.0 / 3294.6, 1e-6},
		{"mid gray byte", 127.5, ScaleByte, 0.21404114, 1e-5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LinearFromSRGB(tt.s, tt.scale)
			if !almostEqual(got, tt.want, tt.tol) {
				t.Errorf("LinearFromSRGB(%v, %v) = %v, want %v", tt.s, tt.scale, got, tt.want)
			}
		})
	}
}

func TestSRGBFromLinearKnownValues(t *testing.T) {
	tests := []struct {
		name  string
		l     float32
		scale float32
		want  float32
		tol   float32
	}{
		{"zero unit", 0, ScaleUnit, 0, 0},
		{"one unit", 1, ScaleUnit, 1, 1e-6},
		{"linear segment unit", 0.002, ScaleUnit, 0.002 * 12.92, 1e-6},
		{"zero byte", 0, ScaleByte, 0, 0},
		{"one byte", 1, ScaleByte, 255, 1e-4},
		{"linear segment byte", 0.002, ScaleByte, 0.002 * 3294.6, 1e-4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SRGBFromLinear(tt.l, tt.scale)
			if !almostEqual(got, tt.want, tt.tol) {
				t.Errorf("SRGBFromLinear(%v, %v) = %v, want %v", tt.l, tt.scale, got, tt.want)
			}
		})
	}
}

// The two domains must agree: converting s in 0-255 must equal converting
// s/255 in 0-1, since both share the same transfer core.
func TestDomainsAgree(t *testing.T) {
	for _, s := range []float32{0, 1, 5, 10, 10.32, 64, 127.5, 200, 255} {
		gotByte := LinearFromSRGB(s, ScaleByte)
		gotUnit := LinearFromSRGB(s/255, ScaleUnit)
		if !almostEqual(gotByte, gotUnit, 1e-5) {
			t.Errorf("domain mismatch at s=%v: byte=%v unit=%v", s, gotByte, gotUnit)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		scale float32
		step  float32
		max   float32
	}{
		{"unit domain", ScaleUnit, 0.01, 1},
		{"byte domain", ScaleByte, 1, 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for s := float32(0); s <= tt.max; s += tt.step {
				back := SRGBFromLinear(LinearFromSRGB(s, tt.scale), tt.scale)
				if !almostEqual(back/tt.scale, s/tt.scale, 1e-3) {
					t.Fatalf("round trip drift at %v: got %v", s, back)
				}
			}
		})
	}
}

func TestLinearFromSRGBA(t *testing.T) {
	got := LinearFromSRGBA(common.RGBA{R: 255, G: 0, B: 127.5, A: 51})
	if !almostEqual(got.R, 1, 1e-6) || !almostEqual(got.G, 0, 0) {
		t.Errorf("R/G channels wrong: %+v", got)
	}
	if !almostEqual(got.B, 0.21404114, 1e-5) {
		t.Errorf("B channel wrong: %v", got.B)
	}
	if !almostEqual(got.A, 0.2, 1e-6) {
		t.Errorf("alpha must be scaled linearly, got %v", got.A)
	}
}

func TestGammaFromLinearRGBAAlphaPassthrough(t *testing.T) {
	got := GammaFromLinearRGBA(common.RGBA{R: 0.21404114, G: 1, B: 0, A: 0.7})
	if !almostEqual(got.R, 0.5, 1e-4) {
		t.Errorf("R = %v, want 0.5", got.R)
	}
	if !almostEqual(got.G, 1, 1e-5) || !almostEqual(got.B, 0, 0) {
		t.Errorf("G/B channels wrong: %+v", got)
	}
	if got.A != 0.7 {
		t.Errorf("alpha must pass through unchanged, got %v", got.A)
	}
}
