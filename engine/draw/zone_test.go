package draw

import (
	"math"
	"testing"

	"github.com/lumen2d/lumen/common"
)

func TestClassifyCircle(t *testing.T) {
	// radius 10, corona 20: halved to r=5, c=10 with edge 1.2.
	tests := []struct {
		name string
		d    float32
		want CircleZone
	}{
		{name: "center", d: 0, want: CircleZoneInterior},
		{name: "just inside interior", d: 3.7, want: CircleZoneInterior},
		{name: "rim start", d: 3.8, want: CircleZoneRim},
		{name: "rim end", d: 4.9, want: CircleZoneRim},
		{name: "falloff start", d: 5, want: CircleZoneFalloff},
		{name: "falloff middle", d: 7.5, want: CircleZoneFalloff},
		{name: "outer corona start", d: 8.8, want: CircleZoneOuterCorona},
		{name: "outer corona end", d: 10, want: CircleZoneOuterCorona},
		{name: "beyond corona", d: 10.5, want: CircleZoneDiscard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyCircle(tt.d, 10, 20); got != tt.want {
				t.Errorf("ClassifyCircle(%v, 10, 20) = %v, want %v", tt.d, got, tt.want)
			}
		})
	}
}

func TestShadeCircleInterior(t *testing.T) {
	base := common.RGBA{R: 0.5, G: 0.2, B: 0.1, A: 1}

	// At the exact center the brighten term is 0.25.
	got, ok := ShadeCircle(0, 10, 20, base)
	if !ok {
		t.Fatal("center fragment should not be discarded")
	}
	if math.Abs(float64(got.R-0.75)) > 1e-6 {
		t.Errorf("center brighten: got R=%v, want 0.75", got.R)
	}
	if got.A != 1 {
		t.Errorf("interior alpha should stay at instance alpha, got %v", got.A)
	}
}

func TestShadeCircleRim(t *testing.T) {
	base := common.RGBA{R: 1, G: 0.5, B: 0.25, A: 1}

	got, ok := ShadeCircle(4.5, 10, 20, base)
	if !ok {
		t.Fatal("rim fragment should not be discarded")
	}
	if math.Abs(float64(got.R-0.9)) > 1e-6 || math.Abs(float64(got.G-0.45)) > 1e-6 {
		t.Errorf("rim darken: got (%v, %v), want (0.9, 0.45)", got.R, got.G)
	}
}

func TestShadeCircleFalloff(t *testing.T) {
	base := common.RGBA{R: 1, A: 1}

	// d=7.5 sits midway through the falloff; alpha must land strictly
	// between the outer corona floor and the 0.55 peak.
	got, ok := ShadeCircle(7.5, 10, 20, base)
	if !ok {
		t.Fatal("falloff fragment should not be discarded")
	}
	if got.A <= 0 || got.A >= 0.55 {
		t.Errorf("falloff alpha out of range: got %v", got.A)
	}
}

func TestShadeCircleOuterCorona(t *testing.T) {
	got, ok := ShadeCircle(10, 10, 20, common.RGBA{R: 1, A: 1})
	if !ok {
		t.Fatal("outer corona fragment should not be discarded")
	}
	if got.A != 0.125 {
		t.Errorf("outer corona alpha: got %v, want 0.125", got.A)
	}
}

func TestShadeCircleDiscard(t *testing.T) {
	if _, ok := ShadeCircle(10.5, 10, 20, common.RGBA{A: 1}); ok {
		t.Error("fragment beyond the corona must be discarded")
	}
}

func TestApplyLateAlpha(t *testing.T) {
	tests := []struct {
		name      string
		alpha     float32
		lateAlpha float32
		want      float32
		keep      bool
	}{
		{name: "fully faded in", alpha: 1, lateAlpha: 1, want: 1, keep: true},
		{name: "fading in", alpha: 1, lateAlpha: 0.5, want: 0.65, keep: true},
		{name: "not yet visible", alpha: 1, lateAlpha: 0, want: 0.3, keep: true},
		{name: "zero alpha discarded", alpha: 0, lateAlpha: 1, want: 0, keep: false},
		{name: "sub-epsilon discarded", alpha: 0.001, lateAlpha: 0, want: 0.0003, keep: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, keep := ApplyLateAlpha(tt.alpha, tt.lateAlpha)
			if keep != tt.keep {
				t.Errorf("keep = %v, want %v", keep, tt.keep)
			}
			if math.Abs(float64(got-tt.want)) > 1e-6 {
				t.Errorf("final alpha = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLineTaper(t *testing.T) {
	const width = 8 // half-width normalizer is width/4 = 2

	tests := []struct {
		name string
		dist float32
		want float32
	}{
		{name: "on axis", dist: 0, want: 1},
		{name: "inside core", dist: 1.3, want: 1},
		{name: "just past core", dist: 1.4, want: 1 - 0.7},
		{name: "at unit distance", dist: 2, want: 0},
		{name: "beyond unit goes negative", dist: 3, want: -0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LineTaper(tt.dist, width)
			if math.Abs(float64(got-tt.want)) > 1e-6 {
				t.Errorf("LineTaper(%v, %v) = %v, want %v", tt.dist, width, got, tt.want)
			}
		})
	}
}

func TestShadeTerrainModes(t *testing.T) {
	sample := common.RGBA{R: 0.8, G: 0.6, B: 0.4, A: 1}

	preserve := ShadeTerrain(sample, 0.5, TerrainShadePreserveAlpha)
	if math.Abs(float64(preserve.R-0.4)) > 1e-6 || preserve.A != 1 {
		t.Errorf("preserve mode: got (R=%v, A=%v), want (0.4, 1)", preserve.R, preserve.A)
	}

	darken := ShadeTerrain(sample, 0.5, TerrainShadeDarkenAlpha)
	if math.Abs(float64(darken.R-0.4)) > 1e-6 || math.Abs(float64(darken.A-0.5)) > 1e-6 {
		t.Errorf("darken mode: got (R=%v, A=%v), want (0.4, 0.5)", darken.R, darken.A)
	}

	// shading 0 leaves the texel untouched in both modes.
	if got := ShadeTerrain(sample, 0, TerrainShadeDarkenAlpha); got != sample {
		t.Errorf("zero shading should be identity, got %+v", got)
	}

	// shading 1 blacks the tile out; alpha survives only in preserve mode.
	full := ShadeTerrain(sample, 1, TerrainShadePreserveAlpha)
	if full.R != 0 || full.A != 1 {
		t.Errorf("full shading preserve: got (R=%v, A=%v), want (0, 1)", full.R, full.A)
	}
}
