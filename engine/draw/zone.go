// Package draw defines the six primitive families rendered by the compositor:
// glow circles, sprites, terrain tiles, lines, triangles, and the UI overlay.
// Each family owns its instance record layout, its GPU encoding, its embedded
// WGSL shader pair, and a host-side reference of its fragment policy.
//
// The fragment policies are distance-zone classifiers. They are expressed here
// as ordered rule tables (first match wins) so a new family is added by
// appending rows rather than duplicating branch chains, and so tests can
// exercise the exact zone boundaries the WGSL implements.
package draw

import (
	"github.com/lumen2d/lumen/common"
)

const (
	// circleEdge is the fixed transition width in pixels between circle zones.
	circleEdge = 1.2

	// lineCoreRatio is the fraction of the line half-width rendered at full
	// alpha before the taper begins.
	lineCoreRatio = 0.65

	// discardEpsilon is the alpha floor below which a fragment is discarded
	// instead of blended.
	discardEpsilon = 0.001
)

// CircleZone identifies the region of a glow circle a fragment falls in,
// by its distance from the instance center.
type CircleZone int

const (
	// CircleZoneInterior is the solid center with an inward glow brighten term.
	CircleZoneInterior CircleZone = iota

	// CircleZoneRim is the darkened ring at the edge of the solid center.
	CircleZoneRim

	// CircleZoneFalloff is the corona region where alpha fades with distance.
	CircleZoneFalloff

	// CircleZoneOuterCorona is the thin outermost ring at a flat low alpha.
	CircleZoneOuterCorona

	// CircleZoneDiscard is everything beyond the corona; the fragment is dropped.
	CircleZoneDiscard
)

// circleZoneRule is one row of the circle classifier table. match is evaluated
// against the halved radii (r = radius/2, c = corona/2) in table order; the
// first matching row's shade is applied.
type circleZoneRule struct {
	zone  CircleZone
	match func(d, r, c float32) bool
	shade func(d, r, c float32, color common.RGBA) (common.RGBA, bool)
}

// circleZoneRules is the ordered circle classifier. Order is load-bearing:
// earlier rows shadow later ones at shared boundaries.
var circleZoneRules = []circleZoneRule{
	{
		zone:  CircleZoneInterior,
		match: func(d, r, c float32) bool { return d < r-circleEdge },
		shade: func(d, r, c float32, color common.RGBA) (common.RGBA, bool) {
			brighten := 0.25 * (1 - common.Smoothstep(0, r-circleEdge, d*0.8))
			return common.RGBA{
				R: color.R + brighten,
				G: color.G + brighten,
				B: color.B + brighten,
				A: color.A,
			}, true
		},
	},
	{
		zone:  CircleZoneRim,
		match: func(d, r, c float32) bool { return d < r },
		shade: func(d, r, c float32, color common.RGBA) (common.RGBA, bool) {
			return common.RGBA{R: color.R * 0.9, G: color.G * 0.9, B: color.B * 0.9, A: color.A}, true
		},
	},
	{
		zone:  CircleZoneFalloff,
		match: func(d, r, c float32) bool { return d < c-circleEdge },
		shade: func(d, r, c float32, color common.RGBA) (common.RGBA, bool) {
			alpha := (1.1 - common.Smoothstep(r, c, d)) * 0.5
			return common.RGBA{R: color.R, G: color.G, B: color.B, A: alpha}, true
		},
	},
	{
		zone:  CircleZoneOuterCorona,
		match: func(d, r, c float32) bool { return d <= c },
		shade: func(d, r, c float32, color common.RGBA) (common.RGBA, bool) {
			return common.RGBA{R: color.R, G: color.G, B: color.B, A: 0.125}, true
		},
	},
	{
		zone:  CircleZoneDiscard,
		match: func(d, r, c float32) bool { return true },
		shade: func(d, r, c float32, color common.RGBA) (common.RGBA, bool) {
			return common.RGBA{}, false
		},
	},
}

// ClassifyCircle returns the zone for a fragment at distance d from the center
// of a circle instance with the given radius and corona. The radii are halved
// before classification, matching the shader convention where the instance
// quad spans the corona diameter.
//
// Parameters:
//   - d: distance from the fragment to the instance center, in pixels
//   - radius: the instance core radius
//   - corona: the instance corona radius, >= radius
//
// Returns:
//   - CircleZone: the first matching zone in table order
func ClassifyCircle(d, radius, corona float32) CircleZone {
	r := radius / 2
	c := corona / 2
	for _, rule := range circleZoneRules {
		if rule.match(d, r, c) {
			return rule.zone
		}
	}
	return CircleZoneDiscard
}

// ShadeCircle computes the reference fragment color for a circle instance,
// before the late-alpha fade is applied. This mirrors the WGSL fragment stage
// and exists so the zone boundaries are testable on the host.
//
// Parameters:
//   - d: distance from the fragment to the instance center, in pixels
//   - radius: the instance core radius
//   - corona: the instance corona radius, >= radius
//   - color: the instance color
//
// Returns:
//   - common.RGBA: the shaded fragment color
//   - bool: false if the fragment is discarded
func ShadeCircle(d, radius, corona float32, color common.RGBA) (common.RGBA, bool) {
	r := radius / 2
	c := corona / 2
	for _, rule := range circleZoneRules {
		if rule.match(d, r, c) {
			return rule.shade(d, r, c, color)
		}
	}
	return common.RGBA{}, false
}

// ApplyLateAlpha blends a computed fragment alpha with the per-instance fade
// factor, supporting fade-in/out without separate pipeline state.
//
// Parameters:
//   - alpha: the zone-computed fragment alpha
//   - lateAlpha: the per-instance fade factor in [0, 1]
//
// Returns:
//   - float32: the final alpha, alpha*0.3 + alpha*0.7*lateAlpha
//   - bool: false if the final alpha is at or below the discard epsilon
func ApplyLateAlpha(alpha, lateAlpha float32) (float32, bool) {
	final := alpha*0.3 + alpha*0.7*lateAlpha
	return final, final > discardEpsilon
}

// LineTaper returns the alpha multiplier for a line fragment at the given
// pixel distance from its vertex. Inside the solid core the multiplier is 1.
// Beyond it the taper is linear and deliberately left unclamped, so distances
// past the normalized unit produce a negative multiplier. That reproduces the
// shipped visual behavior; clamping here would visibly thin wide lines.
//
// Parameters:
//   - dist: distance from the fragment to the line vertex, in pixels
//   - width: the line width in pixels
//
// Returns:
//   - float32: the alpha multiplier, 1 inside the core, 1-d beyond it
func LineTaper(dist, width float32) float32 {
	d := dist / (width / 4)
	if d <= lineCoreRatio {
		return 1
	}
	return 1 - d
}

// TerrainShadingMode selects how a terrain draw darkens its texels.
type TerrainShadingMode uint32

const (
	// TerrainShadePreserveAlpha darkens RGB by (1-shading) and leaves alpha untouched.
	TerrainShadePreserveAlpha TerrainShadingMode = iota

	// TerrainShadeDarkenAlpha darkens all four channels by (1-shading).
	TerrainShadeDarkenAlpha
)

// ShadeTerrain applies the per-tile shading factor to a sampled texel using
// the draw call's darkening mode. Host-side reference of the terrain fragment
// stage.
//
// Parameters:
//   - sample: the sampled texel
//   - shading: the per-tile darkening factor in [0, 1], 1 = fully darkened
//   - mode: the darkening mode for this draw call
//
// Returns:
//   - common.RGBA: the shaded texel
func ShadeTerrain(sample common.RGBA, shading float32, mode TerrainShadingMode) common.RGBA {
	k := 1 - shading
	out := common.RGBA{R: sample.R * k, G: sample.G * k, B: sample.B * k, A: sample.A}
	if mode == TerrainShadeDarkenAlpha {
		out.A = sample.A * k
	}
	return out
}
