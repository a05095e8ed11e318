// package colorspace implements the sRGB transfer function used by the UI and
// font rendering paths. All conversions share one core parameterized by the
// sRGB-side channel scale, so the 0-1 and 0-255 domains cannot drift apart.
// Linear values are always expressed in the 0-1 range; alpha is never converted.
package colorspace

import (
	"math"

	"github.com/lumen2d/lumen/common"
)

// sRGB piecewise transfer function constants. The 0-255 domain constants are
// the 0-1 constants multiplied through by 255 (12.92*255 = 3294.6,
// 1.055*255 = 269.025, 0.055*255 = 14.025, 0.04045*255 = 10.31475).
const (
	linearThreshold = 0.0031308
	srgbSlope       = 12.92
	srgbExponent    = 2.4
	srgbScaleA      = 1.055
	srgbOffset      = 0.055
	srgbThreshold   = 0.04045

	// ScaleUnit is the sRGB channel scale for the 0-1 domain.
	ScaleUnit = 1.0
	// ScaleByte is the sRGB channel scale for the 0-255 domain used by UI
	// vertex colors.
	ScaleByte = 255.0
)

// LinearFromSRGB converts one sRGB-encoded channel in [0, scale] to a linear
// value in [0, 1]. scale selects the sRGB domain (ScaleUnit or ScaleByte).
//
// Parameters:
//   - s: sRGB-encoded channel value
//   - scale: sRGB domain scale
//
// Returns:
//   - float32: linear channel value
func LinearFromSRGB(s, scale float32) float32 {
	if s < srgbThreshold*scale {
		return s / (srgbSlope * scale)
	}
	return float32(math.Pow(float64((s+srgbOffset*scale)/(srgbScaleA*scale)), srgbExponent))
}

// SRGBFromLinear converts one linear channel in [0, 1] to an sRGB-encoded
// value in [0, scale]. scale selects the sRGB domain (ScaleUnit or ScaleByte).
//
// Parameters:
//   - l: linear channel value
//   - scale: sRGB domain scale
//
// Returns:
//   - float32: sRGB-encoded channel value
func SRGBFromLinear(l, scale float32) float32 {
	if l < linearThreshold {
		return l * srgbSlope * scale
	}
	return srgbScaleA*scale*float32(math.Pow(float64(l), 1.0/srgbExponent)) - srgbOffset*scale
}

// LinearFromSRGBA converts an sRGB color with channels in [0, 255] to linear
// 0-1. This is the vertex-stage conversion applied to UI vertex colors; alpha
// is divided by 255 without gamma correction.
//
// Parameters:
//   - c: color with RGB channels sRGB-encoded in the 0-255 domain
//
// Returns:
//   - common.RGBA: linear color with all channels in [0, 1]
func LinearFromSRGBA(c common.RGBA) common.RGBA {
	return common.RGBA{
		R: LinearFromSRGB(c.R, ScaleByte),
		G: LinearFromSRGB(c.G, ScaleByte),
		B: LinearFromSRGB(c.B, ScaleByte),
		A: c.A / ScaleByte,
	}
}

// GammaFromLinearRGBA re-encodes a linear 0-1 color back into gamma space with
// channels in [0, 1]. The font fragment path applies this to the interpolated
// vertex color before multiplying with the sRGB-sampled atlas coverage, so the
// multiply happens in gamma space as the glyph atlas expects. Alpha passes
// through unchanged.
//
// Parameters:
//   - c: linear color with all channels in [0, 1]
//
// Returns:
//   - common.RGBA: gamma-encoded color with channels in [0, 1]
func GammaFromLinearRGBA(c common.RGBA) common.RGBA {
	return common.RGBA{
		R: SRGBFromLinear(c.R, ScaleByte) / ScaleByte,
		G: SRGBFromLinear(c.G, ScaleByte) / ScaleByte,
		B: SRGBFromLinear(c.B, ScaleByte) / ScaleByte,
		A: c.A,
	}
}
