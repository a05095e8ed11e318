// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	"github.com/cogentcore/webgpu/wgpu"
)

// Vec2 is a 2-component float vector. It is the position/offset/UV type used by
// every primitive family and matches vec2<f32> in WGSL (8 bytes, no padding).
type Vec2 struct {
	X, Y float32
}

// Add returns the component-wise sum v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns the component-wise difference v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v with both components multiplied by s.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Dist returns the Euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float32 {
	dx := float64(v.X - o.X)
	dy := float64(v.Y - o.Y)
	return float32(math.Sqrt(dx*dx + dy*dy))
}

// IsFinite reports whether both components are finite numbers.
func (v Vec2) IsFinite() bool {
	return IsFinite(v.X) && IsFinite(v.Y)
}

// RGBA is a 4-component float color. The interpretation of the channel range
// (linear 0-1 or sRGB 0-255) depends on the primitive family consuming it; the
// layout always matches vec4<f32> in WGSL.
type RGBA struct {
	R, G, B, A float32
}

// IsFinite reports whether all four channels are finite numbers.
func (c RGBA) IsFinite() bool {
	return IsFinite(c.R) && IsFinite(c.G) && IsFinite(c.B) && IsFinite(c.A)
}

// TextureStagingData holds RGBA pixel data for a texture binding pending GPU upload.
// This is primarily used in the BindGroupProvider to stage texture data before creating the GPU texture and bind group.
type TextureStagingData struct {
	// Pixels is the byte slice representing the actual pixel data for the texture. It should be in RGBA format, with 4 bytes per pixel.
	Pixels []byte
	// Width is the width of the texture in pixels. This is required to correctly create the GPU texture and interpret the pixel data.
	Width uint32
	// Height is the height of the texture in pixels. This is required to correctly create the GPU texture and interpret the pixel data.
	Height uint32
	// SRGB selects an sRGB-encoded texture format (RGBA8UnormSrgb) instead of
	// the default linear RGBA8Unorm. Font atlases are supplied sRGB-encoded.
	SRGB bool
}

// SamplerStagingData holds the configuration for a sampler binding pending GPU creation.
// This is primarily used in the BindGroupProvider to stage sampler data before creating the GPU sampler and bind group.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW specify the addressing mode for texture coordinates outside the [0, 1] range in each dimension (U, V, W).
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter specifies the filtering mode for mipmap level selection.
	MipmapFilter wgpu.MipmapFilterMode
	// LodMinClamp and LodMaxClamp specify the minimum and maximum level of detail (LOD) for mipmapping.
	LodMinClamp, LodMaxClamp float32
	// Compare specifies the comparison function for comparison samplers.
	Compare wgpu.CompareFunction
	// MaxAnisotropy specifies the maximum anisotropy level for anisotropic filtering.
	MaxAnisotropy uint16
}

// DecodeTexture decodes PNG or JPEG bytes (or a file when data is empty and
// path is set) into RGBA staging data ready for GPU upload.
// Reference: https://pkg.go.dev/image
//
// Parameters:
//   - data: raw image bytes (PNG/JPEG), may be nil
//   - path: file path to load when data is empty
//
// Returns:
//   - *TextureStagingData: RGBA pixel data (4 bytes per pixel, row-major order)
//   - error: error if decoding fails
func DecodeTexture(data []byte, path string) (*TextureStagingData, error) {
	var img image.Image
	var err error

	if len(data) > 0 {
		img, _, err = image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode embedded image: %w", err)
		}
	} else if path != "" {
		file, fileErr := os.Open(path)
		if fileErr != nil {
			return nil, fmt.Errorf("failed to open texture file %s: %w", path, fileErr)
		}
		defer file.Close()

		img, _, err = image.Decode(file)
		if err != nil {
			return nil, fmt.Errorf("failed to decode texture file %s: %w", path, err)
		}
	} else {
		return nil, fmt.Errorf("texture has neither data nor path")
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)

	return &TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	}, nil
}
