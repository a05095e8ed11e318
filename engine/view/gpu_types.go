package view

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUWindowPropertiesSource is the canonical WGSL definition of the
// WindowProperties uniform struct at group 0 binding 101.
// Matches GPUWindowProperties layout exactly (16 bytes, uniform aligned).
//
//go:embed assets/window_properties.wgsl
var GPUWindowPropertiesSource string

// GPUWorldView2dSource is the canonical WGSL definition of the WorldView2d
// uniform struct at group 0 binding 201.
// Matches GPUWorldView2d layout exactly (16 bytes, uniform aligned).
//
//go:embed assets/world_view.wgsl
var GPUWorldView2dSource string

// GPUWindowProperties is the GPU-aligned representation of the screen size
// uniform buffer. Matches the WGSL WindowProperties struct layout exactly
// (see GPUWindowPropertiesSource). Size: 16 bytes.
type GPUWindowProperties struct {
	ScreenSize [2]float32 // offset 0: screen size in pixels (vec2<f32>)
	_pad       [2]float32 // offset 8: padding to 16 bytes
}

// Size returns the size of the GPUWindowProperties struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (16)
func (g *GPUWindowProperties) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUWindowProperties struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUWindowProperties) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 2 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.ScreenSize[i]))
	}
	binary.LittleEndian.PutUint32(buf[8:], 0)  // _pad
	binary.LittleEndian.PutUint32(buf[12:], 0) // _pad
	return buf
}

// GPUWorldView2d is the GPU-aligned representation of the world view uniform
// buffer (camera pan position + zoom). Matches the WGSL WorldView2d struct
// layout exactly (see GPUWorldView2dSource). Size: 16 bytes.
type GPUWorldView2d struct {
	Position [2]float32 // offset 0: camera world-space position (vec2<f32>)
	Zoom     float32    // offset 8: zoom factor (f32)
	_pad     float32    // offset 12: padding to 16 bytes
}

// Size returns the size of the GPUWorldView2d struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (16)
func (g *GPUWorldView2d) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUWorldView2d struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUWorldView2d) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 2 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Position[i]))
	}
	binary.LittleEndian.PutUint32(buf[8:], math.Float32bits(g.Zoom))
	binary.LittleEndian.PutUint32(buf[12:], 0) // _pad
	return buf
}
