package draw

import (
	"github.com/lumen2d/lumen/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// QuadVertex is the per-vertex record of the shared unit quad mesh.
type QuadVertex struct {
	Pos [2]float32
}

// UnitQuadVertices returns the four corners of the unit quad centered on the
// origin. Every instanced family scales this quad by its instance size in the
// vertex stage, so one immutable mesh serves circles, sprites, and terrain.
//
// Returns:
//   - []QuadVertex: the four corners, counter-clockwise from bottom-left
func UnitQuadVertices() []QuadVertex {
	return []QuadVertex{
		{Pos: [2]float32{-0.5, -0.5}},
		{Pos: [2]float32{0.5, -0.5}},
		{Pos: [2]float32{0.5, 0.5}},
		{Pos: [2]float32{-0.5, 0.5}},
	}
}

// UnitQuadIndices returns the two-triangle index list for the unit quad.
//
// Returns:
//   - []uint32: six indices forming two counter-clockwise triangles
func UnitQuadIndices() []uint32 {
	return []uint32{0, 1, 2, 2, 3, 0}
}

// UnitQuadIndexCount is the number of indices in the unit quad mesh.
const UnitQuadIndexCount = 6

// EncodeQuadVertices converts the quad vertex slice to raw GPU bytes.
//
// Parameters:
//   - vertices: the quad vertices to encode
//
// Returns:
//   - []byte: the raw vertex buffer contents
func EncodeQuadVertices(vertices []QuadVertex) []byte {
	return common.SliceToBytes(vertices)
}

// EncodeQuadIndices converts the quad index slice to raw GPU bytes.
//
// Parameters:
//   - indices: the quad indices to encode
//
// Returns:
//   - []byte: the raw index buffer contents
func EncodeQuadIndices(indices []uint32) []byte {
	return common.SliceToBytes(indices)
}

// quadVertexLayout returns the slot 0 vertex layout shared by every instanced
// family: one vec2 position per quad corner at shader location 0.
func quadVertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: 8,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
		},
	}
}
