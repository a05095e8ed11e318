package draw

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/lumen2d/lumen/common"
	"github.com/lumen2d/lumen/engine/renderer/pipeline"
	"github.com/lumen2d/lumen/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/triangles.wgsl
var trianglesWGSL string

// PipelineKeyTriangles is the registry key for the filled triangle family.
const PipelineKeyTriangles = "triangles"

// TriangleVertex is the per-vertex record of the triangle family. Triangles
// share a flat per-draw color.
type TriangleVertex struct {
	// Pos is the vertex position in screen pixels.
	Pos [2]float32
}

// EncodeTriangleVertices converts triangle vertices to raw vertex buffer bytes.
//
// Parameters:
//   - vertices: the triangle vertices to encode, three per triangle
//
// Returns:
//   - []byte: the raw vertex buffer contents
func EncodeTriangleVertices(vertices []TriangleVertex) []byte {
	return common.SliceToBytes(vertices)
}

// TriangleDrawParams is the group 2 per-draw uniform block for triangles:
// the flat fill color. 16 bytes, std140-compatible.
type TriangleDrawParams struct {
	// Color is the fill color in linear RGBA for every triangle in this draw.
	Color [4]float32
}

// Size returns the byte size of the uniform block.
//
// Returns:
//   - int: the struct size in bytes (16)
func (p *TriangleDrawParams) Size() int {
	return int(unsafe.Sizeof(*p))
}

// Marshal serializes the block to little-endian bytes for a GPU buffer write.
//
// Returns:
//   - []byte: the serialized byte buffer
func (p *TriangleDrawParams) Marshal() []byte {
	buf := make([]byte, p.Size())
	for i, v := range p.Color {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], math.Float32bits(v))
	}
	return buf
}

// triangleVertexLayout returns the single per-vertex layout for triangles.
func triangleVertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: 8,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
		},
	}
}

// NewTrianglesPipeline builds the triangle pipeline: screen-space vertex soups
// filled with a per-draw flat color.
//
// Returns:
//   - pipeline.Pipeline: the unregistered pipeline, ready for Renderer.RegisterPipelines
func NewTrianglesPipeline() pipeline.Pipeline {
	params := &TriangleDrawParams{}
	checkDrawParamsSize(PipelineKeyTriangles, uint64(params.Size()))

	vs := shader.NewShader("triangles_vs", shader.ShaderTypeVertex, trianglesWGSL,
		shader.WithVertexLayouts(triangleVertexLayout()),
		shader.WithBindGroupLayout(0, ViewBindGroupLayout(false)),
	)
	fs := shader.NewShader("triangles_fs", shader.ShaderTypeFragment, trianglesWGSL,
		shader.WithBindGroupLayout(2, ParamsBindGroupLayout(wgpu.ShaderStageFragment, uint64(params.Size()))),
	)

	return pipeline.NewPipeline(PipelineKeyTriangles,
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
		pipeline.WithBlendMode(pipeline.BlendAlpha),
	)
}
