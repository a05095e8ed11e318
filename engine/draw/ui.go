package draw

import (
	_ "embed"

	"github.com/lumen2d/lumen/common"
	"github.com/lumen2d/lumen/engine/renderer/pipeline"
	"github.com/lumen2d/lumen/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/ui.wgsl
var uiWGSL string

// PipelineKeyUI is the registry key for the UI overlay family.
const PipelineKeyUI = "ui"

// UIVertex is the per-vertex record of the UI overlay family. UI meshes are
// screen-space triangle lists sampling the font atlas.
type UIVertex struct {
	// Pos is the vertex position in screen pixels.
	Pos [2]float32
	// UV is the font atlas coordinate.
	UV [2]float32
	// Color is the vertex color, sRGB-encoded in the 0-255 range. The vertex
	// stage decodes it to linear before interpolation.
	Color [4]float32
}

// EncodeUIVertices converts UI vertices to raw vertex buffer bytes.
//
// Parameters:
//   - vertices: the UI mesh vertices to encode
//
// Returns:
//   - []byte: the raw vertex buffer contents
func EncodeUIVertices(vertices []UIVertex) []byte {
	return common.SliceToBytes(vertices)
}

// uiVertexLayout returns the single per-vertex layout for UI meshes.
func uiVertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: 32,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2},
		},
	}
}

// NewUIPipeline builds the UI overlay pipeline: screen-space triangle lists
// with gamma-correct font atlas blending. The atlas texture must be supplied
// sRGB-encoded (common.TextureStagingData with SRGB set).
//
// Returns:
//   - pipeline.Pipeline: the unregistered pipeline, ready for Renderer.RegisterPipelines
func NewUIPipeline() pipeline.Pipeline {
	vs := shader.NewShader("ui_vs", shader.ShaderTypeVertex, uiWGSL,
		shader.WithVertexLayouts(uiVertexLayout()),
		shader.WithBindGroupLayout(0, ViewBindGroupLayout(false)),
	)
	fs := shader.NewShader("ui_fs", shader.ShaderTypeFragment, uiWGSL,
		shader.WithBindGroupLayout(1, TextureBindGroupLayout()),
	)

	return pipeline.NewPipeline(PipelineKeyUI,
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
		pipeline.WithBlendMode(pipeline.BlendAlpha),
	)
}
