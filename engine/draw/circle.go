package draw

import (
	_ "embed"

	"github.com/lumen2d/lumen/common"
	"github.com/lumen2d/lumen/engine/renderer/pipeline"
	"github.com/lumen2d/lumen/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/glow_circles.wgsl
var glowCirclesWGSL string

// PipelineKeyGlowCircles is the registry key for the glow circle family.
const PipelineKeyGlowCircles = "glow_circles"

// CircleInstance is the per-instance record of the glow circle family.
// Field order matches the GPU vertex layout; the struct is uploaded verbatim.
type CircleInstance struct {
	// Pos is the instance center in world coordinates.
	Pos [2]float32
	// Color is the instance color in linear RGBA.
	Color [4]float32
	// Radius is the solid core radius; halved by the fragment stage.
	Radius float32
	// Corona is the glow radius, >= Radius; halved by the fragment stage.
	Corona float32
	// LateAlpha is the fade-in factor in [0, 1].
	LateAlpha float32
}

// EncodeCircleInstances converts circle instances to raw per-instance bytes.
//
// Parameters:
//   - instances: the circle instances to encode
//
// Returns:
//   - []byte: the raw instance buffer contents
func EncodeCircleInstances(instances []CircleInstance) []byte {
	return common.SliceToBytes(instances)
}

// circleInstanceLayout returns the slot 1 per-instance layout for glow circles.
func circleInstanceLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: 36,
		StepMode:    wgpu.VertexStepModeInstance,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 8, ShaderLocation: 2},
			{Format: wgpu.VertexFormatFloat32, Offset: 24, ShaderLocation: 3},
			{Format: wgpu.VertexFormatFloat32, Offset: 28, ShaderLocation: 4},
			{Format: wgpu.VertexFormatFloat32, Offset: 32, ShaderLocation: 5},
		},
	}
}

// NewGlowCirclesPipeline builds the glow circle pipeline: instanced unit quads
// in world space, alpha blended with fragment discard beyond the corona.
//
// Returns:
//   - pipeline.Pipeline: the unregistered pipeline, ready for Renderer.RegisterPipelines
func NewGlowCirclesPipeline() pipeline.Pipeline {
	vs := shader.NewShader("glow_circles_vs", shader.ShaderTypeVertex, glowCirclesWGSL,
		shader.WithVertexLayouts(quadVertexLayout(), circleInstanceLayout()),
		shader.WithBindGroupLayout(0, ViewBindGroupLayout(true)),
	)
	fs := shader.NewShader("glow_circles_fs", shader.ShaderTypeFragment, glowCirclesWGSL)

	return pipeline.NewPipeline(PipelineKeyGlowCircles,
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
		pipeline.WithBlendMode(pipeline.BlendAlphaDiscard),
		pipeline.WithInstanceStep(),
	)
}
