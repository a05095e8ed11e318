package draw

import (
	_ "embed"

	"github.com/lumen2d/lumen/common"
	"github.com/lumen2d/lumen/engine/renderer/pipeline"
	"github.com/lumen2d/lumen/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/sprites.wgsl
var spritesWGSL string

// PipelineKeySprites is the registry key for the textured sprite family.
const PipelineKeySprites = "sprites"

// SpriteInstance is the per-instance record of the sprite family. Sprites are
// world-space entities drawn as instanced quads sampling a texture atlas region.
type SpriteInstance struct {
	// Pos is the instance center in world coordinates.
	Pos [2]float32
	// UV0 is the top-left corner of the atlas region.
	UV0 [2]float32
	// UV1 is the bottom-right corner of the atlas region.
	UV1 [2]float32
	// Size is the quad edge length in world units.
	Size float32
}

// EncodeSpriteInstances converts sprite instances to raw per-instance bytes.
//
// Parameters:
//   - instances: the sprite instances to encode
//
// Returns:
//   - []byte: the raw instance buffer contents
func EncodeSpriteInstances(instances []SpriteInstance) []byte {
	return common.SliceToBytes(instances)
}

// spriteInstanceLayout returns the slot 1 per-instance layout for sprites.
func spriteInstanceLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: 28,
		StepMode:    wgpu.VertexStepModeInstance,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 2},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 16, ShaderLocation: 3},
			{Format: wgpu.VertexFormatFloat32, Offset: 24, ShaderLocation: 4},
		},
	}
}

// NewSpritesPipeline builds the sprite pipeline: instanced unit quads in world
// space sampling a linear texture atlas with standard alpha blending.
//
// Returns:
//   - pipeline.Pipeline: the unregistered pipeline, ready for Renderer.RegisterPipelines
func NewSpritesPipeline() pipeline.Pipeline {
	vs := shader.NewShader("sprites_vs", shader.ShaderTypeVertex, spritesWGSL,
		shader.WithVertexLayouts(quadVertexLayout(), spriteInstanceLayout()),
		shader.WithBindGroupLayout(0, ViewBindGroupLayout(true)),
	)
	fs := shader.NewShader("sprites_fs", shader.ShaderTypeFragment, spritesWGSL,
		shader.WithBindGroupLayout(1, TextureBindGroupLayout()),
	)

	return pipeline.NewPipeline(PipelineKeySprites,
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
		pipeline.WithBlendMode(pipeline.BlendAlpha),
		pipeline.WithInstanceStep(),
	)
}
