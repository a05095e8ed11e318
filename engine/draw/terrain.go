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

//go:embed assets/terrain.wgsl
var terrainWGSL string

// PipelineKeyTerrain is the registry key for the tiled terrain family.
const PipelineKeyTerrain = "terrain"

// TerrainInstance is the per-tile record of the terrain family. Tiles share a
// per-draw size and texture; each tile picks its atlas region and darkening.
type TerrainInstance struct {
	// TilePos is the tile center in world coordinates.
	TilePos [2]float32
	// UV0 is the top-left corner of the atlas region.
	UV0 [2]float32
	// UV1 is the bottom-right corner of the atlas region.
	UV1 [2]float32
	// Shading is the per-tile darkening factor in [0, 1], 1 = fully darkened.
	Shading float32
}

// EncodeTerrainInstances converts terrain tiles to raw per-instance bytes.
//
// Parameters:
//   - instances: the terrain tiles to encode
//
// Returns:
//   - []byte: the raw instance buffer contents
func EncodeTerrainInstances(instances []TerrainInstance) []byte {
	return common.SliceToBytes(instances)
}

// TerrainDrawParams is the group 2 per-draw uniform block for terrain: the
// shared tile size and the darkening mode. 16 bytes, std140-compatible.
type TerrainDrawParams struct {
	// TileSize is the edge length of every tile in this draw, in world units.
	TileSize [2]float32
	// Mode selects the darkening behavior for this draw.
	Mode TerrainShadingMode
	_pad uint32
}

// Size returns the byte size of the uniform block.
//
// Returns:
//   - int: the struct size in bytes (16)
func (p *TerrainDrawParams) Size() int {
	return int(unsafe.Sizeof(*p))
}

// Marshal serializes the block to little-endian bytes for a GPU buffer write.
//
// Returns:
//   - []byte: the serialized byte buffer
func (p *TerrainDrawParams) Marshal() []byte {
	buf := make([]byte, p.Size())
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(p.TileSize[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(p.TileSize[1]))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(p.Mode))
	binary.LittleEndian.PutUint32(buf[12:16], 0)
	return buf
}

// terrainInstanceLayout returns the slot 1 per-instance layout for terrain tiles.
func terrainInstanceLayout() wgpu.VertexBufferLayout {
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

// NewTerrainPipeline builds the terrain pipeline: instanced tile quads in
// world space with per-draw size and darkening mode.
//
// Returns:
//   - pipeline.Pipeline: the unregistered pipeline, ready for Renderer.RegisterPipelines
func NewTerrainPipeline() pipeline.Pipeline {
	params := &TerrainDrawParams{}
	checkDrawParamsSize(PipelineKeyTerrain, uint64(params.Size()))

	vs := shader.NewShader("terrain_vs", shader.ShaderTypeVertex, terrainWGSL,
		shader.WithVertexLayouts(quadVertexLayout(), terrainInstanceLayout()),
		shader.WithBindGroupLayout(0, ViewBindGroupLayout(true)),
		shader.WithBindGroupLayout(2, ParamsBindGroupLayout(wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, uint64(params.Size()))),
	)
	fs := shader.NewShader("terrain_fs", shader.ShaderTypeFragment, terrainWGSL,
		shader.WithBindGroupLayout(1, TextureBindGroupLayout()),
	)

	return pipeline.NewPipeline(PipelineKeyTerrain,
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
		pipeline.WithBlendMode(pipeline.BlendAlpha),
		pipeline.WithInstanceStep(),
	)
}
