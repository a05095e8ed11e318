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

//go:embed assets/lines.wgsl
var linesWGSL string

// PipelineKeyLines is the registry key for the anti-aliased line family.
const PipelineKeyLines = "lines"

// LineVertex is the submission record of the line family. A line is a strip
// of these vertices sharing a per-draw width. Before upload the strip is
// expanded into per-segment quad instances, since line primitives rasterize a
// single pixel wide and could never cover the stroke.
type LineVertex struct {
	// Pos is the vertex position in screen pixels.
	Pos [2]float32
	// Color is the vertex color in linear RGBA, interpolated along the strip.
	Color [4]float32
}

// LineSegmentInstance is the per-instance record of one expanded strip
// segment: a unit quad stretched between the endpoints and scaled across the
// stroke width by the vertex stage.
type LineSegmentInstance struct {
	// P0 and P1 are the segment endpoints in screen pixels.
	P0 [2]float32
	P1 [2]float32
	// Color0 and Color1 are the endpoint colors, interpolated along the
	// segment.
	Color0 [4]float32
	Color1 [4]float32
}

// ExpandLineStrip converts a vertex strip into its segment instances. A strip
// of n vertices yields n-1 segments; strips shorter than 2 vertices yield
// none.
//
// Parameters:
//   - vertices: the strip vertices in order
//
// Returns:
//   - []LineSegmentInstance: one instance per consecutive vertex pair
func ExpandLineStrip(vertices []LineVertex) []LineSegmentInstance {
	if len(vertices) < 2 {
		return nil
	}
	segments := make([]LineSegmentInstance, 0, len(vertices)-1)
	for i := 0; i+1 < len(vertices); i++ {
		segments = append(segments, LineSegmentInstance{
			P0:     vertices[i].Pos,
			P1:     vertices[i+1].Pos,
			Color0: vertices[i].Color,
			Color1: vertices[i+1].Color,
		})
	}
	return segments
}

// EncodeLineSegments converts segment instances to raw instance buffer bytes.
//
// Parameters:
//   - segments: the segment instances to encode
//
// Returns:
//   - []byte: the raw instance buffer contents
func EncodeLineSegments(segments []LineSegmentInstance) []byte {
	return common.SliceToBytes(segments)
}

// LineDrawParams is the group 2 per-draw uniform block for lines: the shared
// stroke width. 16 bytes, std140-compatible.
type LineDrawParams struct {
	// Width is the stroke width in pixels for every segment in this draw.
	Width float32
	_pad  [3]float32
}

// Size returns the byte size of the uniform block.
//
// Returns:
//   - int: the struct size in bytes (16)
func (p *LineDrawParams) Size() int {
	return int(unsafe.Sizeof(*p))
}

// Marshal serializes the block to little-endian bytes for a GPU buffer write.
//
// Returns:
//   - []byte: the serialized byte buffer
func (p *LineDrawParams) Marshal() []byte {
	buf := make([]byte, p.Size())
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(p.Width))
	return buf
}

// lineSegmentInstanceLayout returns the per-instance layout for expanded
// segments, bound at slot 1 alongside the shared unit quad.
func lineSegmentInstanceLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: 48,
		StepMode:    wgpu.VertexStepModeInstance,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 2},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 3},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 4},
		},
	}
}

// NewLinesPipeline builds the line pipeline: screen-space strips expanded
// into one quad per segment, each spanning the full stroke width so the
// fragment stage sees real perpendicular distances for the alpha taper.
//
// Returns:
//   - pipeline.Pipeline: the unregistered pipeline, ready for Renderer.RegisterPipelines
func NewLinesPipeline() pipeline.Pipeline {
	params := &LineDrawParams{}
	checkDrawParamsSize(PipelineKeyLines, uint64(params.Size()))

	vs := shader.NewShader("lines_vs", shader.ShaderTypeVertex, linesWGSL,
		shader.WithVertexLayouts(quadVertexLayout(), lineSegmentInstanceLayout()),
		shader.WithBindGroupLayout(0, ViewBindGroupLayout(false)),
		shader.WithBindGroupLayout(2, ParamsBindGroupLayout(wgpu.ShaderStageVertex, uint64(params.Size()))),
	)
	fs := shader.NewShader("lines_fs", shader.ShaderTypeFragment, linesWGSL)

	return pipeline.NewPipeline(PipelineKeyLines,
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
		pipeline.WithBlendMode(pipeline.BlendAlpha),
		pipeline.WithInstanceStep(),
	)
}
