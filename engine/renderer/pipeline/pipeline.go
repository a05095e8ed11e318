package pipeline

import (
	"github.com/lumen2d/lumen/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// BlendMode selects the color blend behavior for a pipeline's family.
type BlendMode int

const (
	// BlendOpaque disables blending; fragments overwrite the target.
	BlendOpaque BlendMode = iota

	// BlendAlpha enables standard premultiplied-style alpha blending
	// (SrcAlpha / OneMinusSrcAlpha).
	BlendAlpha

	// BlendAlphaDiscard is alpha blending for families whose fragment shader
	// discards near-transparent fragments instead of writing them. The GPU
	// blend state is identical to BlendAlpha; the distinction is carried so
	// the compositor can report the active policy per family.
	BlendAlphaDiscard
)

// pipeline is the implementation of the Pipeline interface.
// It holds the underlying WebGPU render pipeline and the fixed-function state
// used to create it.
type pipeline struct {
	// pipelineKey is the unique family identifier for this pipeline, used for registry lookups
	pipelineKey string

	// shader references used for pipeline creation, required before initializing a pipeline.

	vertexShader, fragmentShader shader.Shader

	// renderPipeline is the compiled WebGPU pipeline, set by the renderer during registration
	renderPipeline *wgpu.RenderPipeline

	// The following properties configure the pipeline during creation and can be toggled/set with the builder options.

	blendMode    BlendMode
	cullMode     wgpu.CullMode
	topology     wgpu.PrimitiveTopology
	frontFace    wgpu.FrontFace
	writeMask    wgpu.ColorWriteMask
	blendState   *wgpu.BlendState
	instanceStep bool
}

// Pipeline defines the interface for one primitive family's render pipeline.
// A pipeline is created once at startup with its shaders and fixed-function
// state, compiled by the renderer during registration, and immutable from
// then on.
type Pipeline interface {
	// PipelineKey returns the unique family key associated with this pipeline, used for registry lookups.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// Shader retrieves the shader associated with the specified type if it exists, nil otherwise.
	//
	// Parameters:
	//   - shaderType: the type of shader to retrieve (vertex or fragment)
	//
	// Returns:
	//   - shader.Shader: the shader associated with the specified type, or nil if not set
	Shader(shaderType shader.ShaderType) shader.Shader

	// Pipeline returns the compiled WebGPU render pipeline, or nil before registration.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the underlying pipeline object
	Pipeline() *wgpu.RenderPipeline

	// BlendMode returns the blend mode configured for this pipeline's family.
	//
	// Returns:
	//   - BlendMode: the blend mode
	BlendMode() BlendMode

	// CullMode returns the cull mode configured for this pipeline.
	//
	// Returns:
	//   - wgpu.CullMode: the cull mode for this pipeline
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology configured for this pipeline.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: the primitive topology for this pipeline
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the front face winding order configured for this pipeline.
	//
	// Returns:
	//   - wgpu.FrontFace: the front face winding order for this pipeline
	FrontFace() wgpu.FrontFace

	// WriteMask returns the color write mask configured for this pipeline.
	//
	// Returns:
	//   - wgpu.ColorWriteMask: the color write mask for this pipeline
	WriteMask() wgpu.ColorWriteMask

	// BlendState returns the blend state configured for this pipeline.
	//
	// Returns:
	//   - *wgpu.BlendState: the blend state for this pipeline, or nil when blending is disabled
	BlendState() *wgpu.BlendState

	// InstanceStep returns whether the pipeline's second vertex buffer slot
	// advances per instance (instanced quad families) rather than per vertex.
	//
	// Returns:
	//   - bool: true if the pipeline uses per-instance vertex data
	InstanceStep() bool

	// SetRenderPipeline sets the compiled render pipeline. Called once by the
	// renderer during registration.
	//
	// Parameters:
	//   - p: the WebGPU render pipeline to set
	SetRenderPipeline(p *wgpu.RenderPipeline)
}

var _ Pipeline = &pipeline{}

// alphaBlendState is the standard alpha blend used by BlendAlpha and
// BlendAlphaDiscard families.
func alphaBlendState() *wgpu.BlendState {
	return &wgpu.BlendState{
		Color: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorSrcAlpha,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			Operation: wgpu.BlendOperationAdd,
		},
		Alpha: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			Operation: wgpu.BlendOperationAdd,
		},
	}
}

// NewPipeline is the entry point to create a new Pipeline interface for one
// primitive family. Pipelines default to alpha blending with triangle-list
// topology and no culling.
//
// Parameters:
//   - pipelineKey: the unique family key for this pipeline
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance with the specified configuration
func NewPipeline(pipelineKey string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey: pipelineKey,
		blendMode:   BlendAlpha,
		cullMode:    wgpu.CullModeNone,
		topology:    wgpu.PrimitiveTopologyTriangleList,
		frontFace:   wgpu.FrontFaceCCW,
		writeMask:   wgpu.ColorWriteMaskAll,
		blendState:  alphaBlendState(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Pipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) BlendMode() BlendMode {
	return p.blendMode
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	if p.blendMode == BlendOpaque {
		return nil
	}
	return p.blendState
}

func (p *pipeline) InstanceStep() bool {
	return p.instanceStep
}

func (p *pipeline) Shader(shaderType shader.ShaderType) shader.Shader {
	switch shaderType {
	case shader.ShaderTypeVertex:
		return p.vertexShader
	case shader.ShaderTypeFragment:
		return p.fragmentShader
	default:
		return nil
	}
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}
