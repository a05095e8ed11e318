package shader

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderBuilderOption is a functional option used to configure a Shader during construction.
type ShaderBuilderOption func(*shader)

// WithEntryPoint overrides the default entry point name.
//
// Parameters:
//   - name: the entry point function name in the WGSL source
//
// Returns:
//   - ShaderBuilderOption: a function that sets the entry point
func WithEntryPoint(name string) ShaderBuilderOption {
	return func(s *shader) {
		s.entryPoint = name
	}
}

// WithVertexLayouts declares the vertex buffer layouts for a vertex shader,
// in slot order. The layouts must match the @location declarations in the
// WGSL source.
//
// Parameters:
//   - layouts: the vertex buffer layouts in slot order
//
// Returns:
//   - ShaderBuilderOption: a function that sets the vertex layouts
func WithVertexLayouts(layouts ...wgpu.VertexBufferLayout) ShaderBuilderOption {
	return func(s *shader) {
		s.vertexLayouts = layouts
	}
}

// WithBindGroupLayout declares the bind group layout for one group index. The
// entries must match the @group/@binding declarations in the WGSL source.
//
// Parameters:
//   - group: the bind group index
//   - descriptor: the layout descriptor for the group
//
// Returns:
//   - ShaderBuilderOption: a function that declares the bind group layout
func WithBindGroupLayout(group int, descriptor wgpu.BindGroupLayoutDescriptor) ShaderBuilderOption {
	return func(s *shader) {
		s.bindGroupLayoutDescriptors[group] = descriptor
	}
}
