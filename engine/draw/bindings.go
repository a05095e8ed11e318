package draw

import (
	"fmt"

	"github.com/lumen2d/lumen/engine/view"
	"github.com/cogentcore/webgpu/wgpu"
)

const (
	// TextureBinding and SamplerBinding are the fixed group 1 slots for
	// textured families.
	TextureBinding = 0
	SamplerBinding = 1

	// DrawParamsBinding is the fixed group 2 slot for per-draw parameter blocks.
	DrawParamsBinding = 0

	// maxDrawParamsSize caps per-draw parameter blocks at the minimum
	// guaranteed push-constant size of the common graphics APIs. WebGPU has no
	// push constants, so the blocks travel in a small uniform buffer instead,
	// but the size contract is kept so the layouts stay portable.
	maxDrawParamsSize = 128
)

// checkDrawParamsSize panics when a per-draw parameter block exceeds the
// portable size bound. Called from family pipeline constructors at startup,
// where an oversized block is a programming error.
func checkDrawParamsSize(family string, size uint64) {
	if size > maxDrawParamsSize {
		panic(fmt.Sprintf("draw params for %s are %d bytes, exceeding the %d byte limit", family, size, maxDrawParamsSize))
	}
}

// ViewBindGroupLayout returns the group 0 layout shared by every family:
// WindowProperties at binding 101 and, for world-space families, WorldView2d
// at binding 201. Both are visible to the vertex stage only.
//
// Parameters:
//   - worldSpace: true to include the WorldView2d camera uniform
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the group 0 layout descriptor
func ViewBindGroupLayout(worldSpace bool) wgpu.BindGroupLayoutDescriptor {
	windowProps := &view.GPUWindowProperties{}
	worldView := &view.GPUWorldView2d{}

	entries := []wgpu.BindGroupLayoutEntry{
		{
			Binding:    view.WindowPropertiesBinding,
			Visibility: wgpu.ShaderStageVertex,
			Buffer: wgpu.BufferBindingLayout{
				Type:           wgpu.BufferBindingTypeUniform,
				MinBindingSize: uint64(windowProps.Size()),
			},
		},
	}
	if worldSpace {
		entries = append(entries, wgpu.BindGroupLayoutEntry{
			Binding:    view.WorldViewBinding,
			Visibility: wgpu.ShaderStageVertex,
			Buffer: wgpu.BufferBindingLayout{
				Type:           wgpu.BufferBindingTypeUniform,
				MinBindingSize: uint64(worldView.Size()),
			},
		})
	}
	return wgpu.BindGroupLayoutDescriptor{
		Label:   "view_bind_group_layout",
		Entries: entries,
	}
}

// TextureBindGroupLayout returns the group 1 layout for textured families:
// a filterable 2D texture at binding 0 and a filtering sampler at binding 1,
// both visible to the fragment stage.
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the group 1 layout descriptor
func TextureBindGroupLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "texture_bind_group_layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    TextureBinding,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    SamplerBinding,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	}
}

// ParamsBindGroupLayout returns the group 2 layout for a per-draw parameter
// block at binding 0.
//
// Parameters:
//   - visibility: the shader stages reading the block
//   - size: the block size in bytes
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the group 2 layout descriptor
func ParamsBindGroupLayout(visibility wgpu.ShaderStage, size uint64) wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "draw_params_bind_group_layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    DrawParamsBinding,
				Visibility: visibility,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: size,
				},
			},
		},
	}
}
