package view

import (
	"github.com/lumen2d/lumen/common"
	"github.com/lumen2d/lumen/engine/renderer/bind_group_provider"
)

type Camera2DBuilderOption func(*cameraImpl)

// WithPosition sets the camera's initial world-space position.
//
// Parameters:
//   - pos: the camera position
//
// Returns:
//   - Camera2DBuilderOption: a function that sets the camera position
func WithPosition(pos common.Vec2) Camera2DBuilderOption {
	return func(c *cameraImpl) {
		c.position = pos
	}
}

// WithZoom sets the camera's initial zoom factor.
//
// Parameters:
//   - zoom: the zoom factor
//
// Returns:
//   - Camera2DBuilderOption: a function that sets the zoom factor
func WithZoom(zoom float32) Camera2DBuilderOption {
	return func(c *cameraImpl) {
		c.zoom = zoom
	}
}

// WithBindGroupProvider attaches a bind group provider to the camera.
// The provider carries the WorldView2d uniform buffer for world pipelines.
//
// Parameters:
//   - provider: the bind group provider to attach
//
// Returns:
//   - Camera2DBuilderOption: functional option to set the bind group provider
func WithBindGroupProvider(provider bind_group_provider.BindGroupProvider) Camera2DBuilderOption {
	return func(c *cameraImpl) {
		c.bindGroupProvider = provider
	}
}
