// package view holds the 2D viewing state shared by every world-space draw:
// the camera (pan position + zoom) and the screen size, together with their
// GPU uniform representations.
package view

import (
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/lumen2d/lumen/common"
	"github.com/lumen2d/lumen/engine/renderer/bind_group_provider"
)

// WindowPropertiesBinding is the bind group binding index for the screen size
// uniform. Every shader family binds it at group 0.
const WindowPropertiesBinding = 101

// WorldViewBinding is the bind group binding index for the world view uniform
// (camera position + zoom). World-space shader families bind it at group 0.
const WorldViewBinding = 201

// cameraCount is an atomic counter used to generate unique bind group provider names for each camera instance.
var cameraCount atomic.Uint64

// ScreenSize is the render target size in pixels.
type ScreenSize struct {
	Width  float32
	Height float32
}

// Vec2 returns the screen size as a vector.
func (s ScreenSize) Vec2() common.Vec2 {
	return common.Vec2{X: s.Width, Y: s.Height}
}

// Validate checks the screen size invariant (both dimensions strictly
// positive and finite).
//
// Returns:
//   - error: a *ConfigError describing the violation, or nil
func (s ScreenSize) Validate() error {
	if !common.IsFinite(s.Width) || s.Width <= 0 {
		return &ConfigError{Field: "screen width", Value: s.Width}
	}
	if !common.IsFinite(s.Height) || s.Height <= 0 {
		return &ConfigError{Field: "screen height", Value: s.Height}
	}
	return nil
}

type cameraImpl struct {
	mu *sync.Mutex

	position common.Vec2
	zoom     float32

	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Camera2D is the world-space viewing transform: a pan position in world
// units and a positive zoom factor. It owns the bind group provider carrying
// the WorldView2d uniform so world pipelines can share one descriptor.
type Camera2D interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - common.Vec2: the camera position
	Position() common.Vec2

	// Zoom returns the current zoom factor.
	//
	// Returns:
	//   - float32: the zoom factor
	Zoom() float32

	// SetPosition sets the camera's world-space position.
	//
	// Parameters:
	//   - pos: the new camera position
	SetPosition(pos common.Vec2)

	// SetZoom sets the zoom factor. The value is stored as given; invalid
	// zoom (zero, negative, non-finite) is rejected at frame submission by
	// Validate rather than silently corrected here.
	//
	// Parameters:
	//   - zoom: the new zoom factor
	SetZoom(zoom float32)

	// Pan offsets the camera position by delta world units.
	//
	// Parameters:
	//   - delta: world-space offset to apply
	Pan(delta common.Vec2)

	// ZoomBy multiplies the current zoom by factor.
	//
	// Parameters:
	//   - factor: multiplier applied to the zoom
	ZoomBy(factor float32)

	// Validate checks the zoom invariant (strictly positive and finite).
	//
	// Returns:
	//   - error: a *ConfigError describing the violation, or nil
	Validate() error

	// Uniform returns the GPU uniform block for the current camera state.
	//
	// Returns:
	//   - GPUWorldView2d: the uniform block ready for Marshal
	Uniform() GPUWorldView2d

	// VisibleRect returns the axis-aligned world-space rectangle covered by
	// the screen at the current pan and zoom. Useful for skipping world
	// instances that cannot reach the viewport.
	//
	// Parameters:
	//   - screen: current screen size in pixels
	//
	// Returns:
	//   - common.Vec2: rectangle minimum corner
	//   - common.Vec2: rectangle maximum corner
	VisibleRect(screen ScreenSize) (min, max common.Vec2)

	// BindGroupProvider returns the camera's bind group provider for GPU resources.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the bind group provider
	BindGroupProvider() bind_group_provider.BindGroupProvider
}

var _ Camera2D = &cameraImpl{}

// NewCamera2D creates a Camera2D at the origin with zoom 1.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera2D: the newly created camera
func NewCamera2D(options ...Camera2DBuilderOption) Camera2D {
	c := &cameraImpl{
		mu:   &sync.Mutex{},
		zoom: 1,
		bindGroupProvider: bind_group_provider.NewBindGroupProvider(
			// Add then subtract so the read and the increment are one atomic
			// step; a separate Load would let concurrent constructors mint
			// the same label.
			"camera2d_" + strconv.FormatUint(cameraCount.Add(1)-1, 10),
		),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *cameraImpl) Position() common.Vec2 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) Zoom() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zoom
}

func (c *cameraImpl) SetPosition(pos common.Vec2) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = pos
}

func (c *cameraImpl) SetZoom(zoom float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.zoom = zoom
}

func (c *cameraImpl) Pan(delta common.Vec2) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = c.position.Add(delta)
}

func (c *cameraImpl) ZoomBy(factor float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.zoom *= factor
}

func (c *cameraImpl) Validate() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !common.IsFinite(c.zoom) || c.zoom <= 0 {
		return &ConfigError{Field: "zoom", Value: c.zoom}
	}
	return nil
}

func (c *cameraImpl) Uniform() GPUWorldView2d {
	c.mu.Lock()
	defer c.mu.Unlock()
	return GPUWorldView2d{
		Position: [2]float32{c.position.X, c.position.Y},
		Zoom:     c.zoom,
	}
}

func (c *cameraImpl) VisibleRect(screen ScreenSize) (min, max common.Vec2) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.zoom <= 0 {
		return c.position, c.position
	}
	// NDC [-1, 1] maps to zoom * (world - position) * 2 / screen, so the
	// world half-extent along each axis is screen / (2 * zoom).
	half := common.Vec2{
		X: screen.Width / (2 * c.zoom),
		Y: screen.Height / (2 * c.zoom),
	}
	return c.position.Sub(half), c.position.Add(half)
}

func (c *cameraImpl) BindGroupProvider() bind_group_provider.BindGroupProvider {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bindGroupProvider
}

// ConfigError reports an invalid viewing configuration (zero or negative
// screen dimension or zoom). Frames submitted with an invalid configuration
// are dropped whole rather than drawn with a degenerate transform.
type ConfigError struct {
	// Field names the offending parameter.
	Field string
	// Value is the rejected value.
	Value float32
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid view configuration: %s = %v (must be > 0)", e.Field, e.Value)
}
