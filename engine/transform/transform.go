// package transform holds the pure coordinate conversions from screen-space
// and world-space positions into normalized device coordinates. These mirror
// the vertex-stage math in the WGSL shaders and are the host-side reference
// used by tests and by CPU-side hit checks.
//
// All functions report ok=false when the result is not finite (NaN or Inf
// introduced by degenerate input). Callers skip such instances rather than
// submitting them; validity of the overall view configuration (non-zero
// screen, positive zoom) is checked up front via view.Validate.
package transform

import (
	"github.com/lumen2d/lumen/common"
	"github.com/lumen2d/lumen/engine/view"
)

// ScreenToNDC converts a screen-space position in pixels (origin top-left) to
// normalized device coordinates in [-1, 1]:
//
//	ndc = 2 * pos / screen - 1
//
// Parameters:
//   - pos: position in pixels
//   - screen: render target size in pixels
//
// Returns:
//   - common.Vec2: the NDC position
//   - bool: false if the result is not finite
func ScreenToNDC(pos common.Vec2, screen view.ScreenSize) (common.Vec2, bool) {
	ndc := common.Vec2{
		X: 2*pos.X/screen.Width - 1,
		Y: 2*pos.Y/screen.Height - 1,
	}
	return ndc, ndc.IsFinite()
}

// WorldToNDC converts a world-space point to normalized device coordinates
// under the given camera pan and zoom:
//
//	ndc = 2 * zoom * (pos - cam) / screen
//
// Parameters:
//   - pos: world-space position
//   - camPos: camera world-space position
//   - zoom: camera zoom factor
//   - screen: render target size in pixels
//
// Returns:
//   - common.Vec2: the NDC position
//   - bool: false if the result is not finite
func WorldToNDC(pos, camPos common.Vec2, zoom float32, screen view.ScreenSize) (common.Vec2, bool) {
	ndc := common.Vec2{
		X: 2 * zoom * (pos.X - camPos.X) / screen.Width,
		Y: 2 * zoom * (pos.Y - camPos.Y) / screen.Height,
	}
	return ndc, ndc.IsFinite()
}

// WorldInstanceToNDC converts one corner of an instanced world quad to
// normalized device coordinates. The unit-quad corner (local) is scaled by the
// instance size and offset by the instance position before the camera
// transform:
//
//	ndc = 2 * zoom * (local*size + inst - cam) / screen
//
// Parameters:
//   - local: unit-quad corner in [-0.5, 0.5]
//   - size: instance size in world units
//   - inst: instance world-space position
//   - camPos: camera world-space position
//   - zoom: camera zoom factor
//   - screen: render target size in pixels
//
// Returns:
//   - common.Vec2: the NDC position
//   - bool: false if the result is not finite
func WorldInstanceToNDC(local common.Vec2, size float32, inst, camPos common.Vec2, zoom float32, screen view.ScreenSize) (common.Vec2, bool) {
	return WorldToNDC(local.Scale(size).Add(inst), camPos, zoom, screen)
}
