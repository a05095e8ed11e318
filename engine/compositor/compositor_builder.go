package compositor

// compositorConfig holds the construction-time settings applied by
// CompositorBuilderOption functions.
type compositorConfig struct {
	encodeWorkers  int
	circleCapacity int
	spriteCapacity int
}

// CompositorBuilderOption is a variadic option function used to configure a
// Compositor during construction.
type CompositorBuilderOption func(*compositorConfig)

// WithEncodeWorkers sets the number of workers encoding frame data in
// parallel. Defaults to 4 when unset or non-positive.
//
// Parameters:
//   - workers: the worker count
//
// Returns:
//   - CompositorBuilderOption: the option function
func WithEncodeWorkers(workers int) CompositorBuilderOption {
	return func(cfg *compositorConfig) {
		cfg.encodeWorkers = workers
	}
}

// WithCircleCapacity caps the number of glow circle instances accepted per
// frame. Submissions past the cap keep what fits and return a
// *batch.CapacityError. Unset means unbounded.
//
// Parameters:
//   - capacity: the per-frame instance cap
//
// Returns:
//   - CompositorBuilderOption: the option function
func WithCircleCapacity(capacity int) CompositorBuilderOption {
	return func(cfg *compositorConfig) {
		cfg.circleCapacity = capacity
	}
}

// WithSpriteCapacity caps the number of sprite instances accepted per frame.
// Submissions past the cap keep what fits and return a *batch.CapacityError.
// Unset means unbounded.
//
// Parameters:
//   - capacity: the per-frame instance cap
//
// Returns:
//   - CompositorBuilderOption: the option function
func WithSpriteCapacity(capacity int) CompositorBuilderOption {
	return func(cfg *compositorConfig) {
		cfg.spriteCapacity = capacity
	}
}
