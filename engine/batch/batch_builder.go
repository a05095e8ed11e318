package batch

type batchConfig struct {
	name            string
	limit           int
	initialCapacity int
}

type BatchBuilderOption func(*batchConfig)

// WithName sets the batch name used in capacity warnings.
//
// Parameters:
//   - name: the batch name
//
// Returns:
//   - BatchBuilderOption: a function that sets the batch name
func WithName(name string) BatchBuilderOption {
	return func(c *batchConfig) {
		c.name = name
	}
}

// WithCapacityLimit sets a hard cap on the number of instances the batch will
// hold per frame. Zero (the default) means unlimited.
//
// Parameters:
//   - limit: maximum instance count per frame
//
// Returns:
//   - BatchBuilderOption: a function that sets the capacity limit
func WithCapacityLimit(limit int) BatchBuilderOption {
	return func(c *batchConfig) {
		c.limit = limit
	}
}

// WithInitialCapacity pre-allocates backing storage for the given number of
// instances, avoiding growth during the first frames.
//
// Parameters:
//   - n: initial capacity in instances
//
// Returns:
//   - BatchBuilderOption: a function that sets the initial capacity
func WithInitialCapacity(n int) BatchBuilderOption {
	return func(c *batchConfig) {
		c.initialCapacity = n
	}
}
