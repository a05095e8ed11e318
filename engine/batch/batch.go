// package batch implements the per-family instance accumulator that backs a
// draw submission. A batch is filled between frames, read once by the
// compositor during encoding, and reset at the frame boundary. Backing
// storage grows geometrically and is retained across resets so steady-state
// frames allocate nothing.
package batch

import (
	"fmt"
	"log"
	"sync"
)

// Batch accumulates instances of one primitive family in submission order.
// It is safe for concurrent Append from producer goroutines; Items and Reset
// belong to the frame owner and must not race with producers. That handoff is
// the frame barrier enforced by the compositor.
type Batch[T any] interface {
	// Append adds items to the batch in order. When a capacity limit is set
	// and would be exceeded, the items that still fit are kept, the rest are
	// dropped, and a *CapacityError is returned. The frame remains valid.
	//
	// Parameters:
	//   - items: instances to add
	//
	// Returns:
	//   - error: a *CapacityError if items were dropped, nil otherwise
	Append(items ...T) error

	// Items returns the accumulated instances in submission order. The
	// returned slice is backed by the batch's storage and is valid until the
	// next Reset.
	//
	// Returns:
	//   - []T: the accumulated instances
	Items() []T

	// Len returns the number of accumulated instances.
	//
	// Returns:
	//   - int: the instance count
	Len() int

	// Reset empties the batch for the next frame, retaining capacity.
	Reset()
}

type batchImpl[T any] struct {
	mu sync.Mutex

	name  string
	limit int
	items []T
}

var _ Batch[int] = &batchImpl[int]{}

// NewBatch creates an empty Batch.
//
// Parameters:
//   - options: functional options to configure the batch
//
// Returns:
//   - Batch[T]: the newly created batch
func NewBatch[T any](options ...BatchBuilderOption) Batch[T] {
	cfg := batchConfig{name: "batch"}
	for _, option := range options {
		option(&cfg)
	}
	b := &batchImpl[T]{
		name:  cfg.name,
		limit: cfg.limit,
	}
	if cfg.initialCapacity > 0 {
		b.items = make([]T, 0, cfg.initialCapacity)
	}
	return b
}

func (b *batchImpl[T]) Append(items ...T) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.limit > 0 && len(b.items)+len(items) > b.limit {
		fit := b.limit - len(b.items)
		if fit < 0 {
			fit = 0
		}
		dropped := len(items) - fit
		b.items = append(b.items, items[:fit]...)
		err := &CapacityError{Name: b.name, Limit: b.limit, Dropped: dropped}
		log.Printf("[Batch] %v", err)
		return err
	}

	b.items = append(b.items, items...)
	return nil
}

func (b *batchImpl[T]) Items() []T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.items
}

func (b *batchImpl[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

func (b *batchImpl[T]) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = b.items[:0]
}

// CapacityError reports instances dropped because a batch reached its
// configured hard cap. It is recoverable: the batch keeps everything that
// fit and the frame is still drawn.
type CapacityError struct {
	// Name identifies the batch for logging.
	Name string
	// Limit is the configured hard cap.
	Limit int
	// Dropped is the number of instances discarded.
	Dropped int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s: capacity limit %d reached, dropped %d instances", e.Name, e.Limit, e.Dropped)
}
