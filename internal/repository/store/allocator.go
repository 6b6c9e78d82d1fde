package store

import (
	"context"
	"fmt"
)

// EntityCounter names the single counter every entity ID is drawn from.
const EntityCounter = "entity_id"

// Allocator issues strictly increasing IDs from a persisted counter. The first
// ID is 0. One allocator serves all entity kinds, so IDs are unique across
// stores but not contiguous within one.
type Allocator struct {
	backend Backend
	counter string
}

// NewAllocator binds an allocator to a backend counter.
func NewAllocator(backend Backend, counter string) *Allocator {
	return &Allocator{backend: backend, counter: counter}
}

// Next returns the current counter value and advances it.
func (a *Allocator) Next(ctx context.Context) (uint64, error) {
	id, err := a.backend.Increment(ctx, a.counter)
	if err != nil {
		return 0, fmt.Errorf("allocate id: %w", err)
	}
	return id, nil
}
