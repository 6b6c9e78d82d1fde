package store

import (
	"context"
	"iter"
	"maps"
	"slices"
	"sync"
)

// MemoryBackend keeps everything in process memory. It is used by tests and
// by STORE_DRIVER=memory; its contents do not survive a restart.
type MemoryBackend struct {
	mu         sync.Mutex
	partitions map[string]map[uint64][]byte
	counters   map[string]uint64
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		partitions: make(map[string]map[uint64][]byte),
		counters:   make(map[string]uint64),
	}
}

// Put implements Backend.
func (b *MemoryBackend) Put(_ context.Context, partition string, id uint64, data []byte) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	rows, ok := b.partitions[partition]
	if !ok {
		rows = make(map[uint64][]byte)
		b.partitions[partition] = rows
	}
	prev := rows[id]
	rows[id] = slices.Clone(data)
	return prev, nil
}

// Get implements Backend.
func (b *MemoryBackend) Get(_ context.Context, partition string, id uint64) ([]byte, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	data, ok := b.partitions[partition][id]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(data), true, nil
}

// Scan implements Backend. Rows are captured when iteration starts.
func (b *MemoryBackend) Scan(_ context.Context, partition string) iter.Seq2[RawRow, error] {
	return func(yield func(RawRow, error) bool) {
		b.mu.Lock()
		rows := b.partitions[partition]
		snapshot := make([]RawRow, 0, len(rows))
		for _, id := range slices.Sorted(maps.Keys(rows)) {
			snapshot = append(snapshot, RawRow{ID: id, Data: slices.Clone(rows[id])})
		}
		b.mu.Unlock()

		for _, row := range snapshot {
			if !yield(row, nil) {
				return
			}
		}
	}
}

// Count implements Backend.
func (b *MemoryBackend) Count(_ context.Context, partition string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.partitions[partition]), nil
}

// Increment implements Backend.
func (b *MemoryBackend) Increment(_ context.Context, counter string) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	current := b.counters[counter]
	b.counters[counter] = current + 1
	return current, nil
}

// Close implements Backend.
func (b *MemoryBackend) Close(context.Context) error { return nil }
