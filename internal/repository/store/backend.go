package store

import (
	"context"
	"iter"
)

// RawRow is an encoded record as held by a Backend.
type RawRow struct {
	ID   uint64
	Data []byte
}

// Backend is the durable key-value medium behind every entity store. Records
// live in named partitions keyed by ID; counters live in their own namespace.
type Backend interface {
	// Put upserts data under id and returns the bytes it replaced, or nil.
	Put(ctx context.Context, partition string, id uint64, data []byte) ([]byte, error)
	Get(ctx context.Context, partition string, id uint64) ([]byte, bool, error)
	// Scan yields the partition's rows by ascending id. Each call starts a
	// fresh traversal.
	Scan(ctx context.Context, partition string) iter.Seq2[RawRow, error]
	Count(ctx context.Context, partition string) (int, error)
	// Increment advances the named counter by one and returns its previous
	// value. A counter that was never touched starts at zero.
	Increment(ctx context.Context, counter string) (uint64, error)
	Close(ctx context.Context) error
}
