// Package store provides the typed entity stores, the shared ID allocator and
// the registry that owns them. Durability comes from the Backend the registry
// is built on.
package store

import (
	"context"
	"fmt"
	"iter"
)

// Row is one decoded record together with its key.
type Row[T any] struct {
	ID     uint64
	Record T
}

// Store is an ID-keyed ordered collection of one record type.
type Store[T any] struct {
	backend   Backend
	partition string
}

// NewStore binds a typed store to a backend partition.
func NewStore[T any](backend Backend, partition string) *Store[T] {
	return &Store[T]{backend: backend, partition: partition}
}

// Partition returns the backend partition name of the store.
func (s *Store[T]) Partition() string { return s.partition }

// Insert fully replaces whatever is stored under id. The previous record is
// returned when one existed. Encoding happens first, so an oversized record
// leaves the store untouched.
func (s *Store[T]) Insert(ctx context.Context, id uint64, record T) (T, bool, error) {
	var prev T

	data, err := Encode(record)
	if err != nil {
		return prev, false, fmt.Errorf("%s %d: %w", s.partition, id, err)
	}

	old, err := s.backend.Put(ctx, s.partition, id, data)
	if err != nil {
		return prev, false, fmt.Errorf("put %s %d: %w", s.partition, id, err)
	}
	if old == nil {
		return prev, false, nil
	}

	prev, err = Decode[T](old)
	if err != nil {
		return prev, false, fmt.Errorf("%s %d previous value: %w", s.partition, id, err)
	}
	return prev, true, nil
}

// Get looks up a record by id.
func (s *Store[T]) Get(ctx context.Context, id uint64) (T, bool, error) {
	var record T

	data, ok, err := s.backend.Get(ctx, s.partition, id)
	if err != nil {
		return record, false, fmt.Errorf("get %s %d: %w", s.partition, id, err)
	}
	if !ok {
		return record, false, nil
	}

	record, err = Decode[T](data)
	if err != nil {
		return record, false, fmt.Errorf("%s %d: %w", s.partition, id, err)
	}
	return record, true, nil
}

// Contains reports whether id is present.
func (s *Store[T]) Contains(ctx context.Context, id uint64) (bool, error) {
	_, ok, err := s.backend.Get(ctx, s.partition, id)
	if err != nil {
		return false, fmt.Errorf("get %s %d: %w", s.partition, id, err)
	}
	return ok, nil
}

// Len returns the number of stored records.
func (s *Store[T]) Len(ctx context.Context) (int, error) {
	n, err := s.backend.Count(ctx, s.partition)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", s.partition, err)
	}
	return n, nil
}

// Scan yields every record by ascending id. The sequence is lazy and may be
// ranged over any number of times. A non-nil error ends the traversal.
func (s *Store[T]) Scan(ctx context.Context) iter.Seq2[Row[T], error] {
	return func(yield func(Row[T], error) bool) {
		for raw, err := range s.backend.Scan(ctx, s.partition) {
			if err != nil {
				yield(Row[T]{}, fmt.Errorf("scan %s: %w", s.partition, err))
				return
			}
			record, err := Decode[T](raw.Data)
			if err != nil {
				yield(Row[T]{}, fmt.Errorf("%s %d: %w", s.partition, raw.ID, err))
				return
			}
			if !yield(Row[T]{ID: raw.ID, Record: record}, nil) {
				return
			}
		}
	}
}
