// Package operations implements the write side of the ledger: record
// creation, status transitions and point lookups. Every call validates its
// payload before touching the registry and then runs to completion inside a
// single registry transaction.
package operations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/abattoir/internal/domain/models"
	"github.com/mamadbah2/abattoir/internal/metrics"
	"github.com/mamadbah2/abattoir/internal/repository/store"
)

// Service executes operations against the registry.
type Service struct {
	reg     *store.Registry
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewService constructs an operations service. metrics may be nil.
func NewService(reg *store.Registry, m *metrics.Metrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{reg: reg, metrics: m, logger: logger, now: time.Now}
}

// timestamp is the creation time stamped on new records, in UTC at the
// precision the record codec keeps.
func (s *Service) timestamp() time.Time {
	return normalize(s.now())
}

func normalize(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

func (s *Service) fail(operation string, err error) error {
	s.metrics.RecordFailure(operation, err)
	if metrics.Classify(err) == metrics.ClassInternal {
		s.logger.Error("operation failed", zap.String("operation", operation), zap.Error(err))
	} else {
		s.logger.Debug("operation rejected", zap.String("operation", operation), zap.Error(err))
	}
	return err
}

// fitsRecord rejects records the codec cannot store as invalid payloads.
func fitsRecord(record any) error {
	if _, err := store.Encode(record); err != nil {
		if errors.Is(err, store.ErrRecordTooLarge) {
			return fmt.Errorf("%w: %w", models.ErrInvalidPayload, err)
		}
		return err
	}
	return nil
}

// insertNew mints an id and writes the record build produces for it. The
// size check runs on a provisional record so an oversized payload never
// consumes an id.
func insertNew[T any](ctx context.Context, s *Service, st *store.Store[T], build func(id uint64) T) (T, error) {
	var zero T

	if err := fitsRecord(build(0)); err != nil {
		return zero, err
	}

	id, err := s.reg.IDs.Next(ctx)
	if err != nil {
		return zero, err
	}

	record := build(id)
	if _, _, err := st.Insert(ctx, id, record); err != nil {
		return zero, err
	}
	s.metrics.RecordWrite(st.Partition())
	return record, nil
}

// replace loads the record stored under id, applies mutate and writes the
// whole record back.
func replace[T any](ctx context.Context, s *Service, st *store.Store[T], kind string, id uint64, mutate func(*T)) (T, error) {
	var zero T

	record, ok, err := st.Get(ctx, id)
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, models.NotFound("%s %d", kind, id)
	}

	mutate(&record)
	if err := fitsRecord(record); err != nil {
		return zero, err
	}
	if _, _, err := st.Insert(ctx, id, record); err != nil {
		return zero, err
	}
	s.metrics.RecordWrite(st.Partition())
	return record, nil
}

func lookup[T any](ctx context.Context, s *Service, st *store.Store[T], kind string, id uint64) (T, error) {
	var record T
	err := s.reg.View(func() error {
		var (
			ok  bool
			err error
		)
		record, ok, err = st.Get(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return models.NotFound("%s %d", kind, id)
		}
		return nil
	})
	if err != nil {
		return record, s.fail("get_"+strings.ReplaceAll(kind, " ", "_"), err)
	}
	return record, nil
}

func (s *Service) requireSlaughterhouse(ctx context.Context, id uint64) error {
	ok, err := s.reg.Slaughterhouses.Contains(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return models.NotFound("slaughterhouse %d", id)
	}
	return nil
}

func (s *Service) requireAnimal(ctx context.Context, id uint64) error {
	ok, err := s.reg.Animals.Contains(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return models.NotFound("animal %d", id)
	}
	return nil
}
