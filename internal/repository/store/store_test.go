package store

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/abattoir/internal/domain/models"
)

func collect[T any](t *testing.T, s *Store[T]) []Row[T] {
	t.Helper()
	var rows []Row[T]
	for row, err := range s.Scan(context.Background()) {
		require.NoError(t, err)
		rows = append(rows, row)
	}
	return rows
}

func TestStoreInsertGetContains(t *testing.T) {
	ctx := context.Background()
	animals := NewStore[models.Animal](NewMemoryBackend(), PartitionAnimals)

	prev, replaced, err := animals.Insert(ctx, 4, models.Animal{ID: 4, TagNumber: "A-4", Status: models.AnimalReceived})
	require.NoError(t, err)
	assert.False(t, replaced)
	assert.Zero(t, prev)

	got, ok, err := animals.Get(ctx, 4)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "A-4", got.TagNumber)

	ok, err = animals.Contains(ctx, 4)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = animals.Contains(ctx, 5)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = animals.Get(ctx, 5)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreInsertReplacesWholeRecord(t *testing.T) {
	ctx := context.Background()
	animals := NewStore[models.Animal](NewMemoryBackend(), PartitionAnimals)

	original := models.Animal{ID: 1, TagNumber: "A-1", Species: "goat", Weight: 30, Status: models.AnimalReceived}
	_, _, err := animals.Insert(ctx, 1, original)
	require.NoError(t, err)

	prev, replaced, err := animals.Insert(ctx, 1, models.Animal{ID: 1, Status: models.AnimalProcessed})
	require.NoError(t, err)
	assert.True(t, replaced)
	assert.Equal(t, original, prev)

	got, _, err := animals.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.Animal{ID: 1, Status: models.AnimalProcessed}, got)

	n, err := animals.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStoreScanIsOrderedAndRestartable(t *testing.T) {
	ctx := context.Background()
	products := NewStore[models.MeatProduct](NewMemoryBackend(), PartitionMeatProducts)

	for _, id := range []uint64{9, 2, 14, 5} {
		_, _, err := products.Insert(ctx, id, models.MeatProduct{ID: id})
		require.NoError(t, err)
	}

	first := collect(t, products)
	second := collect(t, products)

	var ids []uint64
	for _, row := range first {
		ids = append(ids, row.ID)
		assert.Equal(t, row.ID, row.Record.ID)
	}
	assert.Equal(t, []uint64{2, 5, 9, 14}, ids)
	assert.Equal(t, first, second)
}

func TestStoreScanStopsEarly(t *testing.T) {
	ctx := context.Background()
	products := NewStore[models.MeatProduct](NewMemoryBackend(), PartitionMeatProducts)
	for id := uint64(0); id < 5; id++ {
		_, _, err := products.Insert(ctx, id, models.MeatProduct{ID: id})
		require.NoError(t, err)
	}

	seen := 0
	for _, err := range products.Scan(ctx) {
		require.NoError(t, err)
		seen++
		if seen == 2 {
			break
		}
	}
	assert.Equal(t, 2, seen)
}

func TestStoreOversizedInsertLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	houses := NewStore[models.Slaughterhouse](NewMemoryBackend(), PartitionSlaughterhouses)

	_, _, err := houses.Insert(ctx, 0, models.Slaughterhouse{Name: "Matoto"})
	require.NoError(t, err)

	_, _, err = houses.Insert(ctx, 0, models.Slaughterhouse{Name: strings.Repeat("m", 600)})
	require.ErrorIs(t, err, ErrRecordTooLarge)

	got, _, err := houses.Get(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "Matoto", got.Name)
}

func TestStoresDoNotShareKeys(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry(NewMemoryBackend())

	_, _, err := reg.Animals.Insert(ctx, 3, models.Animal{ID: 3})
	require.NoError(t, err)

	ok, err := reg.MeatProducts.Contains(ctx, 3)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, collect(t, reg.MeatProducts))
}

func TestAllocatorStartsAtZeroAndIncreases(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry(NewMemoryBackend())

	var last uint64
	for i := 0; i < 50; i++ {
		id, err := reg.IDs.Next(ctx)
		require.NoError(t, err)
		if i == 0 {
			assert.Zero(t, id)
		} else {
			assert.Greater(t, id, last)
		}
		last = id
	}
}

func TestRegistryUpdatePropagatesError(t *testing.T) {
	reg := NewRegistry(NewMemoryBackend())
	err := reg.Update(func() error { return models.ErrNotFound })
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.NoError(t, reg.View(func() error { return nil }))
}
