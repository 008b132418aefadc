package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/metro-cli/internal/core/domain"
)

func TestStationStore_SaveAndGet(t *testing.T) {
	store := NewStationStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.Station{ID: "st-1", Name: "강남역"}))

	got, err := store.Get(ctx, "st-1")
	require.NoError(t, err)
	assert.Equal(t, "강남역", got.Name)

	byName, err := store.GetByName(ctx, "강남역")
	require.NoError(t, err)
	assert.Equal(t, domain.StationID("st-1"), byName.ID)
}

func TestStationStore_Get_NotFound(t *testing.T) {
	store := NewStationStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrStationNotFound)

	_, err = store.GetByName(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStationStore_Save_DuplicateName(t *testing.T) {
	store := NewStationStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, domain.Station{ID: "st-1", Name: "강남역"}))

	err := store.Save(ctx, domain.Station{ID: "st-2", Name: "강남역"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	// Re-saving the same station under its own name is an update.
	assert.NoError(t, store.Save(ctx, domain.Station{ID: "st-1", Name: "강남역"}))
}

func TestStationStore_DeleteAndList(t *testing.T) {
	store := NewStationStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, domain.Station{ID: "st-2", Name: "잠실역"}))
	require.NoError(t, store.Save(ctx, domain.Station{ID: "st-1", Name: "강남역"}))
	require.NoError(t, store.Save(ctx, domain.Station{ID: "st-3", Name: "교대역"}))

	require.NoError(t, store.Delete(ctx, "st-3"))
	require.NoError(t, store.Delete(ctx, "missing"))

	stations, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, stations, 2)
	assert.Equal(t, "강남역", stations[0].Name)
	assert.Equal(t, "잠실역", stations[1].Name)
}
