package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/metro-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/metro-cli/internal/core/domain"
)

func TestFavoriteService_AddListRemove(t *testing.T) {
	n := newNetwork()
	ctx := context.Background()
	service := NewFavoriteService(memory.NewFavoriteStore(), n.stationStore)
	gangnam := n.station(t, "강남역")
	jamsil := n.station(t, "잠실역")

	favorite, err := service.Add(ctx, "alice", gangnam, jamsil)
	require.NoError(t, err)
	assert.NotEmpty(t, favorite.ID)
	assert.Equal(t, "alice", favorite.MemberID)

	favorites, err := service.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, jamsil, favorites[0].TargetID)

	require.NoError(t, service.Remove(ctx, "alice", favorite.ID))
	favorites, err = service.List(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestFavoriteService_Add_Invalid(t *testing.T) {
	n := newNetwork()
	ctx := context.Background()
	service := NewFavoriteService(memory.NewFavoriteStore(), n.stationStore)
	gangnam := n.station(t, "강남역")

	_, err := service.Add(ctx, "", gangnam, "x")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = service.Add(ctx, "alice", gangnam, gangnam)
	assert.ErrorIs(t, err, domain.ErrSameStation)

	_, err = service.Add(ctx, "alice", gangnam, "missing")
	assert.ErrorIs(t, err, domain.ErrStationNotFound)
}

func TestFavoriteService_Remove_OnlyOwner(t *testing.T) {
	n := newNetwork()
	ctx := context.Background()
	service := NewFavoriteService(memory.NewFavoriteStore(), n.stationStore)
	favorite, err := service.Add(ctx, "alice", n.station(t, "강남역"), n.station(t, "잠실역"))
	require.NoError(t, err)

	assert.ErrorIs(t, service.Remove(ctx, "bob", favorite.ID), domain.ErrForbidden)
	assert.ErrorIs(t, service.Remove(ctx, "", favorite.ID), domain.ErrForbidden)
	assert.ErrorIs(t, service.Remove(ctx, "alice", "missing"), domain.ErrNotFound)

	favorites, err := service.List(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, favorites, 1)
}

func TestFavoriteService_NilStore(t *testing.T) {
	service := NewFavoriteService(nil, nil)
	ctx := context.Background()

	_, err := service.Add(ctx, "alice", "a", "b")
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	_, err = service.List(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	assert.ErrorIs(t, service.Remove(ctx, "alice", "x"), domain.ErrNotImplemented)
}
