package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/metro-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/metro-cli/internal/core/domain"
)

func stationNames(route *domain.Route) []string {
	names := make([]string, len(route.Stations))
	for i, s := range route.Stations {
		names[i] = s.Name
	}
	return names
}

func TestPathService_FindPath_TransferChargesSurchargeOnce(t *testing.T) {
	n := newNetwork()
	gangnam := n.station(t, "강남역")
	jamsil := n.station(t, "잠실역")
	yeouido := n.station(t, "여의도역")
	n.line(t, "2호선", 0, gangnam, jamsil, 10)
	n.line(t, "신분당선", 500, jamsil, yeouido, 5)

	route, err := n.paths.FindPath(context.Background(), gangnam, yeouido, domain.PathOptions{})

	require.NoError(t, err)
	assert.Equal(t, []string{"강남역", "잠실역", "여의도역"}, stationNames(route))
	assert.Equal(t, 15, route.Distance)
	assert.Equal(t, 500, route.Surcharge)
	assert.Equal(t, 1350+500, route.Fare)
}

func TestPathService_FindPath_AgeDiscount(t *testing.T) {
	n := newNetwork()
	gangnam := n.station(t, "강남역")
	jamsil := n.station(t, "잠실역")
	n.line(t, "2호선", 0, gangnam, jamsil, 10)

	tests := []struct {
		age  int
		fare int
	}{
		{0, 1250},
		{6, 450},
		{13, 720},
		{19, 1250},
	}

	for _, tt := range tests {
		route, err := n.paths.FindPath(context.Background(), gangnam, jamsil, domain.PathOptions{Age: tt.age})
		require.NoError(t, err)
		assert.Equal(t, tt.fare, route.Fare, "age %d", tt.age)
	}
}

func TestPathService_FindPath_Errors(t *testing.T) {
	n := newNetwork()
	ctx := context.Background()
	gangnam := n.station(t, "강남역")
	jamsil := n.station(t, "잠실역")
	sadang := n.station(t, "사당역")
	gyodae := n.station(t, "교대역")
	orphan := n.station(t, "미개통역")
	n.line(t, "2호선", 0, gangnam, jamsil, 10)
	n.line(t, "4호선", 0, sadang, gyodae, 4)

	tests := []struct {
		name   string
		source domain.StationID
		target domain.StationID
		opts   domain.PathOptions
		err    error
	}{
		{"same station", gangnam, gangnam, domain.PathOptions{}, domain.ErrSameStation},
		{"unknown station", gangnam, "missing", domain.PathOptions{}, domain.ErrStationNotFound},
		{"station on no line", gangnam, orphan, domain.PathOptions{}, domain.ErrStationNotFound},
		{"disconnected", gangnam, sadang, domain.PathOptions{}, domain.ErrNoPath},
		{"negative age", gangnam, jamsil, domain.PathOptions{Age: -1}, domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.paths.FindPath(ctx, tt.source, tt.target, tt.opts)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestPathService_FindPath_NilStores(t *testing.T) {
	service := NewPathService(nil, nil)

	_, err := service.FindPath(context.Background(), "a", "b", domain.PathOptions{})

	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}

func TestPathService_SetFarePolicy(t *testing.T) {
	n := newNetwork()
	gangnam := n.station(t, "강남역")
	jamsil := n.station(t, "잠실역")
	n.line(t, "2호선", 0, gangnam, jamsil, 10)

	policy := domain.DefaultFarePolicy()
	policy.BaseFare = 1400
	require.NoError(t, n.paths.SetFarePolicy(policy))

	route, err := n.paths.FindPath(context.Background(), gangnam, jamsil, domain.PathOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1400, route.Fare)

	policy.MidUnit = 0
	assert.ErrorIs(t, n.paths.SetFarePolicy(policy), domain.ErrInvalidInput)
	assert.Equal(t, 1400, n.paths.FarePolicy().BaseFare)
}

func TestPathService_GraphCache_InvalidatedByLineChanges(t *testing.T) {
	n := newNetwork()
	ctx := context.Background()
	gangnam := n.station(t, "강남역")
	gyodae := n.station(t, "교대역")
	jamsil := n.station(t, "잠실역")
	line := n.line(t, "2호선", 0, gangnam, jamsil, 10)
	n.paths.EnableGraphCache(time.Minute)

	route, err := n.paths.FindPath(ctx, gangnam, jamsil, domain.PathOptions{})
	require.NoError(t, err)
	assert.Len(t, route.Stations, 2)

	_, err = n.lines.AddSection(ctx, line.ID, gangnam, gyodae, 3)
	require.NoError(t, err)

	route, err = n.paths.FindPath(ctx, gangnam, jamsil, domain.PathOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"강남역", "교대역", "잠실역"}, stationNames(route))
}

// countingLineStore counts List calls, one per graph build.
type countingLineStore struct {
	*memory.LineStore
	lists atomic.Int32
}

func (s *countingLineStore) List(ctx context.Context) ([]*domain.Line, error) {
	s.lists.Add(1)
	return s.LineStore.List(ctx)
}

func TestPathService_GraphCache_ReusesGraphWhileVersionUnchanged(t *testing.T) {
	n := newNetwork()
	ctx := context.Background()
	gangnam := n.station(t, "강남역")
	jamsil := n.station(t, "잠실역")
	line := n.line(t, "2호선", 0, gangnam, jamsil, 10)

	lines := &countingLineStore{LineStore: n.lineStore}
	paths := NewPathService(n.stationStore, lines)
	paths.EnableGraphCache(time.Minute)

	for range 3 {
		_, err := paths.FindPath(ctx, gangnam, jamsil, domain.PathOptions{})
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), lines.lists.Load())

	// Writes straight to the store still move the version.
	require.NoError(t, n.lineStore.Delete(ctx, line.ID))
	_, err := paths.FindPath(ctx, gangnam, jamsil, domain.PathOptions{})
	assert.ErrorIs(t, err, domain.ErrStationNotFound)
	assert.Equal(t, int32(2), lines.lists.Load())
}

func TestPathService_GraphCache_Disabled(t *testing.T) {
	n := newNetwork()
	ctx := context.Background()
	gangnam := n.station(t, "강남역")
	jamsil := n.station(t, "잠실역")
	n.line(t, "2호선", 0, gangnam, jamsil, 10)

	lines := &countingLineStore{LineStore: n.lineStore}
	paths := NewPathService(n.stationStore, lines)
	paths.EnableGraphCache(time.Minute)
	paths.EnableGraphCache(0)

	for range 2 {
		_, err := paths.FindPath(ctx, gangnam, jamsil, domain.PathOptions{})
		require.NoError(t, err)
	}
	assert.Equal(t, int32(2), lines.lists.Load())
}

func TestPathService_FindPath_IsIdempotent(t *testing.T) {
	n := newNetwork()
	ctx := context.Background()
	a := n.station(t, "A")
	b := n.station(t, "B")
	c := n.station(t, "C")
	d := n.station(t, "D")
	n.line(t, "북선", 0, a, b, 5)
	_, err := n.lines.AddSection(ctx, mustResolveLine(t, n, "북선"), b, d, 5)
	require.NoError(t, err)
	n.line(t, "남선", 0, a, c, 5)
	_, err = n.lines.AddSection(ctx, mustResolveLine(t, n, "남선"), c, d, 5)
	require.NoError(t, err)

	first, err := n.paths.FindPath(ctx, a, d, domain.PathOptions{})
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := n.paths.FindPath(ctx, a, d, domain.PathOptions{})
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func mustResolveLine(t *testing.T, n *network, name string) domain.LineID {
	t.Helper()
	line, err := n.lines.Resolve(context.Background(), name)
	require.NoError(t, err)
	return line.ID
}
