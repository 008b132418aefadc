package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/metro-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/metro-cli/internal/core/domain"
)

// network bundles services over shared in-memory stores.
type network struct {
	stationStore *memory.StationStore
	lineStore    *memory.LineStore
	favorites    *memory.FavoriteStore
	stations     *StationService
	lines        *LineService
	paths        *PathService
}

func newNetwork() *network {
	stationStore := memory.NewStationStore()
	lineStore := memory.NewLineStore()
	favorites := memory.NewFavoriteStore()
	return &network{
		stationStore: stationStore,
		lineStore:    lineStore,
		favorites:    favorites,
		stations:     NewStationService(stationStore, lineStore, favorites),
		lines:        NewLineService(lineStore, stationStore),
		paths:        NewPathService(stationStore, lineStore),
	}
}

// version reads the line store's network version.
func (n *network) version(t *testing.T) uint64 {
	t.Helper()
	version, err := n.lineStore.Version(context.Background())
	require.NoError(t, err)
	return version
}

func (n *network) station(t *testing.T, name string) domain.StationID {
	t.Helper()
	station, err := n.stations.Create(context.Background(), name)
	require.NoError(t, err)
	return station.ID
}

func (n *network) line(t *testing.T, name string, surcharge int, up, down domain.StationID, distance int) *domain.Line {
	t.Helper()
	line, err := n.lines.Create(context.Background(), domain.LineSpec{
		Name:          name,
		Color:         "bg-blue-600",
		Surcharge:     surcharge,
		UpStationID:   up,
		DownStationID: down,
		Distance:      distance,
	})
	require.NoError(t, err)
	return line
}
