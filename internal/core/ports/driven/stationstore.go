package driven

import (
	"context"

	"github.com/custodia-labs/metro-cli/internal/core/domain"
)

// StationStore persists stations.
type StationStore interface {
	// Save stores or updates a station.
	Save(ctx context.Context, station domain.Station) error

	// Get retrieves a station by ID.
	// Returns domain.ErrStationNotFound if it does not exist.
	Get(ctx context.Context, id domain.StationID) (*domain.Station, error)

	// GetByName retrieves a station by its unique name.
	GetByName(ctx context.Context, name string) (*domain.Station, error)

	// Delete removes a station.
	Delete(ctx context.Context, id domain.StationID) error

	// List returns all stations ordered by name.
	List(ctx context.Context) ([]domain.Station, error)
}
