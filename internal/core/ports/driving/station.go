package driving

import (
	"context"

	"github.com/custodia-labs/metro-cli/internal/core/domain"
)

// StationService manages stations.
type StationService interface {
	// Create adds a station with a unique name.
	Create(ctx context.Context, name string) (*domain.Station, error)

	// Get retrieves a station by ID.
	Get(ctx context.Context, id domain.StationID) (*domain.Station, error)

	// Resolve finds a station by ID, falling back to its name.
	Resolve(ctx context.Context, idOrName string) (*domain.Station, error)

	// List returns all stations.
	List(ctx context.Context) ([]domain.Station, error)

	// Rename changes a station's name.
	Rename(ctx context.Context, id domain.StationID, name string) (*domain.Station, error)

	// Delete removes a station. Fails with domain.ErrStationInUse while
	// any line still serves it.
	Delete(ctx context.Context, id domain.StationID) error
}
