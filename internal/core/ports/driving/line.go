package driving

import (
	"context"

	"github.com/custodia-labs/metro-cli/internal/core/domain"
)

// LineService manages lines and their topology.
type LineService interface {
	// Create adds a line together with its first section.
	Create(ctx context.Context, spec domain.LineSpec) (*domain.Line, error)

	// Get retrieves a line by ID.
	Get(ctx context.Context, id domain.LineID) (*domain.Line, error)

	// Resolve finds a line by ID, falling back to its name.
	Resolve(ctx context.Context, idOrName string) (*domain.Line, error)

	// List returns all lines.
	List(ctx context.Context) ([]*domain.Line, error)

	// Update changes a line's name and colour.
	Update(ctx context.Context, id domain.LineID, name, color string) (*domain.Line, error)

	// Delete removes a line.
	Delete(ctx context.Context, id domain.LineID) error

	// AddSection inserts a section into a line.
	AddSection(ctx context.Context, id domain.LineID, up, down domain.StationID, distance int) (*domain.Line, error)

	// DeleteStation removes a station from a line.
	DeleteStation(ctx context.Context, id domain.LineID, station domain.StationID) (*domain.Line, error)

	// Stations returns a line's stations in travel order.
	Stations(ctx context.Context, id domain.LineID) ([]domain.Station, error)
}
