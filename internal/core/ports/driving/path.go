package driving

import (
	"context"

	"github.com/custodia-labs/metro-cli/internal/core/domain"
)

// PathService answers shortest-route and fare queries.
type PathService interface {
	// FindPath returns the shortest route between two stations with its fare.
	FindPath(ctx context.Context, source, target domain.StationID, opts domain.PathOptions) (*domain.Route, error)
}
