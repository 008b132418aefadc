package driven

import (
	"context"

	"github.com/custodia-labs/metro-cli/internal/core/domain"
)

// FavoriteStore persists members' favorite routes.
type FavoriteStore interface {
	// Save stores a favorite.
	Save(ctx context.Context, favorite domain.Favorite) error

	// Get retrieves a favorite by ID.
	Get(ctx context.Context, id string) (*domain.Favorite, error)

	// Delete removes a favorite.
	Delete(ctx context.Context, id string) error

	// DeleteByStation removes every favorite that starts or ends at the station.
	DeleteByStation(ctx context.Context, stationID domain.StationID) error

	// ListByMember returns a member's favorites, oldest first.
	ListByMember(ctx context.Context, memberID string) ([]domain.Favorite, error)
}
