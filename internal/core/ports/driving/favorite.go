package driving

import (
	"context"

	"github.com/custodia-labs/metro-cli/internal/core/domain"
)

// FavoriteService manages members' saved routes.
type FavoriteService interface {
	// Add saves a source/target pair for a member.
	Add(ctx context.Context, memberID string, source, target domain.StationID) (*domain.Favorite, error)

	// List returns a member's favorites.
	List(ctx context.Context, memberID string) ([]domain.Favorite, error)

	// Remove deletes a favorite. Only its owner may remove it.
	Remove(ctx context.Context, memberID, id string) error
}
