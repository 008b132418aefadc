package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/metro-cli/internal/core/domain"
	"github.com/custodia-labs/metro-cli/internal/core/ports/driven"
	"github.com/custodia-labs/metro-cli/internal/core/ports/driving"
)

// Ensure FavoriteService implements the interface.
var _ driving.FavoriteService = (*FavoriteService)(nil)

// FavoriteService manages members' saved routes.
type FavoriteService struct {
	favoriteStore driven.FavoriteStore
	stationStore  driven.StationStore
}

// NewFavoriteService creates a new favorite service.
func NewFavoriteService(favoriteStore driven.FavoriteStore, stationStore driven.StationStore) *FavoriteService {
	return &FavoriteService{
		favoriteStore: favoriteStore,
		stationStore:  stationStore,
	}
}

// Add saves a source/target pair for a member.
func (s *FavoriteService) Add(
	ctx context.Context,
	memberID string,
	source, target domain.StationID,
) (*domain.Favorite, error) {
	if s.favoriteStore == nil {
		return nil, domain.ErrNotImplemented
	}
	memberID = strings.TrimSpace(memberID)
	if memberID == "" {
		return nil, fmt.Errorf("%w: member is required", domain.ErrInvalidInput)
	}
	if source == target {
		return nil, domain.ErrSameStation
	}
	if s.stationStore != nil {
		for _, id := range []domain.StationID{source, target} {
			if _, err := s.stationStore.Get(ctx, id); err != nil {
				return nil, err
			}
		}
	}

	favorite := domain.Favorite{
		ID:        uuid.NewString(),
		MemberID:  memberID,
		SourceID:  source,
		TargetID:  target,
		CreatedAt: time.Now(),
	}
	if err := s.favoriteStore.Save(ctx, favorite); err != nil {
		return nil, fmt.Errorf("save favorite: %w", err)
	}
	return &favorite, nil
}

// List returns a member's favorites.
func (s *FavoriteService) List(ctx context.Context, memberID string) ([]domain.Favorite, error) {
	if s.favoriteStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.favoriteStore.ListByMember(ctx, strings.TrimSpace(memberID))
}

// Remove deletes a favorite owned by the member.
func (s *FavoriteService) Remove(ctx context.Context, memberID, id string) error {
	if s.favoriteStore == nil {
		return domain.ErrNotImplemented
	}
	favorite, err := s.favoriteStore.Get(ctx, id)
	if err != nil {
		return err
	}
	if !favorite.IsOwnedBy(strings.TrimSpace(memberID)) {
		return fmt.Errorf("%w: favorite %s belongs to another member", domain.ErrForbidden, id)
	}
	return s.favoriteStore.Delete(ctx, id)
}
