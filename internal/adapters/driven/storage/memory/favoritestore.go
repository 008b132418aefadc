package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/custodia-labs/metro-cli/internal/core/domain"
	"github.com/custodia-labs/metro-cli/internal/core/ports/driven"
)

// Ensure FavoriteStore implements the interface.
var _ driven.FavoriteStore = (*FavoriteStore)(nil)

// FavoriteStore is an in-memory implementation of driven.FavoriteStore.
type FavoriteStore struct {
	mu        sync.RWMutex
	favorites map[string]domain.Favorite
}

// NewFavoriteStore creates a new in-memory favorite store.
func NewFavoriteStore() *FavoriteStore {
	return &FavoriteStore{
		favorites: make(map[string]domain.Favorite),
	}
}

// Save stores a favorite.
func (s *FavoriteStore) Save(_ context.Context, favorite domain.Favorite) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.favorites[favorite.ID] = favorite
	return nil
}

// Get retrieves a favorite by ID.
func (s *FavoriteStore) Get(_ context.Context, id string) (*domain.Favorite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	favorite, ok := s.favorites[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &favorite, nil
}

// Delete removes a favorite.
func (s *FavoriteStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.favorites, id)
	return nil
}

// DeleteByStation removes every favorite that starts or ends at the station.
func (s *FavoriteStore) DeleteByStation(_ context.Context, stationID domain.StationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, favorite := range s.favorites {
		if favorite.SourceID == stationID || favorite.TargetID == stationID {
			delete(s.favorites, id)
		}
	}
	return nil
}

// ListByMember returns a member's favorites, oldest first.
func (s *FavoriteStore) ListByMember(_ context.Context, memberID string) ([]domain.Favorite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Favorite
	for _, favorite := range s.favorites {
		if favorite.MemberID == memberID {
			result = append(result, favorite)
		}
	}
	slices.SortFunc(result, func(a, b domain.Favorite) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return result, nil
}
