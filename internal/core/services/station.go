package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/metro-cli/internal/core/domain"
	"github.com/custodia-labs/metro-cli/internal/core/ports/driven"
	"github.com/custodia-labs/metro-cli/internal/core/ports/driving"
)

// Ensure StationService implements the interface.
var _ driving.StationService = (*StationService)(nil)

// StationService manages stations.
type StationService struct {
	stationStore  driven.StationStore
	lineStore     driven.LineStore
	favoriteStore driven.FavoriteStore
}

// NewStationService creates a new station service.
// The line store is used to refuse deleting stations that lines still serve.
// Favorites touching a deleted station are removed from the favorite store.
func NewStationService(
	stationStore driven.StationStore,
	lineStore driven.LineStore,
	favoriteStore driven.FavoriteStore,
) *StationService {
	return &StationService{
		stationStore:  stationStore,
		lineStore:     lineStore,
		favoriteStore: favoriteStore,
	}
}

// Create adds a station with a unique name.
func (s *StationService) Create(ctx context.Context, name string) (*domain.Station, error) {
	if s.stationStore == nil {
		return nil, domain.ErrNotImplemented
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: station name is required", domain.ErrInvalidInput)
	}
	if err := s.ensureNameFree(ctx, name, ""); err != nil {
		return nil, err
	}

	now := time.Now()
	station := domain.Station{
		ID:        domain.StationID(uuid.NewString()),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.stationStore.Save(ctx, station); err != nil {
		return nil, fmt.Errorf("save station: %w", err)
	}
	return &station, nil
}

// Get retrieves a station by ID.
func (s *StationService) Get(ctx context.Context, id domain.StationID) (*domain.Station, error) {
	if s.stationStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.stationStore.Get(ctx, id)
}

// Resolve finds a station by ID, falling back to its name.
func (s *StationService) Resolve(ctx context.Context, idOrName string) (*domain.Station, error) {
	if s.stationStore == nil {
		return nil, domain.ErrNotImplemented
	}
	station, err := s.stationStore.Get(ctx, domain.StationID(idOrName))
	if err == nil {
		return station, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return s.stationStore.GetByName(ctx, strings.TrimSpace(idOrName))
}

// List returns all stations.
func (s *StationService) List(ctx context.Context) ([]domain.Station, error) {
	if s.stationStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.stationStore.List(ctx)
}

// Rename changes a station's name.
func (s *StationService) Rename(ctx context.Context, id domain.StationID, name string) (*domain.Station, error) {
	if s.stationStore == nil {
		return nil, domain.ErrNotImplemented
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: station name is required", domain.ErrInvalidInput)
	}

	station, err := s.stationStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, name, id); err != nil {
		return nil, err
	}

	station.Name = name
	station.UpdatedAt = time.Now()
	if err := s.stationStore.Save(ctx, *station); err != nil {
		return nil, fmt.Errorf("save station: %w", err)
	}
	return station, nil
}

// Delete removes a station that no line serves, along with its favorites.
func (s *StationService) Delete(ctx context.Context, id domain.StationID) error {
	if s.stationStore == nil {
		return domain.ErrNotImplemented
	}
	if _, err := s.stationStore.Get(ctx, id); err != nil {
		return err
	}

	if s.lineStore != nil {
		lines, err := s.lineStore.List(ctx)
		if err != nil {
			return fmt.Errorf("list lines: %w", err)
		}
		for _, line := range lines {
			if line.HasStation(id) {
				return fmt.Errorf("%w: served by line %s", domain.ErrStationInUse, line.Name)
			}
		}
	}
	if err := s.stationStore.Delete(ctx, id); err != nil {
		return err
	}
	if s.favoriteStore != nil {
		if err := s.favoriteStore.DeleteByStation(ctx, id); err != nil {
			return fmt.Errorf("delete favorites: %w", err)
		}
	}
	return nil
}

// ensureNameFree fails if another station already uses the name.
func (s *StationService) ensureNameFree(ctx context.Context, name string, self domain.StationID) error {
	existing, err := s.stationStore.GetByName(ctx, name)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID == self:
		return nil
	default:
		return fmt.Errorf("%w: station %q", domain.ErrAlreadyExists, name)
	}
}
