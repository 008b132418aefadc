package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/custodia-labs/metro-cli/internal/core/domain"
	"github.com/custodia-labs/metro-cli/internal/core/ports/driven"
)

// Ensure StationStore implements the interface.
var _ driven.StationStore = (*StationStore)(nil)

// StationStore is an in-memory implementation of driven.StationStore.
type StationStore struct {
	mu       sync.RWMutex
	stations map[domain.StationID]domain.Station
}

// NewStationStore creates a new in-memory station store.
func NewStationStore() *StationStore {
	return &StationStore{
		stations: make(map[domain.StationID]domain.Station),
	}
}

// Save stores or updates a station.
func (s *StationStore) Save(_ context.Context, station domain.Station) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, existing := range s.stations {
		if id != station.ID && existing.Name == station.Name {
			return domain.ErrAlreadyExists
		}
	}
	s.stations[station.ID] = station
	return nil
}

// Get retrieves a station by ID.
func (s *StationStore) Get(_ context.Context, id domain.StationID) (*domain.Station, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	station, ok := s.stations[id]
	if !ok {
		return nil, domain.ErrStationNotFound
	}
	return &station, nil
}

// GetByName retrieves a station by name.
func (s *StationStore) GetByName(_ context.Context, name string) (*domain.Station, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, station := range s.stations {
		if station.Name == name {
			return &station, nil
		}
	}
	return nil, domain.ErrStationNotFound
}

// Delete removes a station.
func (s *StationStore) Delete(_ context.Context, id domain.StationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.stations, id)
	return nil
}

// List returns all stations ordered by name.
func (s *StationStore) List(_ context.Context) ([]domain.Station, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Station, 0, len(s.stations))
	for _, station := range s.stations {
		result = append(result, station)
	}
	slices.SortFunc(result, func(a, b domain.Station) int {
		return strings.Compare(a.Name, b.Name)
	})
	return result, nil
}
