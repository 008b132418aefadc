package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/custodia-labs/metro-cli/internal/core/domain"
	"github.com/custodia-labs/metro-cli/internal/core/ports/driven"
	"github.com/custodia-labs/metro-cli/internal/core/ports/driving"
	"github.com/custodia-labs/metro-cli/internal/logger"
)

// Ensure LineService implements the interface.
var _ driving.LineService = (*LineService)(nil)

// LineService manages lines and their section chains.
//
// Mutations of one line are serialised; different lines can change
// concurrently. The line store versions every save and delete, which is
// what cached graphs are keyed on.
type LineService struct {
	lineStore    driven.LineStore
	stationStore driven.StationStore

	// namesMu serialises operations that claim a line name.
	namesMu sync.Mutex

	locksMu sync.Mutex
	locks   map[domain.LineID]*sync.Mutex
}

// NewLineService creates a new line service.
func NewLineService(lineStore driven.LineStore, stationStore driven.StationStore) *LineService {
	return &LineService{
		lineStore:    lineStore,
		stationStore: stationStore,
		locks:        make(map[domain.LineID]*sync.Mutex),
	}
}

// Create adds a line together with its first section.
func (s *LineService) Create(ctx context.Context, spec domain.LineSpec) (_ *domain.Line, err error) {
	if s.lineStore == nil {
		return nil, domain.ErrNotImplemented
	}
	ctx, span := startSpan(ctx, "line.create", attribute.String("line.name", spec.Name))
	defer func() { endSpan(span, err) }()

	line, err := domain.NewLine(domain.LineID(uuid.NewString()), strings.TrimSpace(spec.Name), spec.Color, spec.Surcharge)
	if err != nil {
		return nil, err
	}
	if err := s.ensureStations(ctx, spec.UpStationID, spec.DownStationID); err != nil {
		return nil, err
	}
	if err := line.AddSection(spec.UpStationID, spec.DownStationID, spec.Distance); err != nil {
		return nil, err
	}

	s.namesMu.Lock()
	defer s.namesMu.Unlock()
	if err := s.ensureNameFree(ctx, line.Name, ""); err != nil {
		return nil, err
	}

	now := time.Now()
	line.CreatedAt = now
	line.UpdatedAt = now
	if err := s.lineStore.Save(ctx, line); err != nil {
		return nil, fmt.Errorf("save line: %w", err)
	}
	logger.Debug("created line %s (%s)", line.Name, line.ID)
	return line, nil
}

// Get retrieves a line by ID.
func (s *LineService) Get(ctx context.Context, id domain.LineID) (*domain.Line, error) {
	if s.lineStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.lineStore.Get(ctx, id)
}

// Resolve finds a line by ID, falling back to its name.
func (s *LineService) Resolve(ctx context.Context, idOrName string) (*domain.Line, error) {
	if s.lineStore == nil {
		return nil, domain.ErrNotImplemented
	}
	line, err := s.lineStore.Get(ctx, domain.LineID(idOrName))
	if err == nil {
		return line, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return s.lineStore.GetByName(ctx, strings.TrimSpace(idOrName))
}

// List returns all lines.
func (s *LineService) List(ctx context.Context) ([]*domain.Line, error) {
	if s.lineStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.lineStore.List(ctx)
}

// Update changes a line's name and colour.
func (s *LineService) Update(ctx context.Context, id domain.LineID, name, color string) (*domain.Line, error) {
	if s.lineStore == nil {
		return nil, domain.ErrNotImplemented
	}
	name = strings.TrimSpace(name)

	s.namesMu.Lock()
	defer s.namesMu.Unlock()
	return s.mutate(ctx, "line.update", id, func(line *domain.Line) error {
		if err := s.ensureNameFree(ctx, name, id); err != nil {
			return err
		}
		return line.Update(name, color)
	})
}

// Delete removes a line.
func (s *LineService) Delete(ctx context.Context, id domain.LineID) (err error) {
	if s.lineStore == nil {
		return domain.ErrNotImplemented
	}
	ctx, span := startSpan(ctx, "line.delete", attribute.String("line.id", id.String()))
	defer func() { endSpan(span, err) }()

	unlock := s.lock(id)
	defer unlock()

	if _, err := s.lineStore.Get(ctx, id); err != nil {
		return err
	}
	if err := s.lineStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete line: %w", err)
	}
	s.forget(id)
	return nil
}

// AddSection inserts a section into a line.
func (s *LineService) AddSection(
	ctx context.Context,
	id domain.LineID,
	up, down domain.StationID,
	distance int,
) (*domain.Line, error) {
	if s.lineStore == nil {
		return nil, domain.ErrNotImplemented
	}
	if err := s.ensureStations(ctx, up, down); err != nil {
		return nil, err
	}
	return s.mutate(ctx, "line.add_section", id, func(line *domain.Line) error {
		return line.AddSection(up, down, distance)
	})
}

// DeleteStation removes a station from a line.
func (s *LineService) DeleteStation(ctx context.Context, id domain.LineID, station domain.StationID) (*domain.Line, error) {
	if s.lineStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.mutate(ctx, "line.delete_station", id, func(line *domain.Line) error {
		return line.DeleteStation(station)
	})
}

// Stations returns a line's stations in travel order.
func (s *LineService) Stations(ctx context.Context, id domain.LineID) ([]domain.Station, error) {
	if s.lineStore == nil || s.stationStore == nil {
		return nil, domain.ErrNotImplemented
	}
	line, err := s.lineStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	ids := line.Stations()
	stations := make([]domain.Station, 0, len(ids))
	for _, stationID := range ids {
		station, err := s.stationStore.Get(ctx, stationID)
		if err != nil {
			return nil, fmt.Errorf("line %s: %w", line.Name, err)
		}
		stations = append(stations, *station)
	}
	return stations, nil
}

// mutate loads a line under its lock, applies fn and saves the result.
// Nothing is saved when fn fails.
func (s *LineService) mutate(
	ctx context.Context,
	op string,
	id domain.LineID,
	fn func(*domain.Line) error,
) (_ *domain.Line, err error) {
	ctx, span := startSpan(ctx, op, attribute.String("line.id", id.String()))
	defer func() { endSpan(span, err) }()

	unlock := s.lock(id)
	defer unlock()

	line, err := s.lineStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(line); err != nil {
		return nil, err
	}

	line.UpdatedAt = time.Now()
	if err := s.lineStore.Save(ctx, line); err != nil {
		return nil, fmt.Errorf("save line: %w", err)
	}
	logger.Debug("%s on line %s: %d sections", op, line.Name, len(line.Sections()))
	return line, nil
}

// lock acquires the per-line mutex and returns its release function.
func (s *LineService) lock(id domain.LineID) func() {
	s.locksMu.Lock()
	mu, ok := s.locks[id]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[id] = mu
	}
	s.locksMu.Unlock()

	mu.Lock()
	return mu.Unlock
}

// forget drops the mutex of a deleted line. Line IDs are never reused, so a
// caller still waiting on the old mutex only finds the line gone.
func (s *LineService) forget(id domain.LineID) {
	s.locksMu.Lock()
	delete(s.locks, id)
	s.locksMu.Unlock()
}

// ensureStations checks that both endpoints of a section exist.
func (s *LineService) ensureStations(ctx context.Context, ids ...domain.StationID) error {
	if s.stationStore == nil {
		return nil
	}
	for _, id := range ids {
		if _, err := s.stationStore.Get(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// ensureNameFree fails if another line already uses the name.
func (s *LineService) ensureNameFree(ctx context.Context, name string, self domain.LineID) error {
	existing, err := s.lineStore.GetByName(ctx, name)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID == self:
		return nil
	default:
		return fmt.Errorf("%w: line %q", domain.ErrAlreadyExists, name)
	}
}
