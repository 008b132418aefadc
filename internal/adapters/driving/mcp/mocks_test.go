package mcp

import (
	"context"

	"github.com/custodia-labs/metro-cli/internal/core/domain"
)

// mockPathService is a mock implementation of driving.PathService.
type mockPathService struct {
	route *domain.Route
	err   error

	gotSource domain.StationID
	gotTarget domain.StationID
	gotOpts   domain.PathOptions
}

func (m *mockPathService) FindPath(
	_ context.Context,
	source, target domain.StationID,
	opts domain.PathOptions,
) (*domain.Route, error) {
	m.gotSource, m.gotTarget, m.gotOpts = source, target, opts
	return m.route, m.err
}

// mockStationService is a mock implementation of driving.StationService
// that resolves names through a fixed table.
type mockStationService struct {
	byName map[string]domain.StationID
}

func (m *mockStationService) Create(_ context.Context, _ string) (*domain.Station, error) {
	return nil, domain.ErrNotImplemented
}

func (m *mockStationService) Get(_ context.Context, id domain.StationID) (*domain.Station, error) {
	return &domain.Station{ID: id, Name: id.String()}, nil
}

func (m *mockStationService) Resolve(_ context.Context, idOrName string) (*domain.Station, error) {
	if id, ok := m.byName[idOrName]; ok {
		return &domain.Station{ID: id, Name: idOrName}, nil
	}
	return nil, domain.ErrStationNotFound
}

func (m *mockStationService) List(_ context.Context) ([]domain.Station, error) {
	return nil, nil
}

func (m *mockStationService) Rename(_ context.Context, _ domain.StationID, _ string) (*domain.Station, error) {
	return nil, domain.ErrNotImplemented
}

func (m *mockStationService) Delete(_ context.Context, _ domain.StationID) error {
	return domain.ErrNotImplemented
}

// mockLineService is a mock implementation of driving.LineService.
type mockLineService struct {
	lines    []*domain.Line
	stations []domain.Station
	err      error
}

func (m *mockLineService) Create(_ context.Context, _ domain.LineSpec) (*domain.Line, error) {
	return nil, domain.ErrNotImplemented
}

func (m *mockLineService) Get(_ context.Context, _ domain.LineID) (*domain.Line, error) {
	return nil, m.err
}

func (m *mockLineService) Resolve(_ context.Context, _ string) (*domain.Line, error) {
	return nil, m.err
}

func (m *mockLineService) List(_ context.Context) ([]*domain.Line, error) {
	return m.lines, m.err
}

func (m *mockLineService) Update(_ context.Context, _ domain.LineID, _, _ string) (*domain.Line, error) {
	return nil, domain.ErrNotImplemented
}

func (m *mockLineService) Delete(_ context.Context, _ domain.LineID) error {
	return domain.ErrNotImplemented
}

func (m *mockLineService) AddSection(
	_ context.Context, _ domain.LineID, _, _ domain.StationID, _ int,
) (*domain.Line, error) {
	return nil, domain.ErrNotImplemented
}

func (m *mockLineService) DeleteStation(_ context.Context, _ domain.LineID, _ domain.StationID) (*domain.Line, error) {
	return nil, domain.ErrNotImplemented
}

func (m *mockLineService) Stations(_ context.Context, _ domain.LineID) ([]domain.Station, error) {
	return m.stations, m.err
}
