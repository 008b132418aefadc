package services

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel/attribute"

	"github.com/custodia-labs/metro-cli/internal/core/domain"
	"github.com/custodia-labs/metro-cli/internal/core/pathfinder"
	"github.com/custodia-labs/metro-cli/internal/core/ports/driven"
	"github.com/custodia-labs/metro-cli/internal/core/ports/driving"
	"github.com/custodia-labs/metro-cli/internal/logger"
)

// Ensure PathService implements the interface.
var _ driving.PathService = (*PathService)(nil)

// PathService answers route queries over a snapshot of all lines.
type PathService struct {
	stationStore driven.StationStore
	lineStore    driven.LineStore

	mu     sync.RWMutex
	fare   domain.FarePolicy
	graphs *cache.Cache
}

// NewPathService creates a new path service using the default fare policy.
// Graphs are rebuilt for every query until EnableGraphCache is called.
func NewPathService(stationStore driven.StationStore, lineStore driven.LineStore) *PathService {
	return &PathService{
		stationStore: stationStore,
		lineStore:    lineStore,
		fare:         domain.DefaultFarePolicy(),
	}
}

// SetFarePolicy replaces the fare policy used for new queries.
func (s *PathService) SetFarePolicy(policy domain.FarePolicy) error {
	if err := policy.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fare = policy
	return nil
}

// FarePolicy returns the fare policy in use.
func (s *PathService) FarePolicy() domain.FarePolicy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fare
}

// EnableGraphCache keeps built graphs for ttl, keyed by the line store's
// version. A graph is reused only while the version is unchanged. A ttl of
// zero or less disables the cache.
func (s *PathService) EnableGraphCache(ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ttl <= 0 {
		s.graphs = nil
		return
	}
	s.graphs = cache.New(ttl, 2*ttl)
}

// FindPath returns the shortest route between two stations with its fare.
func (s *PathService) FindPath(
	ctx context.Context,
	source, target domain.StationID,
	opts domain.PathOptions,
) (_ *domain.Route, err error) {
	if s.stationStore == nil || s.lineStore == nil {
		return nil, domain.ErrNotImplemented
	}
	ctx, span := startSpan(ctx, "path.find",
		attribute.String("path.source", source.String()),
		attribute.String("path.target", target.String()),
	)
	defer func() { endSpan(span, err) }()

	if source == target {
		return nil, domain.ErrSameStation
	}
	if opts.Age < 0 {
		return nil, fmt.Errorf("%w: age must not be negative", domain.ErrInvalidInput)
	}
	if _, err := s.stationStore.Get(ctx, source); err != nil {
		return nil, err
	}
	if _, err := s.stationStore.Get(ctx, target); err != nil {
		return nil, err
	}

	graph, err := s.graph(ctx)
	if err != nil {
		return nil, err
	}
	path, err := graph.ShortestPath(source, target)
	if err != nil {
		return nil, err
	}

	stations := make([]domain.Station, 0, len(path.Stations))
	for _, id := range path.Stations {
		station, err := s.stationStore.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("resolve route station: %w", err)
		}
		stations = append(stations, *station)
	}

	route := &domain.Route{
		Stations:  stations,
		Distance:  path.Distance,
		Surcharge: path.Surcharge,
		Fare:      s.FarePolicy().Fare(path.Distance, path.Surcharge, opts.Age),
	}
	span.SetAttributes(
		attribute.Int("path.distance", route.Distance),
		attribute.Int("path.fare", route.Fare),
	)
	return route, nil
}

// graph returns the network graph, from cache when possible.
func (s *PathService) graph(ctx context.Context) (*pathfinder.Graph, error) {
	s.mu.RLock()
	graphs := s.graphs
	s.mu.RUnlock()

	// The version is read before the lines, so a cached graph is never
	// older than its key.
	var key string
	if graphs != nil {
		version, err := s.lineStore.Version(ctx)
		if err != nil {
			return nil, err
		}
		key = strconv.FormatUint(version, 10)
		if cached, ok := graphs.Get(key); ok {
			logger.Debug("reusing network graph version %s", key)
			return cached.(*pathfinder.Graph), nil
		}
	}

	lines, err := s.lineStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list lines: %w", err)
	}
	graph := pathfinder.New(lines)
	logger.Debug("built network graph: %d lines, %d stations, %d edges",
		len(lines), len(graph.Stations()), graph.EdgeCount())

	if graphs != nil {
		graphs.Set(key, graph, cache.DefaultExpiration)
	}
	return graph, nil
}
