package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/custodia-labs/metro-cli/internal/core/domain"
	"github.com/custodia-labs/metro-cli/internal/core/ports/driven"
)

// Ensure LineStore implements the interface.
var _ driven.LineStore = (*LineStore)(nil)

// LineStore is an in-memory implementation of driven.LineStore.
// Lines are cloned on the way in and out so callers never share chains.
type LineStore struct {
	mu      sync.RWMutex
	lines   map[domain.LineID]*domain.Line
	version uint64
}

// NewLineStore creates a new in-memory line store.
func NewLineStore() *LineStore {
	return &LineStore{
		lines: make(map[domain.LineID]*domain.Line),
	}
}

// Save stores or updates a line.
func (s *LineStore) Save(_ context.Context, line *domain.Line) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, existing := range s.lines {
		if id != line.ID && existing.Name == line.Name {
			return domain.ErrAlreadyExists
		}
	}
	s.lines[line.ID] = line.Clone()
	s.version++
	return nil
}

// Get retrieves a line by ID.
func (s *LineStore) Get(_ context.Context, id domain.LineID) (*domain.Line, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	line, ok := s.lines[id]
	if !ok {
		return nil, domain.ErrLineNotFound
	}
	return line.Clone(), nil
}

// GetByName retrieves a line by name.
func (s *LineStore) GetByName(_ context.Context, name string) (*domain.Line, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, line := range s.lines {
		if line.Name == name {
			return line.Clone(), nil
		}
	}
	return nil, domain.ErrLineNotFound
}

// Delete removes a line.
func (s *LineStore) Delete(_ context.Context, id domain.LineID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lines[id]; ok {
		delete(s.lines, id)
		s.version++
	}
	return nil
}

// List returns copies of all lines ordered by name.
func (s *LineStore) List(_ context.Context) ([]*domain.Line, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*domain.Line, 0, len(s.lines))
	for _, line := range s.lines {
		result = append(result, line.Clone())
	}
	slices.SortFunc(result, func(a, b *domain.Line) int {
		return strings.Compare(a.Name, b.Name)
	})
	return result, nil
}

// Version returns the number of saves and deletes so far.
func (s *LineStore) Version(_ context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version, nil
}
