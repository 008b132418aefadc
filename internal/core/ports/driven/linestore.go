package driven

import (
	"context"

	"github.com/custodia-labs/metro-cli/internal/core/domain"
)

// LineStore persists lines together with their section chains.
//
// Implementations must hand out independent copies: mutating a line returned
// by Get or List never affects stored state until it is saved again.
type LineStore interface {
	// Save stores or updates a line, replacing its sections atomically.
	Save(ctx context.Context, line *domain.Line) error

	// Get retrieves a line by ID.
	// Returns domain.ErrLineNotFound if it does not exist.
	Get(ctx context.Context, id domain.LineID) (*domain.Line, error)

	// GetByName retrieves a line by its unique name.
	GetByName(ctx context.Context, name string) (*domain.Line, error)

	// Delete removes a line and its sections.
	Delete(ctx context.Context, id domain.LineID) error

	// List returns a consistent snapshot of all lines ordered by name.
	List(ctx context.Context) ([]*domain.Line, error)

	// Version returns a counter that changes whenever a line is saved or
	// deleted, including by other processes sharing the same storage.
	Version(ctx context.Context) (uint64, error)
}
