package mcp

import (
	"github.com/custodia-labs/metro-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Path answers route queries.
	Path driving.PathService

	// Station resolves station names given to tools.
	Station driving.StationService

	// Line exposes the network as resources.
	Line driving.LineService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Path == nil {
		return ErrMissingPathService
	}
	// Station and Line are optional; without them tools take IDs only
	// and resources are empty.
	return nil
}
