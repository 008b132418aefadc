// Package tui provides an interactive terminal user interface for metro.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/metro-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Path answers route queries.
	Path driving.PathService

	// Station resolves station names typed into the route finder.
	Station driving.StationService

	// Line lists lines for the lines browser.
	Line driving.LineService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	path driving.PathService,
	station driving.StationService,
	line driving.LineService,
) *Ports {
	return &Ports{
		Path:    path,
		Station: station,
		Line:    line,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Path == nil {
		return ErrMissingPathService
	}
	if p.Station == nil {
		return ErrMissingStationService
	}
	return nil
}
