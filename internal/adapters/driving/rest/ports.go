package rest

import (
	"github.com/custodia-labs/metro-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports served over HTTP.
type Ports struct {
	Path     driving.PathService
	Station  driving.StationService
	Line     driving.LineService
	Favorite driving.FavoriteService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Path == nil {
		return ErrMissingPathService
	}
	return nil
}
