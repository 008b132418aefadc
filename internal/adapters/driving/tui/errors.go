package tui

import "errors"

// ErrMissingPathService is returned when the path service is not provided.
var ErrMissingPathService = errors.New("tui: path service is required")

// ErrMissingStationService is returned when the station service is not provided.
var ErrMissingStationService = errors.New("tui: station service is required")
