package route

import "errors"

// Error definitions for the route view.
var (
	// ErrNoPathService indicates that no path service was provided.
	ErrNoPathService = errors.New("path service is required")

	// ErrMissingStations indicates the source or target field is empty.
	ErrMissingStations = errors.New("enter both a source and a target station")

	// ErrInvalidAge indicates the age field is not a whole number.
	ErrInvalidAge = errors.New("age must be a whole number")
)
