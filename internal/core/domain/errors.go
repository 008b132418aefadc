package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Topology Errors.

	// ErrInvalidSection indicates a section insertion or removal would break
	// the line's single unbranching path.
	ErrInvalidSection = errors.New("invalid section")

	// ErrStationNotFound indicates a station is not known, or not part of the
	// line or network being queried.
	ErrStationNotFound = fmt.Errorf("station %w", ErrNotFound)

	// ErrLineNotFound indicates a line does not exist.
	ErrLineNotFound = fmt.Errorf("line %w", ErrNotFound)

	// ErrStationInUse indicates a station cannot be removed because a line still serves it.
	ErrStationInUse = errors.New("station is in use by one or more lines")

	// Path Errors.

	// ErrSameStation indicates a path query whose source equals its target.
	ErrSameStation = errors.New("source and target are the same station")

	// ErrNoPath indicates no route connects the source and target stations.
	ErrNoPath = errors.New("no path between stations")

	// Favorite Errors.

	// ErrForbidden indicates the caller does not own the requested resource.
	ErrForbidden = errors.New("forbidden")
)
