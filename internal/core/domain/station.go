package domain

import "time"

// StationID uniquely identifies a station.
type StationID string

// String returns the string representation.
func (id StationID) String() string {
	return string(id)
}

// Station is a named stop in the network. It carries no behaviour;
// lines and paths refer to it by ID.
type Station struct {
	// ID is the unique identifier for the station.
	ID StationID

	// Name is the human-readable, unique station name.
	Name string

	// CreatedAt is when the station was created.
	CreatedAt time.Time

	// UpdatedAt is when the station was last renamed.
	UpdatedAt time.Time
}
