package domain

import "fmt"

// Section is a track segment linking two adjacent stations of a line.
// Sections are values: the chain replaces them instead of mutating them.
type Section struct {
	// LineID is the owning line.
	LineID LineID

	// UpStationID is the station at the up end of the segment.
	UpStationID StationID

	// DownStationID is the station at the down end of the segment.
	DownStationID StationID

	// Distance is the positive track length between the two stations.
	Distance int
}

// NewSection validates and creates a section.
func NewSection(lineID LineID, up, down StationID, distance int) (Section, error) {
	if up == "" || down == "" {
		return Section{}, fmt.Errorf("%w: both stations are required", ErrInvalidSection)
	}
	if up == down {
		return Section{}, fmt.Errorf("%w: up and down station must differ", ErrInvalidSection)
	}
	if distance <= 0 {
		return Section{}, fmt.Errorf("%w: distance must be positive, got %d", ErrInvalidSection, distance)
	}
	return Section{
		LineID:        lineID,
		UpStationID:   up,
		DownStationID: down,
		Distance:      distance,
	}, nil
}

// Has reports whether the station is one of the section's endpoints.
func (s Section) Has(id StationID) bool {
	return s.UpStationID == id || s.DownStationID == id
}
