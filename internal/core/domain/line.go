package domain

import (
	"fmt"
	"strings"
	"time"
)

// LineID uniquely identifies a line. It is the key used in maps and sets;
// lines are never compared by value or pointer.
type LineID string

// String returns the string representation.
func (id LineID) String() string {
	return string(id)
}

// Line is a metro line: a named chain of sections with a fare surcharge.
type Line struct {
	// ID is the unique identifier for the line.
	ID LineID

	// Name is the unique line name (e.g., "2호선").
	Name string

	// Color is the display colour (e.g., "bg-green-600").
	Color string

	// Surcharge is the extra fare charged when a route rides this line.
	Surcharge int

	// CreatedAt is when the line was created.
	CreatedAt time.Time

	// UpdatedAt is when the line was last modified.
	UpdatedAt time.Time

	sections *Sections
}

// NewLine creates a line without sections.
func NewLine(id LineID, name, color string, surcharge int) (*Line, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: line id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: line name is required", ErrInvalidInput)
	}
	if surcharge < 0 {
		return nil, fmt.Errorf("%w: surcharge must not be negative, got %d", ErrInvalidInput, surcharge)
	}
	return &Line{
		ID:        id,
		Name:      name,
		Color:     color,
		Surcharge: surcharge,
		sections:  emptySections(),
	}, nil
}

// Update changes the line's name and colour. Topology is never touched.
func (l *Line) Update(name, color string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: line name is required", ErrInvalidInput)
	}
	l.Name = name
	l.Color = color
	return nil
}

// AddSection inserts a section between two stations of this line.
func (l *Line) AddSection(up, down StationID, distance int) error {
	section, err := NewSection(l.ID, up, down, distance)
	if err != nil {
		return err
	}
	return l.chain().Insert(section)
}

// DeleteStation removes a station from this line.
func (l *Line) DeleteStation(id StationID) error {
	return l.chain().DeleteStation(id)
}

// RestoreSections replaces the chain with persisted sections.
// Used by storage adapters when loading a line.
func (l *Line) RestoreSections(sections []Section) error {
	for i := range sections {
		if sections[i].LineID != l.ID {
			return fmt.Errorf("%w: section belongs to line %s, not %s",
				ErrInvalidSection, sections[i].LineID, l.ID)
		}
	}
	chain, err := NewSections(sections...)
	if err != nil {
		return err
	}
	l.sections = chain
	return nil
}

// Sections returns the line's sections from up terminal to down terminal.
func (l *Line) Sections() []Section {
	return l.chain().Ordered()
}

// Stations returns the line's stations in travel order.
func (l *Line) Stations() []StationID {
	return l.chain().Stations()
}

// HasStation reports whether the line serves the station.
func (l *Line) HasStation(id StationID) bool {
	return l.chain().Contains(id)
}

// TotalDistance returns the length of the whole line.
func (l *Line) TotalDistance() int {
	return l.chain().TotalDistance()
}

// Clone returns a deep copy that shares no state with the receiver.
func (l *Line) Clone() *Line {
	c := *l
	c.sections = l.chain().Clone()
	return &c
}

func (l *Line) chain() *Sections {
	if l.sections == nil {
		l.sections = emptySections()
	}
	return l.sections
}

// LineSpec describes a new line and its first section.
type LineSpec struct {
	Name          string
	Color         string
	Surcharge     int
	UpStationID   StationID
	DownStationID StationID
	Distance      int
}
