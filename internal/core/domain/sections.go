package domain

import "fmt"

// Sections is the ordered chain of sections belonging to one line.
//
// The chain always forms a single simple path. It is held as two indexes:
// byUp maps a station to the section leaving it, byDown maps a station to the
// section arriving at it. A station missing from byDown is the up terminal,
// one missing from byUp is the down terminal.
type Sections struct {
	byUp   map[StationID]Section
	byDown map[StationID]Section
}

// NewSections rebuilds a chain from previously persisted sections.
// The input may be in any order; it must form exactly one unbranching path.
func NewSections(sections ...Section) (*Sections, error) {
	s := emptySections()
	for _, section := range sections {
		if _, err := NewSection(section.LineID, section.UpStationID, section.DownStationID, section.Distance); err != nil {
			return nil, err
		}
		if _, ok := s.byUp[section.UpStationID]; ok {
			return nil, fmt.Errorf("%w: station %s branches downwards", ErrInvalidSection, section.UpStationID)
		}
		if _, ok := s.byDown[section.DownStationID]; ok {
			return nil, fmt.Errorf("%w: station %s branches upwards", ErrInvalidSection, section.DownStationID)
		}
		s.put(section)
	}
	if len(s.Ordered()) != s.Len() {
		return nil, fmt.Errorf("%w: sections do not form a single connected path", ErrInvalidSection)
	}
	return s, nil
}

func emptySections() *Sections {
	return &Sections{
		byUp:   make(map[StationID]Section),
		byDown: make(map[StationID]Section),
	}
}

// Len returns the number of sections in the chain.
func (s *Sections) Len() int {
	return len(s.byUp)
}

// IsEmpty reports whether the chain has no sections.
func (s *Sections) IsEmpty() bool {
	return s.Len() == 0
}

// Contains reports whether the station lies on the chain.
func (s *Sections) Contains(id StationID) bool {
	_, up := s.byUp[id]
	_, down := s.byDown[id]
	return up || down
}

// UpTerminal returns the first station of the chain.
func (s *Sections) UpTerminal() (StationID, bool) {
	for id := range s.byUp {
		if _, ok := s.byDown[id]; !ok {
			return id, true
		}
	}
	return "", false
}

// Ordered returns the sections from the up terminal to the down terminal.
// On a malformed chain the walk stops early; NewSections relies on that.
func (s *Sections) Ordered() []Section {
	start, ok := s.UpTerminal()
	if !ok {
		return nil
	}

	ordered := make([]Section, 0, s.Len())
	seen := make(map[StationID]bool, s.Len())
	for current := start; !seen[current]; {
		seen[current] = true
		section, ok := s.byUp[current]
		if !ok {
			break
		}
		ordered = append(ordered, section)
		current = section.DownStationID
	}
	return ordered
}

// Stations returns the stations in travel order.
func (s *Sections) Stations() []StationID {
	ordered := s.Ordered()
	if len(ordered) == 0 {
		return nil
	}
	stations := make([]StationID, 0, len(ordered)+1)
	stations = append(stations, ordered[0].UpStationID)
	for _, section := range ordered {
		stations = append(stations, section.DownStationID)
	}
	return stations
}

// TotalDistance returns the sum of all section distances.
func (s *Sections) TotalDistance() int {
	total := 0
	for _, section := range s.byUp {
		total += section.Distance
	}
	return total
}

// Insert adds a section to the chain, splitting an existing section when the
// new one lands inside it. The chain is left untouched on error.
func (s *Sections) Insert(section Section) error {
	if _, err := NewSection(section.LineID, section.UpStationID, section.DownStationID, section.Distance); err != nil {
		return err
	}
	if s.IsEmpty() {
		s.put(section)
		return nil
	}

	upKnown := s.Contains(section.UpStationID)
	downKnown := s.Contains(section.DownStationID)
	switch {
	case upKnown && downKnown:
		return fmt.Errorf("%w: stations %s and %s are both already on the line",
			ErrInvalidSection, section.UpStationID, section.DownStationID)
	case !upKnown && !downKnown:
		return fmt.Errorf("%w: neither %s nor %s is on the line",
			ErrInvalidSection, section.UpStationID, section.DownStationID)
	case upKnown:
		return s.insertFromUp(section)
	default:
		return s.insertFromDown(section)
	}
}

// insertFromUp handles a new section anchored on its up station.
func (s *Sections) insertFromUp(section Section) error {
	existing, ok := s.byUp[section.UpStationID]
	if !ok {
		// Anchor is the down terminal: extend the line.
		s.put(section)
		return nil
	}
	if section.Distance >= existing.Distance {
		return fmt.Errorf("%w: distance %d must be shorter than the existing section (%d)",
			ErrInvalidSection, section.Distance, existing.Distance)
	}

	shrunk := Section{
		LineID:        existing.LineID,
		UpStationID:   section.DownStationID,
		DownStationID: existing.DownStationID,
		Distance:      existing.Distance - section.Distance,
	}
	s.remove(existing)
	s.put(section)
	s.put(shrunk)
	return nil
}

// insertFromDown handles a new section anchored on its down station.
func (s *Sections) insertFromDown(section Section) error {
	existing, ok := s.byDown[section.DownStationID]
	if !ok {
		// Anchor is the up terminal: prepend.
		s.put(section)
		return nil
	}
	if section.Distance >= existing.Distance {
		return fmt.Errorf("%w: distance %d must be shorter than the existing section (%d)",
			ErrInvalidSection, section.Distance, existing.Distance)
	}

	shrunk := Section{
		LineID:        existing.LineID,
		UpStationID:   existing.UpStationID,
		DownStationID: section.UpStationID,
		Distance:      existing.Distance - section.Distance,
	}
	s.remove(existing)
	s.put(shrunk)
	s.put(section)
	return nil
}

// DeleteStation removes a station from the chain. A terminal station drops its
// only section; an interior station merges its two neighbouring sections.
func (s *Sections) DeleteStation(id StationID) error {
	if s.Len() <= 1 {
		return fmt.Errorf("%w: a line must keep at least one section", ErrInvalidSection)
	}
	if !s.Contains(id) {
		return fmt.Errorf("%w: %s is not on the line", ErrStationNotFound, id)
	}

	incoming, hasIncoming := s.byDown[id]
	outgoing, hasOutgoing := s.byUp[id]

	switch {
	case hasIncoming && hasOutgoing:
		merged := Section{
			LineID:        incoming.LineID,
			UpStationID:   incoming.UpStationID,
			DownStationID: outgoing.DownStationID,
			Distance:      incoming.Distance + outgoing.Distance,
		}
		s.remove(incoming)
		s.remove(outgoing)
		s.put(merged)
	case hasIncoming:
		s.remove(incoming)
	default:
		s.remove(outgoing)
	}
	return nil
}

// Clone returns an independent copy of the chain.
func (s *Sections) Clone() *Sections {
	c := emptySections()
	for _, section := range s.byUp {
		c.put(section)
	}
	return c
}

func (s *Sections) put(section Section) {
	s.byUp[section.UpStationID] = section
	s.byDown[section.DownStationID] = section
}

func (s *Sections) remove(section Section) {
	delete(s.byUp, section.UpStationID)
	delete(s.byDown, section.DownStationID)
}
