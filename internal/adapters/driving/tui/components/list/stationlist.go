// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/metro-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/metro-cli/internal/core/domain"
)

// StationList displays stations as a navigable line diagram.
type StationList struct {
	title    string
	stations []domain.Station
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewStationList creates a new station list component.
func NewStationList(title string, s *styles.Styles) *StationList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &StationList{
		title:  title,
		styles: s,
		width:  80,
		height: 20,
	}
}

// Init initialises the station list.
func (l *StationList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *StationList) Update(msg tea.Msg) (*StationList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the stations top to bottom joined by track segments.
func (l *StationList) View() string {
	if len(l.stations) == 0 {
		return l.styles.Muted.Render("No stations")
	}

	rows := make([]string, 0, len(l.stations)*2+2)
	rows = append(rows, l.styles.Subtitle.Render(fmt.Sprintf("%s (%d)", l.title, len(l.stations))), "")

	// Each station takes two rows: the stop and the track below it.
	visible := (l.height - 2) / 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := start + visible
	if end > len(l.stations) {
		end = len(l.stations)
	}

	for i := start; i < end; i++ {
		rows = append(rows, l.renderStation(i))
		if i < len(l.stations)-1 {
			rows = append(rows, l.styles.Muted.Render("  │"))
		}
	}
	return strings.Join(rows, "\n")
}

func (l *StationList) renderStation(index int) string {
	name := l.stations[index].Name
	maxLen := l.width - 6
	if maxLen < 10 {
		maxLen = 10
	}
	if runes := []rune(name); len(runes) > maxLen {
		name = string(runes[:maxLen-3]) + "..."
	}

	if index == l.selected {
		return l.styles.Selected.Render("> ● " + name)
	}
	return l.styles.Station.Render("  ● " + name)
}

// SetStations replaces the stations and resets the selection.
func (l *StationList) SetStations(stations []domain.Station) {
	l.stations = stations
	l.selected = 0
}

// Stations returns the current stations.
func (l *StationList) Stations() []domain.Station {
	return l.stations
}

// SetTitle sets the header text.
func (l *StationList) SetTitle(title string) {
	l.title = title
}

// Title returns the header text.
func (l *StationList) Title() string {
	return l.title
}

// Selected returns the index of the selected station.
func (l *StationList) Selected() int {
	return l.selected
}

// SetSelected sets the selected index.
func (l *StationList) SetSelected(index int) {
	if index >= 0 && index < len(l.stations) {
		l.selected = index
	}
}

// SelectedStation returns the currently selected station, or nil if none.
func (l *StationList) SelectedStation() *domain.Station {
	if l.selected < 0 || l.selected >= len(l.stations) {
		return nil
	}
	return &l.stations[l.selected]
}

// MoveUp moves selection up.
func (l *StationList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *StationList) MoveDown() {
	if l.selected < len(l.stations)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *StationList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Width returns the current width.
func (l *StationList) Width() int {
	return l.width
}

// Height returns the current height.
func (l *StationList) Height() int {
	return l.height
}

// Count returns the number of stations.
func (l *StationList) Count() int {
	return len(l.stations)
}

// IsEmpty returns whether the list is empty.
func (l *StationList) IsEmpty() bool {
	return len(l.stations) == 0
}
