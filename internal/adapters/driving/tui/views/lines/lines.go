// Package lines provides the line browser view for the TUI.
package lines

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/metro-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/metro-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/metro-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/metro-cli/internal/core/ports/driving"
)

// ErrNoLineService is reported when the view has no line service to load from.
var ErrNoLineService = errors.New("line service not available")

// View lists the lines of the network and the stations of the selected one.
type View struct {
	styles      *styles.Styles
	lineService driving.LineService
	stations    *list.StationList

	lines    []messages.LineSummary
	selected int
	width    int
	height   int
	ready    bool
	err      error
	loading  bool
}

// NewView creates a new lines view.
func NewView(s *styles.Styles, lineService driving.LineService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:      s,
		lineService: lineService,
		stations:    list.NewStationList("Stations", s),
	}
}

// Init initialises the view and loads lines.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadLines()
}

// loadLines returns a command that loads every line with its stations.
func (v *View) loadLines() tea.Cmd {
	return func() tea.Msg {
		if v.lineService == nil {
			return messages.LinesLoaded{Err: ErrNoLineService}
		}

		ctx := context.Background()
		lines, err := v.lineService.List(ctx)
		if err != nil {
			return messages.LinesLoaded{Err: err}
		}

		summaries := make([]messages.LineSummary, 0, len(lines))
		for _, line := range lines {
			stations, err := v.lineService.Stations(ctx, line.ID)
			if err != nil {
				return messages.LinesLoaded{Err: fmt.Errorf("stations of %s: %w", line.Name, err)}
			}
			summaries = append(summaries, messages.LineSummary{Line: line, Stations: stations})
		}
		return messages.LinesLoaded{Lines: summaries}
	}
}

// Update handles messages for the lines view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.LinesLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.lines = msg.Lines
		if v.selected >= len(v.lines) {
			v.selected = 0
		}
		v.syncStations()
		return v, nil
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
			v.syncStations()
		}
	case "down", "j":
		if v.selected < len(v.lines)-1 {
			v.selected++
			v.syncStations()
		}
	case "r":
		v.loading = true
		return v, v.loadLines()
	}
	return v, nil
}

// syncStations shows the selected line's stations.
func (v *View) syncStations() {
	line := v.SelectedLine()
	if line == nil {
		v.stations.SetStations(nil)
		return
	}
	v.stations.SetTitle(line.Line.Name)
	v.stations.SetStations(line.Stations)
}

// View renders the lines view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Lines"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading lines..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case len(v.lines) == 0:
		b.WriteString(v.styles.Muted.Render("No lines yet."))
	default:
		rows := make([]string, 0, len(v.lines))
		for i := range v.lines {
			rows = append(rows, v.renderLine(i))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			strings.Join(rows, "\n"), "    ", v.stations.View()))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

// renderLine renders a single line row: badge, length, surcharge and stops.
func (v *View) renderLine(index int) string {
	summary := v.lines[index]
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	detail := fmt.Sprintf(" %d km · %d stops", summary.Line.TotalDistance(), len(summary.Stations))
	if summary.Line.Surcharge > 0 {
		detail += fmt.Sprintf(" · +%d원", summary.Line.Surcharge)
	}

	if index == v.selected {
		return indicator + v.styles.LineBadge(summary.Line.Name, summary.Line.Color) + v.styles.Normal.Render(detail)
	}
	return indicator + v.styles.LineBadge(summary.Line.Name, summary.Line.Color) + v.styles.Muted.Render(detail)
}

func (v *View) renderHelp() string {
	return v.styles.Help.Render("[j/k] select  [r] reload  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.stations.SetDimensions(width/2, height-6)
}

// Lines returns the loaded lines.
func (v *View) Lines() []messages.LineSummary {
	return v.lines
}

// SelectedIndex returns the currently selected line index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// SelectedLine returns the selected line, or nil when none are loaded.
func (v *View) SelectedLine() *messages.LineSummary {
	if v.selected < 0 || v.selected >= len(v.lines) {
		return nil
	}
	return &v.lines[v.selected]
}

// Loading returns whether lines are being loaded.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
