// Package route provides the route finder view for the TUI.
package route

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/metro-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/metro-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/metro-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/metro-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/metro-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/metro-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/metro-cli/internal/core/domain"
	"github.com/custodia-labs/metro-cli/internal/core/ports/driving"
)

// Form field positions.
const (
	fieldSource = iota
	fieldTarget
	fieldAge
	fieldCount
)

// View is the route finder: a source/target/age form above the found route.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	fields    [fieldCount]*input.Field
	focus     int
	list      *list.StationList
	statusbar *status.Bar

	pathService    driving.PathService
	stationService driving.StationService
	ctx            context.Context

	width     int
	height    int
	ready     bool
	err       error
	route     *domain.Route
	editing   bool // true = typing in the form, false = browsing the route
	searching bool
}

// NewView creates a new route view. The station service is optional; without
// it the form values are used as station IDs.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	pathService driving.PathService,
	stationService driving.StationService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:         s,
		keymap:         km,
		list:           list.NewStationList("Route", s),
		statusbar:      status.NewBar(s, km),
		pathService:    pathService,
		stationService: stationService,
		ctx:            context.Background(),
		width:          80,
		height:         24,
		editing:        true,
	}
	v.fields[fieldSource] = input.NewField("From", "station name or id", s)
	v.fields[fieldTarget] = input.NewField("To", "station name or id", s)
	v.fields[fieldAge] = input.NewField("Age", "optional", s)
	v.fields[fieldSource].Focus()
	return v
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.fields[v.focus].Init()
}

// Update handles messages for the route view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.RouteFound:
		v.handleRouteFound(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	if v.editing {
		v.fields[v.focus], cmd = v.fields[v.focus].Update(msg)
	}
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	if keymap.Matches(keyStr, v.keymap.Back) {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if !v.editing {
		switch {
		case keymap.Matches(keyStr, v.keymap.NewRoute):
			v.editForm()
		case keymap.Matches(keyStr, v.keymap.Up), keymap.Matches(keyStr, v.keymap.Down):
			v.list.Update(msg)
		}
		return v, nil
	}

	switch {
	case keymap.Matches(keyStr, v.keymap.NextField):
		return v, v.setFocus((v.focus + 1) % fieldCount)
	case keymap.Matches(keyStr, v.keymap.PrevField):
		return v, v.setFocus((v.focus + fieldCount - 1) % fieldCount)
	case keymap.Matches(keyStr, v.keymap.Find):
		return v.submit()
	}

	var cmd tea.Cmd
	v.fields[v.focus], cmd = v.fields[v.focus].Update(msg)
	return v, cmd
}

// submit validates the form and starts the route query.
func (v *View) submit() (*View, tea.Cmd) {
	if v.searching {
		return v, nil
	}
	req, err := v.request()
	if err != nil {
		v.setError(err)
		return v, nil
	}

	v.err = nil
	v.searching = true
	v.statusbar.SetState(status.StateFinding)
	return v, v.findRoute(req)
}

// request builds a route request from the form.
func (v *View) request() (messages.RouteRequested, error) {
	req := messages.RouteRequested{
		Source: strings.TrimSpace(v.fields[fieldSource].Value()),
		Target: strings.TrimSpace(v.fields[fieldTarget].Value()),
	}
	if req.Source == "" || req.Target == "" {
		return req, ErrMissingStations
	}
	if raw := strings.TrimSpace(v.fields[fieldAge].Value()); raw != "" {
		age, err := strconv.Atoi(raw)
		if err != nil {
			return req, ErrInvalidAge
		}
		req.Options.Age = age
	}
	return req, nil
}

// findRoute resolves both stations and queries the path service.
func (v *View) findRoute(req messages.RouteRequested) tea.Cmd {
	return func() tea.Msg {
		if v.pathService == nil {
			return messages.ErrorOccurred{Err: ErrNoPathService}
		}

		source, err := v.resolve(req.Source)
		if err != nil {
			return messages.RouteFound{Err: err}
		}
		target, err := v.resolve(req.Target)
		if err != nil {
			return messages.RouteFound{Err: err}
		}

		route, err := v.pathService.FindPath(v.ctx, source, target, req.Options)
		return messages.RouteFound{Route: route, Err: err}
	}
}

func (v *View) resolve(idOrName string) (domain.StationID, error) {
	if v.stationService == nil {
		return domain.StationID(idOrName), nil
	}
	station, err := v.stationService.Resolve(v.ctx, idOrName)
	if err != nil {
		return "", fmt.Errorf("%s: %w", idOrName, err)
	}
	return station.ID, nil
}

func (v *View) handleRouteFound(msg messages.RouteFound) {
	v.searching = false
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}
	if msg.Route == nil || len(msg.Route.Stations) == 0 {
		return
	}

	v.err = nil
	v.route = msg.Route
	v.list.SetStations(msg.Route.Stations)
	v.list.SetTitle(fmt.Sprintf("%s → %s",
		msg.Route.Stations[0].Name, msg.Route.Stations[len(msg.Route.Stations)-1].Name))
	v.statusbar.SetRoute(msg.Route.Distance, msg.Route.Fare)

	v.editing = false
	v.fields[v.focus].Blur()
}

func (v *View) setError(err error) {
	v.searching = false
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

func (v *View) setFocus(index int) tea.Cmd {
	v.fields[v.focus].Blur()
	v.focus = index
	return v.fields[v.focus].Focus()
}

// editForm returns to the form keeping the previous values.
func (v *View) editForm() {
	v.editing = true
	v.setFocus(fieldSource)
	v.statusbar.Clear()
}

// View renders the route view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 12)
	sections = append(sections, v.styles.Title.Render("metro · Find Route"), "")
	for _, f := range v.fields {
		sections = append(sections, f.View())
	}
	sections = append(sections, "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	if v.route != nil {
		summary := v.styles.Normal.Render(fmt.Sprintf("Distance %d km  Surcharge %d원  Fare ",
			v.route.Distance, v.route.Surcharge)) +
			v.styles.Fare.Render(fmt.Sprintf("%d원", v.route.Fare))
		sections = append(sections, summary, "", v.list.View())
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	for _, f := range v.fields {
		f.SetWidth(width / 2)
	}
	// Reserve space for header, form, summary and status.
	v.list.SetDimensions(width, height-14)
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// SetStations fills in the source and target fields.
func (v *View) SetStations(source, target string) {
	v.fields[fieldSource].SetValue(source)
	v.fields[fieldTarget].SetValue(target)
}

// SetAge fills in the age field.
func (v *View) SetAge(age string) {
	v.fields[fieldAge].SetValue(age)
}

// Focused returns the index of the focused form field.
func (v *View) Focused() int {
	return v.focus
}

// Editing returns whether the form has focus.
func (v *View) Editing() bool {
	return v.editing
}

// Route returns the last route found.
func (v *View) Route() *domain.Route {
	return v.route
}

// SelectedStation returns the highlighted station on the route.
func (v *View) SelectedStation() *domain.Station {
	return v.list.SelectedStation()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Reset clears the form and any route.
func (v *View) Reset() {
	for _, f := range v.fields {
		f.Reset()
	}
	v.route = nil
	v.err = nil
	v.searching = false
	v.list.SetStations(nil)
	v.editForm()
}
