package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/metro-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/metro-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/metro-cli/internal/adapters/driving/tui/views/lines"
	"github.com/custodia-labs/metro-cli/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/metro-cli/internal/adapters/driving/tui/views/route"
	"github.com/custodia-labs/metro-cli/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// menuView is the main navigation menu.
	menuView *menu.View

	// routeView is the route finder.
	routeView *route.View

	// linesView browses lines and their stations.
	linesView *lines.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, fmt.Errorf("creating app: %w", ErrMissingPathService)
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		menuView:    menu.NewView(s),
		routeView:   route.NewView(s, nil, ports.Path, ports.Station),
		linesView:   lines.NewView(s, ports.Line),
		currentView: messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.routeView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("metro"),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
		case messages.ViewRoute:
			a.routeView, cmd = a.routeView.Update(msg)
			a.err = a.routeView.Err()
		case messages.ViewLines, messages.ViewHelp:
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
				return a, nil
			}
			if a.currentView == messages.ViewLines {
				a.linesView, cmd = a.linesView.Update(msg)
			}
		}
		return a, cmd

	case messages.RouteFound:
		a.routeView, cmd = a.routeView.Update(msg)
		a.err = a.routeView.Err()
		return a, cmd

	case messages.LinesLoaded:
		a.linesView, cmd = a.linesView.Update(msg)
		if msg.Err != nil {
			a.err = msg.Err
		}
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewRoute:
			a.routeView.Reset()
			return a, a.routeView.Init()
		case messages.ViewLines:
			return a, a.linesView.Init()
		case messages.ViewMenu, messages.ViewHelp:
		}
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		if a.currentView == messages.ViewRoute {
			a.routeView, cmd = a.routeView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages (cursor blink and the like) to the active view.
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewRoute:
		a.routeView, cmd = a.routeView.Update(msg)
	case messages.ViewLines:
		a.linesView, cmd = a.linesView.Update(msg)
	case messages.ViewHelp:
	}
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewRoute:
		return a.routeView.View()
	case messages.ViewLines:
		return a.linesView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewMenu:
		return a.menuView.View()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Find Route:
  tab         Next field (From, To, Age)
  shift+tab   Previous field
  enter       Find route
  j/k, ↑/↓    Walk the stations of the route
  n           New route

Lines:
  j/k, ↑/↓    Select line
  r           Reload

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Route returns the route shown in the route finder, if any.
func (a *App) Route() *domain.Route {
	return a.routeView.Route()
}

// Lines returns the lines loaded by the lines browser.
func (a *App) Lines() []messages.LineSummary {
	return a.linesView.Lines()
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.routeView.SetDimensions(width, height)
	a.linesView.SetDimensions(width, height)
}
