// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/metro-cli/internal/core/domain"
)

// RouteRequested is a command to find a route.
type RouteRequested struct {
	Source  string
	Target  string
	Options domain.PathOptions
}

// RouteFound carries a route query result back to the model.
type RouteFound struct {
	Route *domain.Route
	Err   error
}

// LineSummary is a line together with its stations in travel order.
type LineSummary struct {
	Line     *domain.Line
	Stations []domain.Station
}

// LinesLoaded carries the lines of the network.
type LinesLoaded struct {
	Lines []LineSummary
	Err   error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewRoute is the route finder.
	ViewRoute
	// ViewLines browses lines and their stations.
	ViewLines
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewRoute:
		return "route"
	case ViewLines:
		return "lines"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
