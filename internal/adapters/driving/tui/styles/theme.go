// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for the TUI.
type Theme struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Border     lipgloss.Color

	// Fare highlights fare amounts.
	Fare lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#0052A4"), // Line 1 blue
		Secondary:  lipgloss.Color("#00A84D"), // Line 2 green
		Foreground: lipgloss.Color("#E6E6E6"),
		Muted:      lipgloss.Color("#7A7A7A"),
		Success:    lipgloss.Color("#A6E3A1"),
		Warning:    lipgloss.Color("#EF7C1C"), // Line 3 orange
		Error:      lipgloss.Color("#F38BA8"),
		Border:     lipgloss.Color("#45475A"),
		Fare:       lipgloss.Color("#F9E2AF"),
	}
}

// lineColours maps the colour family of a line's display colour
// (e.g. "bg-green-600") to a terminal colour.
var lineColours = map[string]lipgloss.Color{
	"red":    lipgloss.Color("#E6186C"),
	"orange": lipgloss.Color("#EF7C1C"),
	"yellow": lipgloss.Color("#D4AC0D"),
	"green":  lipgloss.Color("#00A84D"),
	"teal":   lipgloss.Color("#00A5DE"),
	"blue":   lipgloss.Color("#0052A4"),
	"indigo": lipgloss.Color("#5D6CB1"),
	"purple": lipgloss.Color("#996CAC"),
	"pink":   lipgloss.Color("#E6186C"),
	"brown":  lipgloss.Color("#BB8336"),
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Normal     lipgloss.Style
	Muted      lipgloss.Style
	Selected   lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Warning    lipgloss.Style
	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Help       lipgloss.Style
	Border     lipgloss.Style

	// Station renders a stop on a route or line.
	Station lipgloss.Style

	// Fare renders fare amounts.
	Fare lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(lipgloss.Color("#181825")).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),

		Station: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Fare: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Fare),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// LineColour returns the terminal colour for a line's display colour.
// Unknown colours fall back to the theme's secondary colour.
func (s *Styles) LineColour(color string) lipgloss.Color {
	for _, part := range strings.Split(strings.ToLower(color), "-") {
		if c, ok := lineColours[part]; ok {
			return c
		}
	}
	return s.theme.Secondary
}

// LineBadge renders a line name in the line's colour.
func (s *Styles) LineBadge(name, color string) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(s.LineColour(color)).
		Padding(0, 1).
		Render(name)
}
