// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette of the TUI.
type Theme struct {
	// Accent highlights the document location and headings.
	Accent lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for hints and secondary text.
	Muted lipgloss.Color

	// Synced marks content that matches the last host render.
	Synced lipgloss.Color

	// Busy marks a refresh or engine load in progress.
	Busy lipgloss.Color

	// Error indicates a failed boot or refresh.
	Error lipgloss.Color

	// Border is the frame colour around the content.
	Border lipgloss.Color

	// Bar is the status bar background.
	Bar lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:     lipgloss.Color("#06B6D4"), // Cyan
		Foreground: lipgloss.Color("#CDD6F4"), // Light gray
		Muted:      lipgloss.Color("#6C7086"), // Medium gray
		Synced:     lipgloss.Color("#A6E3A1"), // Green
		Busy:       lipgloss.Color("#F9E2AF"), // Yellow
		Error:      lipgloss.Color("#F38BA8"), // Red
		Border:     lipgloss.Color("#45475A"),
		Bar:        lipgloss.Color("#181825"),
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	Title   lipgloss.Style
	Normal  lipgloss.Style
	Muted   lipgloss.Style
	Synced  lipgloss.Style
	Busy    lipgloss.Style
	Error   lipgloss.Style
	Help    lipgloss.Style
	Content lipgloss.Style

	// StatusBar frames the bottom line.
	StatusBar lipgloss.Style
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
			Foreground(theme.Accent),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Synced: lipgloss.NewStyle().
			Foreground(theme.Synced),

		Busy: lipgloss.NewStyle().
			Foreground(theme.Busy),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(1, 2),

		Content: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Bar).
			Padding(0, 1),
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
