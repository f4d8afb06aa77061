// Package styles provides the colour theme and styling for the ask session.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for the session.
type Theme struct {
	// Accent is the colour for the session title and questions.
	Accent lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for provenance and help text.
	Muted lipgloss.Color

	// Success indicates completed background work.
	Success lipgloss.Color

	// Error indicates failed answers or re-indexing.
	Error lipgloss.Color

	// Border frames the question input.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:     lipgloss.Color("#2DD4BF"), // Teal
		Foreground: lipgloss.Color("#E6EDF3"), // Off-white
		Muted:      lipgloss.Color("#768390"), // Slate gray
		Success:    lipgloss.Color("#57AB5A"), // Green
		Error:      lipgloss.Color("#E5534B"), // Red
		Border:     lipgloss.Color("#3D444D"), // Border gray
	}
}

// Styles contains the pre-configured lipgloss styles the ask session
// renders with. Only what the session actually draws lives here.
type Styles struct {
	theme *Theme

	// Title style for the session header.
	Title lipgloss.Style

	// Subtitle style for the question line.
	Subtitle lipgloss.Style

	// Normal style for answer text.
	Normal lipgloss.Style

	// Muted style for provenance and status text.
	Muted lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// Success style for completion notices.
	Success lipgloss.Style

	// InputField style for the question input.
	InputField lipgloss.Style

	// Help style for the key binding line.
	Help lipgloss.Style
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

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),
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
