// Package style holds the lipgloss styles used by the scanwatch CLI.
package style

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	// Paths and rule names in tables
	PathStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Italic(true)
)

var (
	MatchIndicator   = SuccessStyle.Render("✓")
	NoMatchIndicator = MutedStyle.Render("-")
	InvalidIndicator = ErrorStyle.Render("✗")
)

// GetStyle returns a style by name, falling back to an unstyled one
func GetStyle(name string) lipgloss.Style {
	switch name {
	case "Error":
		return ErrorStyle
	case "Warning":
		return WarningStyle
	case "Success":
		return SuccessStyle
	case "Muted":
		return MutedStyle
	case "Path":
		return PathStyle
	case "Title":
		return TitleStyle
	default:
		return lipgloss.NewStyle()
	}
}

// Indicator returns the marker for a match result
func Indicator(matched bool, err error) string {
	switch {
	case err != nil:
		return InvalidIndicator
	case matched:
		return MatchIndicator
	default:
		return NoMatchIndicator
	}
}
