package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette. Each color has a light and a dark terminal variant.
var (
	PrimaryColor = lipgloss.AdaptiveColor{Light: "#1F6FB2", Dark: "#6CB6FF"}
	SuccessColor = lipgloss.AdaptiveColor{Light: "#2E8540", Dark: "#57D37A"}
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#FF7B72"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#B7791F", Dark: "#F2CC60"}
	HeadingColor = lipgloss.AdaptiveColor{Light: "#1B1F24", Dark: "#F0F3F6"}
	MutedColor   = lipgloss.AdaptiveColor{Light: "#6E7781", Dark: "#9198A1"}
)
