// Package styles contains Lip Gloss style definitions for terminal output.
package styles

import "github.com/charmbracelet/lipgloss"

// Colors adapt to light and dark terminals.
var (
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#1F2328", Dark: "#E6EDF3"}
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#6E7781", Dark: "#8B949E"}
	AccentColor        = lipgloss.AdaptiveColor{Light: "#0969DA", Dark: "#54A0FF"}
	SuccessColor       = lipgloss.AdaptiveColor{Light: "#1A7F37", Dark: "#73F59F"}
	WarningColor       = lipgloss.AdaptiveColor{Light: "#9A6700", Dark: "#FECA57"}
	ErrorColor         = lipgloss.AdaptiveColor{Light: "#CF222E", Dark: "#FF8787"}
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D0D7DE", Dark: "#444C56"}
)

var (
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(AccentColor)
	TextStyle    = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	MutedStyle   = lipgloss.NewStyle().Foreground(TextMutedColor)
	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor)
	ErrorStyle   = lipgloss.NewStyle().Bold(true).Foreground(ErrorColor)

	DiffAddStyle  = lipgloss.NewStyle().Foreground(SuccessColor)
	DiffDelStyle  = lipgloss.NewStyle().Foreground(ErrorColor)
	DiffHunkStyle = lipgloss.NewStyle().Foreground(AccentColor)
)
