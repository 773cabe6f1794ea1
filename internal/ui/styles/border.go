package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Border characters (rounded)
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// RenderPanel renders content in a rounded box of the given outer width
// with title embedded in the top border. The box grows to fit the content.
func RenderPanel(content, title string, width int) string {
	borderStyle := lipgloss.NewStyle().Foreground(BorderDefaultColor)
	innerWidth := max(width-2, 1)

	body := lipgloss.NewStyle().Width(innerWidth).Render(content)
	lines := strings.Split(body, "\n")

	var b strings.Builder
	b.WriteString(buildTopBorder(title, innerWidth, borderStyle, TitleStyle))
	b.WriteString("\n")
	for _, line := range lines {
		if w := lipgloss.Width(line); w < innerWidth {
			line += strings.Repeat(" ", innerWidth-w)
		}
		b.WriteString(borderStyle.Render(borderVertical) + line + borderStyle.Render(borderVertical))
		b.WriteString("\n")
	}
	b.WriteString(borderStyle.Render(borderBottomLeft + strings.Repeat(borderHorizontal, innerWidth) + borderBottomRight))
	return b.String()
}

// buildTopBorder creates the top border with embedded title:
// ╭─ Title ──────╮
func buildTopBorder(title string, innerWidth int, borderStyle, titleStyle lipgloss.Style) string {
	// "─ " before and " ─" after the title, at minimum.
	if title == "" || innerWidth < 4 {
		return borderStyle.Render(borderTopLeft + strings.Repeat(borderHorizontal, innerWidth) + borderTopRight)
	}

	display := TruncateString(title, innerWidth-4)
	remaining := max(innerWidth-3-lipgloss.Width(display), 0)

	return borderStyle.Render(borderTopLeft+borderHorizontal+" ") +
		titleStyle.Render(display) +
		borderStyle.Render(" "+strings.Repeat(borderHorizontal, remaining)+borderTopRight)
}

// TruncateString truncates a string to fit within maxWidth, adding ellipsis if needed.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}

	result := ""
	for _, r := range s {
		test := result + string(r)
		if lipgloss.Width(test) > maxWidth-3 {
			break
		}
		result = test
	}
	return result + "..."
}
