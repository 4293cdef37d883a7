package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/smartsavehub/smartsave/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar with key hints on the left
// and connection info on the right.
func RenderStatusBar(width int, hints, info string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " " + hints
	right := ""
	if info != "" {
		right = info + " "
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		return style.Render(left)
	}
	return style.Render(left + strings.Repeat(" ", padding) + right)
}
