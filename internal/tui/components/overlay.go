package components

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/smartsavehub/smartsave/internal/tui/theme"
)

// ToastDuration is how long a toast stays on screen.
const ToastDuration = 3 * time.Second

// RenderModal renders a centered dialog box with a title, body and key hints.
func RenderModal(title, body, hints string, width int) string {
	t := theme.Active

	boxW := min(max(30, width-8), 56)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2).
		Width(boxW)

	titleStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	content := titleStyle.Render(title) + "\n\n" + body
	if hints != "" {
		content += "\n\n" + hintStyle.Render(hints)
	}
	return box.Render(content)
}

// RenderToast renders a one-line notification pill.
func RenderToast(text string, width int) string {
	t := theme.Active
	return lipgloss.NewStyle().
		Foreground(t.TextPrimary).
		Background(t.AccentDim).
		Bold(true).
		Padding(0, 2).
		MaxWidth(max(10, width-2)).
		Render(text)
}
