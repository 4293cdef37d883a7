package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/smartsavehub/smartsave/internal/tui/theme"
)

// ColorForPct returns the bar color for a goal's progress.
func ColorForPct(percent int) lipgloss.Color {
	t := theme.Active
	switch {
	case percent >= 100:
		return t.Gold
	case percent >= 75:
		return t.GreenBright
	case percent >= 25:
		return t.Green
	default:
		return t.Accent
	}
}

// GoalProgress renders a goal progress bar followed by its percentage.
func GoalProgress(percent, width int) string {
	t := theme.Active
	percent = max(0, min(100, percent))
	color := ColorForPct(percent)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(max(4, width)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.Border)

	pctStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	return bar.ViewAs(float64(percent)/100) + " " + pctStyle.Render(fmt.Sprintf("%3d%%", percent))
}

// CountdownBar renders a bar that shrinks as remaining runs down from total.
func CountdownBar(remaining, total time.Duration, width int) string {
	t := theme.Active
	frac := 0.0
	if total > 0 && remaining > 0 {
		frac = min(1, float64(remaining)/float64(total))
	}

	bar := progress.New(
		progress.WithSolidFill(string(t.AccentBright)),
		progress.WithWidth(max(4, width)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.SurfaceBright)
	return bar.ViewAs(frac)
}
