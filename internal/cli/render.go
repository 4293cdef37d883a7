package cli

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/smartsavehub/smartsave/internal/model"
)

// Palette shared by CLI output.
var (
	ColorBorder    = lipgloss.Color("#3A3A4A")
	ColorTextDim   = lipgloss.Color("#6C6C80")
	ColorTextMuted = lipgloss.Color("#8E8EA0")
	ColorText      = lipgloss.Color("#F4F4F8")
	ColorAccent    = lipgloss.Color("#6C5CE7")
	ColorGreen     = lipgloss.Color("#00B894")
	ColorOrange    = lipgloss.Color("#E17055")
	ColorRed       = lipgloss.Color("#D63031")
	ColorGold      = lipgloss.Color("#FDCB6E")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	moneyStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	warnStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	goldStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorGold)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	width := 55
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(width).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table with headers and rows.
// Cells are measured by display width so currency symbols and emoji line up.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}

	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
	} else {
		for i, h := range t.Headers {
			widths[i] = max(widths[i], lipgloss.Width(h))
		}
		for _, row := range t.Rows {
			for i, cell := range row {
				if i < numCols {
					widths[i] = max(widths[i], lipgloss.Width(cell))
				}
			}
		}
	}

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	rule := func(left, mid, right string) {
		b.WriteString(dimStyle.Render(left))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render(mid))
			}
		}
		b.WriteString(dimStyle.Render(right))
		b.WriteString("\n")
	}

	rule("╭", "┬", "╮")

	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(" " + padRight(h, widths[i]) + " "))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
		rule("├", "┼", "┤")
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			rule("├", "┼", "┤")
			continue
		}

		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}

			// Right-align all columns except the first.
			var padded string
			if i == 0 {
				padded = " " + padRight(cell, widths[i]) + " "
			} else {
				padded = " " + padLeft(cell, widths[i]) + " "
			}
			b.WriteString(valueStyle.Render(padded))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}

	rule("╰", "┴", "╯")

	return b.String()
}

func padRight(s string, w int) string {
	if n := lipgloss.Width(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}

func padLeft(s string, w int) string {
	if n := lipgloss.Width(s); n < w {
		return strings.Repeat(" ", w-n) + s
	}
	return s
}

// RenderProgressBar renders a text progress bar for a 0..100 percentage.
func RenderProgressBar(percent, width int) string {
	if width <= 0 {
		return ""
	}
	percent = max(0, min(100, percent))
	filled := percent * width / 100

	fill, rest := strings.Repeat("█", filled), strings.Repeat("░", width-filled)
	if percent >= 100 {
		return goldStyle.Render(fill)
	}
	return moneyStyle.Render(fill) + mutedStyle.Render(rest)
}

// RenderGoal renders a goal as a compact multi-line block for CLI output.
func RenderGoal(g model.Goal, barWidth int) string {
	var b strings.Builder

	name := valueStyle.Bold(true).Render(g.Name)
	if g.Completed {
		name += " " + goldStyle.Render("🏆 Goal Reached!")
	}
	b.WriteString(mutedStyle.Render("#" + strconv.Itoa(g.Index) + " "))
	b.WriteString(name)
	b.WriteString("\n   ")
	b.WriteString(RenderProgressBar(g.Percent, barWidth))
	b.WriteString(" ")
	b.WriteString(FormatPercent(g.Percent))
	b.WriteString("\n   ")
	b.WriteString(moneyStyle.Render(FormatRupees(g.Saved)))
	b.WriteString(mutedStyle.Render(" of " + FormatRupees(g.Target)))
	if g.Nudge != "" && !g.Completed {
		b.WriteString("\n   ")
		b.WriteString(warnStyle.Render(g.Nudge))
	}
	if g.Projection != "" && !g.Completed {
		b.WriteString("\n   ")
		b.WriteString(dimStyle.Render("⏳ " + g.Projection))
	}
	for _, h := range g.History {
		b.WriteString("\n     ")
		b.WriteString(dimStyle.Render(h.Date + " " + h.Time))
		b.WriteString(" ")
		b.WriteString(moneyStyle.Render("+" + FormatRupees(h.Amount)))
	}
	b.WriteString("\n")
	return b.String()
}

// RenderError renders a one-line failure message.
func RenderError(msg string) string {
	return lipgloss.NewStyle().Foreground(ColorRed).Render("✗ " + msg)
}

// RenderSuccess renders a one-line success message.
func RenderSuccess(msg string) string {
	return moneyStyle.Render("✓ " + msg)
}

// RenderWarning renders a nudge the user should act on.
func RenderWarning(msg string) string {
	return warnStyle.Render(msg)
}

// RenderMuted renders secondary text.
func RenderMuted(s string) string {
	return mutedStyle.Render(s)
}
