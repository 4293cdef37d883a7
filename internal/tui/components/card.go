// Package components provides reusable TUI widgets for the SmartSave dashboard.
package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/smartsavehub/smartsave/internal/cli"
	"github.com/smartsavehub/smartsave/internal/model"
	"github.com/smartsavehub/smartsave/internal/tui/theme"
)

// LayoutRow distributes totalWidth into n widths that sum to exactly totalWidth.
// First items absorb the remainder from integer division.
func LayoutRow(totalWidth, n int) []int {
	if n <= 0 {
		return nil
	}
	base := totalWidth / n
	remainder := totalWidth % n
	widths := make([]int, n)
	for i := range widths {
		widths[i] = base
		if i < remainder {
			widths[i]++
		}
	}
	return widths
}

// Stat is a label/value pair shown in a MetricCard.
type Stat struct {
	Label, Value, Delta string
}

// MetricCard renders a small metric card with label, value, and delta.
// outerWidth is the total rendered width including border.
func MetricCard(s Stat, outerWidth int) string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Width(max(10, outerWidth-2)).
		Padding(0, 1)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	deltaStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	content := labelStyle.Render(s.Label) + "\n" + valueStyle.Render(s.Value)
	if s.Delta != "" {
		content += "\n" + deltaStyle.Render(s.Delta)
	}
	return cardStyle.Render(content)
}

// MetricCardRow renders a row of metric cards side by side.
// totalWidth is the full row width; cards sum to exactly that.
func MetricCardRow(stats []Stat, totalWidth int) string {
	if len(stats) == 0 {
		return ""
	}
	widths := LayoutRow(totalWidth, len(stats))
	rendered := make([]string, 0, len(stats))
	for i, s := range stats {
		rendered = append(rendered, MetricCard(s, widths[i]))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// ContentCard renders a bordered content card with an optional title.
// outerWidth controls the total rendered width including border.
func ContentCard(title, body string, outerWidth int) string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Width(max(10, outerWidth-2)).
		Padding(0, 1)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Bold(true)

	content := ""
	if title != "" {
		content = titleStyle.Render(title) + "\n"
	}
	content += body

	return cardStyle.Render(content)
}

// CardInnerWidth returns the usable text width inside a ContentCard
// given its outer width (subtracts border + padding).
func CardInnerWidth(outerWidth int) int {
	return max(10, outerWidth-4)
}

// GoalCardOpts controls how a goal card is drawn.
type GoalCardOpts struct {
	Selected    bool
	ShowHistory bool
	// Highlight marks a card that was just updated by a payment.
	Highlight bool
}

// GoalCard renders one goal: name, progress, saved/target, nudge and optional history.
func GoalCard(g model.Goal, opts GoalCardOpts, outerWidth int) string {
	t := theme.Active
	inner := CardInnerWidth(outerWidth)

	border := t.Border
	switch {
	case g.Completed:
		border = t.Gold
	case opts.Highlight:
		border = t.GreenBright
	case opts.Selected:
		border = t.BorderAccent
	}

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(max(10, outerWidth-2)).
		Padding(0, 1)

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	idxStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	moneyStyle := lipgloss.NewStyle().Foreground(t.Green).Bold(true)
	nudgeStyle := lipgloss.NewStyle().Foreground(t.Orange).Italic(true)

	var b strings.Builder
	marker := "  "
	if opts.Selected {
		marker = lipgloss.NewStyle().Foreground(t.Accent).Render("▸ ")
	}
	b.WriteString(marker + idxStyle.Render("#"+strconv.Itoa(g.Index)+" ") + nameStyle.Render(g.Name))
	if g.Completed {
		b.WriteString("  " + lipgloss.NewStyle().Foreground(t.Gold).Bold(true).Render("🏆 Goal Reached!"))
	}
	b.WriteString("\n")
	b.WriteString(GoalProgress(g.Percent, inner-5))
	b.WriteString("\n")
	b.WriteString(moneyStyle.Render(cli.FormatRupees(g.Saved)) + mutedStyle.Render(" of "+cli.FormatRupees(g.Target)))
	if g.Nudge != "" {
		b.WriteString("\n" + nudgeStyle.Render(g.Nudge))
	}
	if g.Projection != "" && !g.Completed {
		b.WriteString("\n" + mutedStyle.Render("⏳ "+g.Projection))
	}

	if opts.ShowHistory {
		b.WriteString("\n")
		if len(g.History) == 0 {
			b.WriteString(mutedStyle.Render("No transactions yet"))
		}
		for i, h := range g.History {
			if i > 0 {
				b.WriteString("\n")
			}
			when := h.Date
			if h.Time != "" {
				when += " " + h.Time
			}
			b.WriteString(mutedStyle.Render("  "+when) + "  " + moneyStyle.Render("+"+cli.FormatRupees(h.Amount)))
		}
	}

	return cardStyle.Render(b.String())
}
