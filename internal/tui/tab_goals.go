package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/smartsavehub/smartsave/internal/cli"
	"github.com/smartsavehub/smartsave/internal/tui/components"
	"github.com/smartsavehub/smartsave/internal/tui/theme"
)

func (a App) renderGoalsTab(cw, h int) string {
	t := theme.Active
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	if a.loadErr != nil && a.board == nil {
		errStyle := lipgloss.NewStyle().Foreground(t.Red).Bold(true)
		return components.ContentCard("Could not load goals",
			errStyle.Render(errorText(a.loadErr))+"\n"+mutedStyle.Render("Press r to retry."), cw)
	}
	if a.board == nil || len(a.board.Goals) == 0 {
		return components.ContentCard("Goals",
			mutedStyle.Render("No goals yet. Create one on the SmartSave Hub web page, then press r."), cw)
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Stat{
		{Label: "Total saved", Value: cli.FormatRupees(a.board.TotalSaved())},
		{Label: "Goals", Value: fmt.Sprintf("%d", len(a.board.Goals)),
			Delta: fmt.Sprintf("%d completed", a.board.CompletedCount())},
		{Label: "Streak", Value: fmt.Sprintf("%d days", a.board.Streak)},
	}, cw))
	b.WriteString("\n")
	if a.board.Reminder != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(t.Orange).Bold(true).Render("  "+a.board.Reminder) + "\n")
	}
	if len(a.board.Badges) > 0 {
		b.WriteString(mutedStyle.Render("  Badges  ") + cli.FormatBadges(a.board.Badges) + "\n")
	}

	cards := make([]string, 0, len(a.board.Goals))
	for i, g := range a.board.Goals {
		cards = append(cards, components.GoalCard(g, components.GoalCardOpts{
			Selected:    i == a.cursor,
			ShowHistory: a.expanded[g.Index],
			Highlight:   g.Index == a.highlight,
		}, cw))
	}

	// Keep the selected card in view by dropping cards above it.
	used := lipgloss.Height(b.String())
	start := 0
	for start < a.cursor {
		height := 0
		for _, c := range cards[start : a.cursor+1] {
			height += lipgloss.Height(c)
		}
		if used+height <= h {
			break
		}
		start++
	}
	b.WriteString(strings.Join(cards[start:], "\n"))
	return b.String()
}
