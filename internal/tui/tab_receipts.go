package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/smartsavehub/smartsave/internal/cli"
	"github.com/smartsavehub/smartsave/internal/model"
	"github.com/smartsavehub/smartsave/internal/tui/components"
	"github.com/smartsavehub/smartsave/internal/tui/theme"
)

const sparkDays = 14

func (a App) renderReceiptsTab(cw int) string {
	t := theme.Active
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	if len(a.receipts) == 0 {
		return components.ContentCard("Receipts",
			mutedStyle.Render("No payments yet. Saved amounts show up here with their transaction ids."), cw)
	}

	now := time.Now()
	var total int64
	for _, r := range a.receipts {
		total += r.Amount
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Stat{
		{Label: "Payments", Value: cli.FormatNumber(int64(len(a.receipts)))},
		{Label: "Amount", Value: cli.FormatRupees(total)},
	}, cw))
	b.WriteString("\n")
	b.WriteString(components.SavingsSparkline("Last 14 days", dailyTotals(a.receipts, now, sparkDays)))
	b.WriteString("\n\n")

	idStyle := lipgloss.NewStyle().Foreground(t.Accent)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	moneyStyle := lipgloss.NewStyle().Foreground(t.Green).Bold(true)
	headerStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Bold(true)

	nameW := max(8, cw-42)
	b.WriteString(headerStyle.Render(pad("Txn", 13) + pad("Goal", nameW) + pad("When", 14) + "Amount"))
	b.WriteString("\n")
	for _, r := range a.receipts {
		b.WriteString(idStyle.Render(pad(r.TxnID, 13)))
		b.WriteString(nameStyle.Render(pad(truncStr(r.GoalName, nameW-2), nameW)))
		b.WriteString(mutedStyle.Render(pad(cli.FormatWhen(r.At, now), 14)))
		b.WriteString(moneyStyle.Render("+" + cli.FormatRupees(r.Amount)))
		b.WriteString("\n")
	}
	return components.ContentCard("Receipts", strings.TrimRight(b.String(), "\n"), cw)
}

// dailyTotals sums receipt amounts per local day, oldest first, ending today.
func dailyTotals(receipts []model.Receipt, now time.Time, days int) []int64 {
	totals := make([]int64, days)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for _, r := range receipts {
		at := r.At.In(now.Location())
		day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, now.Location())
		ago := int(today.Sub(day).Hours() / 24)
		if ago >= 0 && ago < days {
			totals[days-1-ago] += r.Amount
		}
	}
	return totals
}

func pad(s string, w int) string {
	if n := lipgloss.Width(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
