package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/smartsavehub/smartsave/internal/tui/theme"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []int64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}

	peak := values[0]
	for _, v := range values[1:] {
		peak = max(peak, v)
	}
	if peak <= 0 {
		peak = 1
	}

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := int(v * int64(len(sparkBlocks)-1) / peak)
		idx = max(0, min(len(sparkBlocks)-1, idx))
		buf.WriteRune(sparkBlocks[idx])
	}

	return lipgloss.NewStyle().Foreground(color).Render(buf.String())
}

// SavingsSparkline renders daily totals with a muted label.
func SavingsSparkline(label string, daily []int64) string {
	t := theme.Active
	return lipgloss.NewStyle().Foreground(t.TextMuted).Render(label+" ") + Sparkline(daily, t.Green)
}
