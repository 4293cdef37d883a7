// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/smartsavehub/smartsave/internal/model"
)

// FormatRupees formats whole rupees with Indian digit grouping.
// e.g., 500 -> "₹500", 100000 -> "₹1,00,000"
func FormatRupees(n int64) string {
	if n < 0 {
		return "-₹" + FormatNumber(-n)
	}
	return "₹" + FormatNumber(n)
}

// FormatNumber groups digits the Indian way: the last three, then pairs.
// e.g., 1234567 -> "12,34,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	head, tail := s[:len(s)-3], s[len(s)-3:]
	var result strings.Builder
	lead := len(head) % 2
	if lead > 0 {
		result.WriteString(head[:lead])
	}
	for i := lead; i < len(head); i += 2 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(head[i : i+2])
	}
	result.WriteByte(',')
	result.WriteString(tail)
	return result.String()
}

// FormatPercent formats a whole percentage clamped to 0..100.
func FormatPercent(p int) string {
	return fmt.Sprintf("%d%%", max(0, min(100, p)))
}

// FormatStreak formats a saving streak.
func FormatStreak(days int) string {
	if days == 1 {
		return "🔥 1 day streak"
	}
	return fmt.Sprintf("🔥 %d day streak", days)
}

// FormatBadges lists badges as "icon name" pairs on one line.
func FormatBadges(badges []model.Badge) string {
	parts := make([]string, 0, len(badges))
	for _, b := range badges {
		parts = append(parts, strings.TrimSpace(b.Icon+" "+b.Name))
	}
	return strings.Join(parts, "  ")
}

// FormatCountdown formats a remaining duration in whole seconds.
// e.g., 5.2s -> "6s", 0 -> "0s"
func FormatCountdown(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	secs := int64((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%ds", secs)
}

// FormatWhen formats a receipt timestamp relative to now.
// Same-day entries show the time only.
func FormatWhen(t, now time.Time) string {
	y1, m1, d1 := t.Date()
	y2, m2, d2 := now.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return t.Format("15:04")
	}
	if y1 == y2 {
		return t.Format("02 Jan 15:04")
	}
	return t.Format("02 Jan 2006")
}
