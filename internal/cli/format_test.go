package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/smartsavehub/smartsave/internal/model"
)

func TestFormatRupees(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "₹0"},
		{500, "₹500"},
		{1000, "₹1,000"},
		{27420, "₹27,420"},
		{100000, "₹1,00,000"},
		{1234567, "₹12,34,567"},
		{-2500, "-₹2,500"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRupees(tt.in))
		})
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "45%", FormatPercent(45))
	assert.Equal(t, "100%", FormatPercent(130))
	assert.Equal(t, "0%", FormatPercent(-3))
}

func TestFormatStreak(t *testing.T) {
	assert.Equal(t, "🔥 1 day streak", FormatStreak(1))
	assert.Equal(t, "🔥 4 day streak", FormatStreak(4))
}

func TestFormatBadges(t *testing.T) {
	assert.Empty(t, FormatBadges(nil))
	assert.Equal(t, "🌱 First Step  💎 Super Saver", FormatBadges([]model.Badge{
		{Icon: "🌱", Name: "First Step"},
		{Icon: "💎", Name: "Super Saver", Desc: "Saved over ₹10,000"},
	}))
	assert.Equal(t, "Goal Crusher", FormatBadges([]model.Badge{{Name: "Goal Crusher"}}))
}

func TestFormatCountdown(t *testing.T) {
	assert.Equal(t, "0s", FormatCountdown(0))
	assert.Equal(t, "6s", FormatCountdown(5200*time.Millisecond))
	assert.Equal(t, "6s", FormatCountdown(6*time.Second))
}

func TestFormatWhen(t *testing.T) {
	now := time.Date(2025, 1, 30, 18, 0, 0, 0, time.UTC)
	assert.Equal(t, "14:05", FormatWhen(time.Date(2025, 1, 30, 14, 5, 0, 0, time.UTC), now))
	assert.Equal(t, "28 Jan 09:30", FormatWhen(time.Date(2025, 1, 28, 9, 30, 0, 0, time.UTC), now))
	assert.Equal(t, "31 Dec 2024", FormatWhen(time.Date(2024, 12, 31, 9, 30, 0, 0, time.UTC), now))
}
