package components

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartsavehub/smartsave/internal/model"
	"github.com/smartsavehub/smartsave/internal/tui/theme"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestLayoutRow(t *testing.T) {
	assert.Equal(t, []int{34, 33, 33}, LayoutRow(100, 3))
	assert.Nil(t, LayoutRow(10, 0))
}

func TestGoalCard(t *testing.T) {
	theme.SetActive(theme.NameLight)
	g := model.Goal{
		Index: 1, Name: "Goa Trip", Saved: 1200, Target: 5000, Percent: 24,
		Nudge:      "Every rupee counts!",
		History:    []model.HistoryItem{{Date: "30 Jan", Time: "10:15", Amount: 200}},
		Projection: "~12 days to go",
	}

	collapsed := GoalCard(g, GoalCardOpts{Selected: true}, 50)
	assert.Contains(t, collapsed, "Goa Trip")
	assert.Contains(t, collapsed, "₹1,200")
	assert.Contains(t, collapsed, "₹5,000")
	assert.Contains(t, collapsed, "~12 days to go")
	assert.NotContains(t, collapsed, "+₹200")

	expanded := GoalCard(g, GoalCardOpts{ShowHistory: true}, 50)
	assert.Contains(t, expanded, "+₹200")
	assert.Greater(t, strings.Count(expanded, "\n"), strings.Count(collapsed, "\n"))

	for _, l := range strings.Split(expanded, "\n") {
		assert.Equal(t, 50, lipgloss.Width(l))
	}
}

func TestGoalCard_Completed(t *testing.T) {
	out := GoalCard(model.Goal{
		Name: "Bike", Saved: 10, Target: 10, Percent: 100, Completed: true, Projection: "Goal Reached!",
	}, GoalCardOpts{}, 40)
	assert.Contains(t, out, "Goal Reached")
	assert.NotContains(t, out, "⏳")
}

func TestGoalProgress_Clamps(t *testing.T) {
	assert.Contains(t, GoalProgress(140, 20), "100%")
	assert.Contains(t, GoalProgress(-1, 20), "  0%")
}

func TestRenderStatusBar(t *testing.T) {
	out := RenderStatusBar(40, "[q]uit", "127.0.0.1")
	assert.Equal(t, 40, lipgloss.Width(out))
	assert.True(t, strings.HasSuffix(strings.TrimRight(out, " "), "127.0.0.1"))
}

func TestTabIdxByKey(t *testing.T) {
	assert.Equal(t, 0, TabIdxByKey('g'))
	assert.Equal(t, 1, TabIdxByKey('e'))
	assert.Equal(t, -1, TabIdxByKey('z'))
}

func TestConfetti_Finishes(t *testing.T) {
	c := NewConfetti(40, 4, rand.New(rand.NewPCG(1, 1)))
	require.False(t, c.Done())
	assert.Len(t, strings.Split(c.View(), "\n"), 4)
	for range ConfettiFrames {
		c.Step()
	}
	assert.True(t, c.Done())
	assert.Empty(t, c.View())

	var none *Confetti
	assert.True(t, none.Done())
}

func TestCountdownBar(t *testing.T) {
	assert.Equal(t, 20, lipgloss.Width(CountdownBar(3*time.Second, 6*time.Second, 20)))
	assert.Equal(t, 20, lipgloss.Width(CountdownBar(0, 0, 20)))
}

func TestSparkline(t *testing.T) {
	assert.Equal(t, "▁▄█", Sparkline([]int64{0, 50, 100}, "#000000"))
	assert.Empty(t, Sparkline(nil, "#000000"))
}
