package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoalApply_PrependsAndBoundsHistory(t *testing.T) {
	g := Goal{
		Index: 0,
		History: []HistoryItem{
			{Date: "03 Jan", Amount: 30},
			{Date: "02 Jan", Amount: 20},
			{Date: "01 Jan", Amount: 10},
		},
	}

	g.Apply(CardUpdate{
		Percent:     40,
		Saved:       160,
		Nudge:       "25% secured!",
		HistoryItem: &HistoryItem{Date: "04 Jan", Amount: 100},
	})

	require.Len(t, g.History, MaxVisibleHistory)
	assert.Equal(t, HistoryItem{Date: "04 Jan", Amount: 100}, g.History[0])
	assert.Equal(t, "03 Jan", g.History[1].Date)
	assert.Equal(t, "02 Jan", g.History[2].Date)
	assert.Equal(t, 40, g.Percent)
	assert.Equal(t, int64(160), g.Saved)
	assert.Equal(t, "25% secured!", g.Nudge)
}

func TestGoalApply_HistoryNeverExceedsBound(t *testing.T) {
	var g Goal
	for i := 1; i <= 10; i++ {
		g.Apply(CardUpdate{Saved: int64(i), HistoryItem: &HistoryItem{Date: "d", Amount: int64(i)}})
		assert.LessOrEqual(t, len(g.History), MaxVisibleHistory)
		assert.Equal(t, int64(i), g.History[0].Amount, "newest entry must be first")
	}
}

func TestGoalApply_WithoutHistoryKeepsExisting(t *testing.T) {
	g := Goal{History: []HistoryItem{{Date: "01 Jan", Amount: 10}}}
	g.Apply(CardUpdate{Percent: 150, Saved: 10})

	assert.Len(t, g.History, 1)
	assert.Equal(t, 100, g.Percent, "percent is clamped")
}

func TestBoardUpdate_MissingCardIgnored(t *testing.T) {
	b := Board{Goals: []Goal{{Index: 0, Saved: 5}, {Index: 2, Saved: 7}}}

	assert.False(t, b.Update(1, CardUpdate{Saved: 99}))
	assert.Equal(t, int64(5), b.Goals[0].Saved)
	assert.Equal(t, int64(7), b.Goals[1].Saved)

	assert.True(t, b.Update(2, CardUpdate{Saved: 99, IsCompleted: true}))
	assert.Equal(t, int64(99), b.Goals[1].Saved)
	assert.True(t, b.Goals[1].Completed)
	assert.Equal(t, 1, b.CompletedCount())
	assert.Equal(t, int64(104), b.TotalSaved())
}
