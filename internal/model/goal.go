// Package model defines the goal card snapshot the client renders and patches.
package model

// MaxVisibleHistory bounds the transactions shown on a goal card.
// Older entries are dropped client-side only; the server keeps them.
const MaxVisibleHistory = 3

// HistoryItem is a single deposit shown on a goal card.
type HistoryItem struct {
	Date   string `json:"date"`
	Amount int64  `json:"amount"`
	Time   string `json:"time,omitempty"`
}

// Goal is the client-side snapshot of one goal card.
// The server owns saved amounts and percentages; the client never computes them.
type Goal struct {
	Index     int
	Name      string
	Saved     int64
	Target    int64
	Percent   int // 0-100
	Nudge     string
	History   []HistoryItem // newest first, at most MaxVisibleHistory
	Completed bool

	// Projection is the server's time-to-target estimate as of the last page load.
	Projection string
}

// CardUpdate is the subset of an add-money response applied to a goal card.
type CardUpdate struct {
	Percent     int
	Saved       int64
	Nudge       string
	IsCompleted bool
	HistoryItem *HistoryItem
}

// Apply patches the card in place with a successful server response.
func (g *Goal) Apply(u CardUpdate) {
	g.Percent = clampPercent(u.Percent)
	g.Saved = u.Saved
	g.Nudge = u.Nudge
	if u.IsCompleted {
		g.Completed = true
	}

	if u.HistoryItem == nil {
		return
	}
	history := make([]HistoryItem, 0, MaxVisibleHistory)
	history = append(history, *u.HistoryItem)
	history = append(history, g.History...)
	if len(history) > MaxVisibleHistory {
		history = history[:MaxVisibleHistory]
	}
	g.History = history
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Board is the set of goal cards currently on screen.
type Board struct {
	Goals    []Goal
	Streak   int
	Badges   []Badge
	Reminder string // empty when the saver is on track
}

// Badge is an achievement earned across all goals.
type Badge struct {
	Icon string
	Name string
	Desc string
}

// Find returns the card with the given index, or nil.
func (b *Board) Find(index int) *Goal {
	for i := range b.Goals {
		if b.Goals[i].Index == index {
			return &b.Goals[i]
		}
	}
	return nil
}

// Update applies u to the card with the given index.
// A missing card is ignored and reported as false.
func (b *Board) Update(index int, u CardUpdate) bool {
	g := b.Find(index)
	if g == nil {
		return false
	}
	g.Apply(u)
	return true
}

// TotalSaved sums saved amounts across all cards.
func (b *Board) TotalSaved() int64 {
	var total int64
	for _, g := range b.Goals {
		total += g.Saved
	}
	return total
}

// CompletedCount returns how many cards have reached their target.
func (b *Board) CompletedCount() int {
	n := 0
	for _, g := range b.Goals {
		if g.Completed || (g.Target > 0 && g.Saved >= g.Target) {
			n++
		}
	}
	return n
}
