package api

import "github.com/smartsavehub/smartsave/internal/model"

// AddMoneyResult is the JSON response from POST /add-money/{index}.
type AddMoneyResult struct {
	Success     bool               `json:"success"`
	Percent     int                `json:"percent"`
	Saved       int64              `json:"saved"`
	Target      int64              `json:"target"`
	Nudge       string             `json:"nudge"`
	IsCompleted bool               `json:"is_completed"`
	Name        string             `json:"name"`
	Streak      int                `json:"streak"`
	HistoryItem *model.HistoryItem `json:"history_item,omitempty"`
	Error       string             `json:"error,omitempty"`
}

// CardUpdate extracts the fields the goal card renders.
func (r AddMoneyResult) CardUpdate() model.CardUpdate {
	return model.CardUpdate{
		Percent:     r.Percent,
		Saved:       r.Saved,
		Nudge:       r.Nudge,
		IsCompleted: r.IsCompleted,
		HistoryItem: r.HistoryItem,
	}
}

type addMoneyRequest struct {
	Amount int64 `json:"amount"`
}

// statusResponse covers delete-goal and any error body.
type statusResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type upiLinkResponse struct {
	Success bool   `json:"success"`
	UPIURI  string `json:"upi_uri"`
}
