package model

import "time"

// Receipt is the synthetic confirmation shown after a simulated payment.
type Receipt struct {
	TxnID     string
	GoalIndex int
	GoalName  string
	Amount    int64
	Time      string // wall clock truncated to HH:MM
	At        time.Time
}
