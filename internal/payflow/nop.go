package payflow

import "github.com/smartsavehub/smartsave/internal/model"

// NopRenderer discards all flow output.
type NopRenderer struct{}

func (NopRenderer) ShowProcessing(Operation) {}
func (NopRenderer) ShowReceipt(model.Receipt) {}
func (NopRenderer) CloseOverlay() {}
func (NopRenderer) UpdateGoalCard(int, model.CardUpdate) {}
func (NopRenderer) Toast(string) {}

// NopCelebrator is used when no celebration capability exists.
type NopCelebrator struct{}

func (NopCelebrator) Celebrate(string) {}

type nopPrefs struct{}

func (nopPrefs) SetJustCompleted(string) error { return nil }

type nopLedger struct{}

func (nopLedger) SaveReceipt(model.Receipt) error { return nil }
