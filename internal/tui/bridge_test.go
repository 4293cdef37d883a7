package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartsavehub/smartsave/internal/model"
	"github.com/smartsavehub/smartsave/internal/payflow"
)

func TestFlowBridge_QueuesInOrder(t *testing.T) {
	sub := make(chan tea.Msg, 8)
	b := flowBridge{sub: sub}

	// No reader yet: every callback lands in the buffer.
	b.ShowProcessing(payflow.Operation{GoalIndex: 1, Amount: 20})
	b.UpdateGoalCard(1, model.CardUpdate{Percent: 12})
	b.ShowReceipt(model.Receipt{TxnID: "TXN00000001"})
	b.Toast("Saved ₹20!")
	b.Celebrate("Bike")
	require.Len(t, sub, 5)

	assert.Equal(t, flowProcessingMsg{op: payflow.Operation{GoalIndex: 1, Amount: 20}}, <-sub)
	assert.Equal(t, flowCardMsg{index: 1, update: model.CardUpdate{Percent: 12}}, <-sub)
	assert.Equal(t, flowReceiptMsg{receipt: model.Receipt{TxnID: "TXN00000001"}}, <-sub)
	assert.Equal(t, flowToastMsg{text: "Saved ₹20!"}, <-sub)
	assert.Equal(t, flowCelebrateMsg{name: "Bike"}, <-sub)
}
