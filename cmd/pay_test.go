package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smartsavehub/smartsave/internal/model"
	"github.com/smartsavehub/smartsave/internal/payflow"
)

func TestConsoleRenderer_Success(t *testing.T) {
	var buf bytes.Buffer
	r := &consoleRenderer{out: &buf}

	r.ShowProcessing(payflow.Operation{GoalIndex: 1, Amount: 250, GoalName: "Laptop"})
	r.UpdateGoalCard(1, model.CardUpdate{Percent: 40, Saved: 400})
	r.ShowReceipt(model.Receipt{TxnID: "TXN12345678", GoalName: "Laptop", Amount: 250, Time: "14:05"})
	r.Toast("Saved ₹250! Keep going!")

	out := buf.String()
	assert.Contains(t, out, "Processing ₹250 for Laptop...")
	assert.Contains(t, out, "40%")
	assert.Contains(t, out, "TXN12345678")
	assert.Contains(t, out, "₹250")
	assert.Contains(t, out, "✓ Saved ₹250! Keep going!")
}

func TestConsoleRenderer_FailureToastIsError(t *testing.T) {
	var buf bytes.Buffer
	r := &consoleRenderer{out: &buf}

	r.ShowProcessing(payflow.Operation{GoalIndex: 0, Amount: 10})
	r.CloseOverlay()
	r.Toast(payflow.NetworkErrorMessage)

	assert.Contains(t, buf.String(), "goal #0")
	assert.Contains(t, buf.String(), "✗ "+payflow.NetworkErrorMessage)
}

func TestConsoleRenderer_QuietKeepsOutcome(t *testing.T) {
	var buf bytes.Buffer
	r := &consoleRenderer{out: &buf, quiet: true}

	r.ShowProcessing(payflow.Operation{GoalIndex: 0, Amount: 10})
	r.UpdateGoalCard(0, model.CardUpdate{Percent: 10})
	r.Celebrate("Bike")
	assert.Empty(t, buf.String())

	r.Toast("Saved ₹10!")
	assert.Contains(t, buf.String(), "Saved ₹10!")
}

func TestParseIndex(t *testing.T) {
	i, err := parseIndex("3")
	assert.NoError(t, err)
	assert.Equal(t, 3, i)

	for _, bad := range []string{"-1", "x", ""} {
		_, err := parseIndex(bad)
		assert.Error(t, err, bad)
	}
}

func TestGoalLabel(t *testing.T) {
	assert.Equal(t, "goal #2", goalLabel("", 2))
	assert.Equal(t, `"Bike"`, goalLabel("Bike", 2))
}
