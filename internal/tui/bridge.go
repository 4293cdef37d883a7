package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smartsavehub/smartsave/internal/model"
	"github.com/smartsavehub/smartsave/internal/payflow"
)

// Messages streamed from a running payment flow to the UI loop.
type (
	flowProcessingMsg struct{ op payflow.Operation }
	flowCardMsg       struct {
		index  int
		update model.CardUpdate
	}
	flowReceiptMsg   struct{ receipt model.Receipt }
	flowCloseMsg     struct{}
	flowToastMsg     struct{ text string }
	flowCelebrateMsg struct{ name string }
	flowDoneMsg      struct{ outcome payflow.Outcome }
)

// flowBridge forwards controller callbacks into the Bubble Tea loop.
// Callbacks queue on sub in the order they fire and the UI reads them
// one at a time. A send only blocks once the buffer is full.
type flowBridge struct {
	sub chan tea.Msg
}

func (b flowBridge) ShowProcessing(op payflow.Operation) { b.sub <- flowProcessingMsg{op: op} }

func (b flowBridge) UpdateGoalCard(index int, u model.CardUpdate) {
	b.sub <- flowCardMsg{index: index, update: u}
}

func (b flowBridge) ShowReceipt(r model.Receipt) { b.sub <- flowReceiptMsg{receipt: r} }

func (b flowBridge) CloseOverlay() { b.sub <- flowCloseMsg{} }

func (b flowBridge) Toast(msg string) { b.sub <- flowToastMsg{text: msg} }

func (b flowBridge) Celebrate(name string) { b.sub <- flowCelebrateMsg{name: name} }

// runFlowCmd runs one payment flow in a background goroutine.
// Renderer callbacks and the final flowDoneMsg arrive through sub.
func runFlowCmd(ctx context.Context, ctrl *payflow.Controller, op payflow.Operation, sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		go func() {
			out := ctrl.Run(ctx, op)
			sub <- flowDoneMsg{outcome: out}
		}()
		return <-sub
	}
}

// waitForFlowMsg blocks until the next flow message arrives.
func waitForFlowMsg(sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-sub
	}
}
