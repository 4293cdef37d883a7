package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/smartsavehub/smartsave/internal/cli"
	"github.com/smartsavehub/smartsave/internal/tui/components"
	"github.com/smartsavehub/smartsave/internal/tui/theme"
)

func (a App) goalName() string {
	if g := a.selectedGoal(); g != nil {
		return g.Name
	}
	return ""
}

// renderModal draws the dialog for the current interaction mode.
func (a App) renderModal(cw int) string {
	t := theme.Active
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	amountStyle := lipgloss.NewStyle().Foreground(t.Green).Bold(true)

	var box string
	switch a.mode {
	case modeAmount:
		body := mutedStyle.Render("How much would you like to add to ") +
			lipgloss.NewStyle().Bold(true).Render(a.goalName()) + mutedStyle.Render("?") +
			"\n\n" + a.amountIn.View()
		if a.amountErr != "" {
			body += "\n" + lipgloss.NewStyle().Foreground(t.Red).Render(a.amountErr)
		}
		title := "Add money"
		if a.upiNext {
			title = "Pay by UPI"
		}
		box = components.RenderModal(title, body, "enter continue · esc cancel", cw)

	case modeConfirm:
		op, _ := a.pending.Get(a.flowIndex())
		// The amount is shown exactly as entered so it matches what is sent.
		body := mutedStyle.Render("Add ") + amountStyle.Render(fmt.Sprintf("₹%d", op.Amount)) +
			mutedStyle.Render(" to ") + lipgloss.NewStyle().Bold(true).Render(a.goalName()) + mutedStyle.Render("?")
		box = components.RenderModal("Confirm payment", body, "y confirm · u pay by UPI · n cancel", cw)

	case modeUPI:
		op, _ := a.pending.Get(a.flowIndex())
		var body strings.Builder
		body.WriteString(mutedStyle.Render("Scan with any UPI app to pay "))
		body.WriteString(amountStyle.Render(fmt.Sprintf("₹%d", op.Amount)))
		body.WriteString("\n\n")
		if a.upiCode != "" {
			body.WriteString(a.upiCode)
		} else {
			body.WriteString(mutedStyle.Render(a.upiURI))
		}
		box = components.RenderModal("Pay by UPI", body.String(), "y I have paid · n cancel", max(cw, 60))

	case modeDelete:
		body := mutedStyle.Render("Delete ") + lipgloss.NewStyle().Bold(true).Render(a.goalName()) +
			mutedStyle.Render("? Saved progress and history will be removed.")
		box = components.RenderModal("Delete goal", body, "y delete · n keep", cw)
	}
	return lipgloss.PlaceHorizontal(cw, lipgloss.Center, box)
}

func (a App) flowIndex() int {
	if g := a.selectedGoal(); g != nil {
		return g.Index
	}
	return -1
}

// renderOverlay draws the payment overlay: a spinner while processing, then the receipt.
func (a App) renderOverlay(cw int) string {
	t := theme.Active
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	amountStyle := lipgloss.NewStyle().Foreground(t.Green).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var box string
	switch a.overlay {
	case overlayProcessing:
		body := a.spinner.View() + mutedStyle.Render(" Processing payment of ") +
			amountStyle.Render(cli.FormatRupees(a.flowOp.Amount)) +
			"\n\n" + components.CountdownBar(time.Until(a.processEnd), a.ctrl.LastDelay(), 30) +
			" " + labelStyle.Render("Contacting your bank…")
		box = components.RenderModal("Processing", body, "please wait", cw)

	case overlayReceipt:
		r := a.receipt
		rows := []struct{ label, value string }{
			{"Transaction", r.TxnID},
			{"Goal", r.GoalName},
			{"Amount", amountStyle.Render(cli.FormatRupees(r.Amount))},
			{"Time", r.Time},
		}
		var body strings.Builder
		body.WriteString(lipgloss.NewStyle().Foreground(t.GreenBright).Bold(true).Render("✓ Payment successful"))
		body.WriteString("\n\n")
		for _, row := range rows {
			body.WriteString(labelStyle.Render(fmt.Sprintf("%-12s", row.label)))
			body.WriteString(row.value)
			body.WriteString("\n")
		}
		remaining := time.Until(a.receiptEnd)
		body.WriteString("\n")
		body.WriteString(components.CountdownBar(remaining, a.receiptTimeout(), 30))
		body.WriteString(" ")
		body.WriteString(labelStyle.Render(cli.FormatCountdown(remaining)))
		box = components.RenderModal("Receipt", body.String(), "enter close", cw)
	}
	return lipgloss.PlaceHorizontal(cw, lipgloss.Center, box)
}
