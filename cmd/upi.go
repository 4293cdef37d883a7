package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/smartsavehub/smartsave/internal/cli"
	"github.com/smartsavehub/smartsave/internal/logging"
	"github.com/smartsavehub/smartsave/internal/payflow"
	"github.com/smartsavehub/smartsave/internal/tui/theme"
	"github.com/smartsavehub/smartsave/internal/upi"
)

var flagUPIYes bool

var upiCmd = &cobra.Command{
	Use:   "upi <goal-index> <amount>",
	Short: "Show a UPI QR code for a deposit, then record it",
	Args:  cobra.ExactArgs(2),
	RunE:  runUPI,
}

func init() {
	upiCmd.Flags().BoolVarP(&flagUPIYes, "yes", "y", false, "Skip the payment prompt")
	rootCmd.AddCommand(upiCmd)
}

func runUPI(cmd *cobra.Command, args []string) error {
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	amount, err := payflow.ParseAmount(args[1])
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	name := goalName(cmd.Context(), client, index)

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	uri, err := client.UPILink(ctx, index, amount)
	cancel()
	if err != nil || uri == "" {
		logging.L().Debug("server UPI link unavailable, using local URI", zap.Error(err))
		uri = upi.URI(env.cfg.Payments.UPIPayee, env.cfg.Payments.UPIPayeeName, amount)
	}

	dark := env.state.Theme(env.cfg.Appearance.Theme) == theme.NameDark
	code, err := upi.Terminal{Inverse: dark}.Render(uri)
	if err != nil {
		return fmt.Errorf("rendering QR code: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderTitle(fmt.Sprintf("Scan to pay ₹%d", amount)))
	fmt.Fprintln(out, code)
	fmt.Fprintf(out, "  %s\n\n", cli.RenderMuted(uri))

	ok, err := confirm(
		fmt.Sprintf("Payment of ₹%d to %s done?", amount, goalLabel(name, index)),
		"Confirm once your UPI app shows the payment as sent.",
		flagUPIYes,
	)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(out, "  "+cli.RenderMuted("Cancelled."))
		return nil
	}

	return pay(cmd, client, payflow.Operation{GoalIndex: index, Amount: amount, GoalName: name})
}
