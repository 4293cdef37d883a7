package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartsavehub/smartsave/internal/cli"
	"github.com/smartsavehub/smartsave/internal/payflow"
)

var flagAddYes bool

var addCmd = &cobra.Command{
	Use:   "add <goal-index> <amount>",
	Short: "Add money to a goal through the simulated payment flow",
	Args:  cobra.ExactArgs(2),
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().BoolVarP(&flagAddYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
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

	ok, err := confirm(
		fmt.Sprintf("Add ₹%d to %s?", amount, goalLabel(name, index)),
		"The payment is simulated; no real money moves.",
		flagAddYes,
	)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "  "+cli.RenderMuted("Cancelled."))
		return nil
	}

	return pay(cmd, client, payflow.Operation{GoalIndex: index, Amount: amount, GoalName: name})
}
