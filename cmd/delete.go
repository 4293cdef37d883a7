package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/smartsavehub/smartsave/internal/cli"
	"github.com/smartsavehub/smartsave/internal/logging"
	"github.com/smartsavehub/smartsave/internal/tui"
)

var flagDeleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete <goal-index>",
	Short: "Delete a goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&flagDeleteYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	name := goalName(cmd.Context(), client, index)

	ok, err := confirm(
		fmt.Sprintf("Delete %s?", goalLabel(name, index)),
		"Are you sure you want to delete this goal? This cannot be undone.",
		flagDeleteYes,
	)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "  "+cli.RenderMuted("Cancelled."))
		return nil
	}

	if err := client.DeleteGoal(cmd.Context(), index); err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}
	if err := env.state.SetPendingToast(tui.GoalRemovedToast); err != nil {
		logging.L().Warn("persisting pending toast", zap.Error(err))
	}
	progressf("  %s\n", cli.RenderMuted(fmt.Sprintf("Deleted goal #%d.", index)))
	return nil
}
