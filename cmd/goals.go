package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/smartsavehub/smartsave/internal/cli"
	"github.com/smartsavehub/smartsave/internal/logging"
	"github.com/smartsavehub/smartsave/internal/store"
)

var flagGoalsTable bool

var goalsCmd = &cobra.Command{
	Use:     "goals",
	Aliases: []string{"ls"},
	Short:   "List savings goals",
	RunE:    runGoals,
}

func init() {
	goalsCmd.Flags().BoolVar(&flagGoalsTable, "table", false, "Render goals as a single table")
	rootCmd.AddCommand(goalsCmd)
}

func runGoals(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	progressf("  Loading goals from %s...\n", client.BaseURL())

	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()
	board, err := client.FetchBoard(ctx)
	if err != nil {
		return fmt.Errorf("loading goals: %w", err)
	}

	out := cmd.OutOrStdout()
	printMarkers(out)

	if len(board.Goals) == 0 {
		fmt.Fprintln(out, "\n  No goals yet.")
		fmt.Fprintln(out, "  Create one on your SmartSave Hub, then come back!")
		return nil
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderTitle("SMARTSAVE GOALS"))
	fmt.Fprintln(out)

	if flagGoalsTable {
		rows := make([][]string, 0, len(board.Goals))
		for _, g := range board.Goals {
			rows = append(rows, []string{
				fmt.Sprintf("#%d %s", g.Index, g.Name),
				cli.FormatRupees(g.Saved),
				cli.FormatRupees(g.Target),
				cli.FormatPercent(g.Percent),
			})
		}
		fmt.Fprint(out, cli.RenderTable(cli.Table{
			Headers: []string{"Goal", "Saved", "Target", "Progress"},
			Rows:    rows,
		}))
	} else {
		for _, g := range board.Goals {
			fmt.Fprintln(out, cli.RenderGoal(g, 30))
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Total saved %s · %d of %d goals reached",
		cli.FormatRupees(board.TotalSaved()), board.CompletedCount(), len(board.Goals))
	if board.Streak > 0 {
		fmt.Fprintf(out, " · %s", cli.FormatStreak(board.Streak))
	}
	fmt.Fprintln(out)
	if len(board.Badges) > 0 {
		fmt.Fprintf(out, "  %s %s\n", cli.RenderMuted("Badges"), cli.FormatBadges(board.Badges))
	}
	if board.Reminder != "" {
		fmt.Fprintf(out, "\n  %s\n", cli.RenderWarning(board.Reminder))
	}
	return nil
}

// printMarkers shows and clears the one-shot messages left by the last action.
func printMarkers(out io.Writer) {
	if name, ok, err := env.state.Take(store.KeyJustCompleted); err != nil {
		logging.L().Warn("reading completion marker", zap.Error(err))
	} else if ok {
		fmt.Fprintf(out, "\n  %s\n", cli.RenderSuccess(fmt.Sprintf("🎉 Congratulations! You completed %q!", name)))
	}
	if text, ok, err := env.state.Take(store.KeyPendingToast); err != nil {
		logging.L().Warn("reading pending toast", zap.Error(err))
	} else if ok && text != "" {
		fmt.Fprintf(out, "\n  %s\n", text)
	}
}
