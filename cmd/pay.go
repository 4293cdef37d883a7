package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/smartsavehub/smartsave/internal/api"
	"github.com/smartsavehub/smartsave/internal/cli"
	"github.com/smartsavehub/smartsave/internal/model"
	"github.com/smartsavehub/smartsave/internal/payflow"
)

// consoleRenderer prints payment flow progress for the one-shot commands.
type consoleRenderer struct {
	out    io.Writer
	quiet  bool
	failed bool
}

func (r *consoleRenderer) ShowProcessing(op payflow.Operation) {
	r.failed = false
	if r.quiet {
		return
	}
	label := op.GoalName
	if label == "" {
		label = fmt.Sprintf("goal #%d", op.GoalIndex)
	}
	fmt.Fprintf(r.out, "\n  %s\n", cli.RenderMuted(fmt.Sprintf("Processing ₹%d for %s...", op.Amount, label)))
}

func (r *consoleRenderer) ShowReceipt(rc model.Receipt) {
	fmt.Fprintln(r.out)
	fmt.Fprint(r.out, cli.RenderTable(cli.Table{
		Title: "Payment Successful",
		Rows: [][]string{
			{"Transaction ID", rc.TxnID},
			{"Goal", rc.GoalName},
			{"Amount", cli.FormatRupees(rc.Amount)},
			{"Time", rc.Time},
		},
	}))
}

func (r *consoleRenderer) CloseOverlay() { r.failed = true }

func (r *consoleRenderer) UpdateGoalCard(index int, u model.CardUpdate) {
	if r.quiet {
		return
	}
	fmt.Fprintf(r.out, "  #%d %s %s  %s\n",
		index,
		cli.RenderProgressBar(u.Percent, 30),
		cli.FormatPercent(u.Percent),
		cli.FormatRupees(u.Saved))
}

func (r *consoleRenderer) Toast(msg string) {
	if r.failed {
		fmt.Fprintf(r.out, "  %s\n", cli.RenderError(msg))
		return
	}
	fmt.Fprintf(r.out, "  %s\n", cli.RenderSuccess(msg))
}

func (r *consoleRenderer) Celebrate(string) {
	if r.quiet {
		return
	}
	fmt.Fprintf(r.out, "\n  %s\n", strings.Repeat("🎉 🎊 ", 8))
}

// pay runs one payment flow against client and reports the outcome.
// A completed goal reloads the board so the one-shot markers are shown.
func pay(cmd *cobra.Command, client *api.Client, op payflow.Operation) error {
	r := &consoleRenderer{out: cmd.OutOrStdout(), quiet: flagQuiet}
	ctrl := payflow.New(client,
		payflow.WithRenderer(r),
		payflow.WithCelebrator(r),
		payflow.WithPrefs(env.state),
		payflow.WithLedger(env.state),
	)

	// Interrupting during the simulated delay exits without charging.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	out := ctrl.Run(ctx, op)
	switch out.State {
	case payflow.Success:
		if ctrl.Dismiss() {
			return reloadBoard(cmd, client)
		}
		return nil
	case payflow.Failed:
		ctrl.Dismiss()
		return errReported
	default:
		if ctx.Err() != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", cli.RenderMuted("Interrupted; no payment was made."))
			return errReported
		}
		return out.Err
	}
}

func reloadBoard(cmd *cobra.Command, client *api.Client) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()
	if _, err := client.FetchBoard(ctx); err != nil {
		return fmt.Errorf("reloading goals: %w", err)
	}
	printMarkers(cmd.OutOrStdout())
	return nil
}

// goalName looks up the display name for index, or "" if the board is unavailable.
func goalName(ctx context.Context, client *api.Client, index int) string {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	board, err := client.FetchBoard(ctx)
	if err != nil {
		return ""
	}
	if g := board.Find(index); g != nil {
		return g.Name
	}
	return ""
}

// confirm asks a yes/no question unless skip is set.
func confirm(title, description string, skip bool) (bool, error) {
	if skip {
		return true, nil
	}
	ok := false
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if err != nil {
		return false, fmt.Errorf("confirmation: %w", err)
	}
	return ok, nil
}

func goalLabel(name string, index int) string {
	if name == "" {
		return fmt.Sprintf("goal #%d", index)
	}
	return fmt.Sprintf("%q", name)
}
