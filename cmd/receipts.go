package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/smartsavehub/smartsave/internal/cli"
)

var flagReceiptsLimit int

var receiptsCmd = &cobra.Command{
	Use:   "receipts",
	Short: "List receipts of simulated payments made from this machine",
	RunE:  runReceipts,
}

func init() {
	receiptsCmd.Flags().IntVarP(&flagReceiptsLimit, "limit", "n", 20, "Number of receipts to show")
	rootCmd.AddCommand(receiptsCmd)
}

func runReceipts(cmd *cobra.Command, _ []string) error {
	receipts, err := env.state.ListReceipts(flagReceiptsLimit)
	if err != nil {
		return fmt.Errorf("listing receipts: %w", err)
	}
	total, err := env.state.ReceiptCount()
	if err != nil {
		return fmt.Errorf("counting receipts: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(receipts) == 0 {
		fmt.Fprintln(out, "\n  No receipts yet.")
		fmt.Fprintln(out, "  Run `smartsave add <goal> <amount>` to save something!")
		return nil
	}

	now := time.Now()
	var sum int64
	rows := make([][]string, 0, len(receipts))
	for _, r := range receipts {
		sum += r.Amount
		rows = append(rows, []string{
			cli.FormatWhen(r.At, now),
			r.TxnID,
			r.GoalName,
			cli.FormatRupees(r.Amount),
		})
	}
	rows = append(rows, []string{"---"}, []string{"Shown", "", fmt.Sprintf("%d of %d", len(receipts), total), cli.FormatRupees(sum)})

	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderTable(cli.Table{
		Title:   "Receipts",
		Headers: []string{"When", "Transaction", "Goal", "Amount"},
		Rows:    rows,
	}))
	return nil
}
