package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smartsavehub/smartsave/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := env.cfg

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Base URL:  %s\n", cfg.Server.BaseURL)
	if u := serverURL(); u != strings.TrimRight(cfg.Server.BaseURL, "/") {
		fmt.Printf("    Effective: %s (from --server or %s)\n", u, config.ServerEnv)
	}
	fmt.Println()

	fmt.Println("  [Payments]")
	fmt.Printf("    UPI payee:       %s\n", cfg.Payments.UPIPayee)
	fmt.Printf("    Payee name:      %s\n", cfg.Payments.UPIPayeeName)
	amounts := make([]string, 0, len(cfg.Payments.QuickAmounts))
	for _, a := range cfg.Payments.QuickAmounts {
		amounts = append(amounts, fmt.Sprintf("₹%d", a))
	}
	fmt.Printf("    Quick amounts:   %s\n", strings.Join(amounts, ", "))
	fmt.Printf("    Receipt timeout: %ds\n", cfg.Payments.ReceiptTimeoutSec)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s (active: %s)\n", cfg.Appearance.Theme, env.state.Theme(cfg.Appearance.Theme))
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level: %s\n", cfg.Log.Level)
	fmt.Printf("    File:  %s\n", config.LogPath(cfg))
	fmt.Println()

	fmt.Printf("  State: %s\n", config.StatePath())
	fmt.Println()
	fmt.Println("  Run `smartsave setup` to reconfigure.")
	return nil
}
