package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/smartsavehub/smartsave/internal/config"
	"github.com/smartsavehub/smartsave/internal/logging"
	"github.com/smartsavehub/smartsave/internal/store"
	"github.com/smartsavehub/smartsave/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg := env.cfg
	baseURL, themeName, payee := cfg.Server.BaseURL, cfg.Appearance.Theme, cfg.Payments.UPIPayee

	if err := tui.NewSetupForm(&baseURL, &themeName, &payee).WithShowHelp(true).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled; nothing was saved.")
			return nil
		}
		return fmt.Errorf("setup form: %w", err)
	}

	cfg.Server.BaseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	cfg.Appearance.Theme = themeName
	cfg.Payments.UPIPayee = strings.TrimSpace(payee)

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	// A stored toggle would shadow the theme just chosen.
	if err := env.state.Delete(store.KeyTheme); err != nil {
		logging.L().Warn("persisting theme", zap.Error(err))
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println()
	fmt.Println("  Try:")
	fmt.Println("    smartsave goals         List your goals")
	fmt.Println("    smartsave add 0 100     Save ₹100 towards goal #0")
	fmt.Println("    smartsave               Launch the dashboard")
	fmt.Println()
	return nil
}
