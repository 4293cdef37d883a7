package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/smartsavehub/smartsave/internal/api"
	"github.com/smartsavehub/smartsave/internal/config"
	"github.com/smartsavehub/smartsave/internal/tui"
	"github.com/smartsavehub/smartsave/internal/tui/theme"
	"github.com/smartsavehub/smartsave/internal/upi"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg := env.cfg
	theme.SetActive(env.state.Theme(cfg.Appearance.Theme))

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	client, err := newClient()
	if err != nil {
		return err
	}

	app := tui.NewApp(tui.Options{
		Backend:   client,
		State:     env.state,
		Config:    cfg,
		QR:        upi.Terminal{},
		NeedSetup: !config.Exists() && flagServer == "",
		Connect: func(baseURL string) (tui.Backend, error) {
			c := api.NewClient(baseURL)
			if c == nil {
				return nil, fmt.Errorf("invalid server URL %q", baseURL)
			}
			return c, nil
		},
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
