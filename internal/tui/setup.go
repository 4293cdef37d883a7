package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/smartsavehub/smartsave/internal/config"
	"github.com/smartsavehub/smartsave/internal/tui/theme"
)

// setupValues holds the first-run form answers.
type setupValues struct {
	serverURL string
	theme     string
	payee     string
}

func setupValuesFrom(cfg config.Config) setupValues {
	return setupValues{
		serverURL: cfg.Server.BaseURL,
		theme:     cfg.Appearance.Theme,
		payee:     cfg.Payments.UPIPayee,
	}
}

// NewSetupForm builds the setup form used by the dashboard and the setup command.
func NewSetupForm(serverURL, themeName, payee *string) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to SmartSave").
				Description("Point the client at your SmartSave Hub server.\nYou can change this later with `smartsave setup`."),
			huh.NewInput().
				Title("Server URL").
				Placeholder("http://127.0.0.1:5000").
				Value(serverURL).
				Validate(validateServerURL),
			huh.NewSelect[string]().
				Title("Theme").
				Options(themeOpts...).
				Value(themeName),
			huh.NewInput().
				Title("UPI payee address").
				Placeholder("name@bank").
				Value(payee).
				Validate(validatePayee),
		),
	).WithShowHelp(false)
}

func newSetupForm(vals *setupValues) *huh.Form {
	return NewSetupForm(&vals.serverURL, &vals.theme, &vals.payee)
}

func validateServerURL(s string) error {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return fmt.Errorf("must start with http:// or https://")
	}
	return nil
}

func validatePayee(s string) error {
	if !strings.Contains(strings.TrimSpace(s), "@") {
		return fmt.Errorf("expected an address like name@bank")
	}
	return nil
}

func (a *App) saveSetupConfig() error {
	cfg := a.cfg
	cfg.Server.BaseURL = strings.TrimRight(strings.TrimSpace(a.setupVals.serverURL), "/")
	cfg.Appearance.Theme = a.setupVals.theme
	cfg.Payments.UPIPayee = strings.TrimSpace(a.setupVals.payee)
	theme.SetActive(cfg.Appearance.Theme)
	a.cfg = cfg
	return config.Save(cfg)
}
