// Package cmd implements the smartsave CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/smartsavehub/smartsave/internal/api"
	"github.com/smartsavehub/smartsave/internal/cli"
	"github.com/smartsavehub/smartsave/internal/config"
	"github.com/smartsavehub/smartsave/internal/logging"
	"github.com/smartsavehub/smartsave/internal/store"
)

var (
	flagServer   string
	flagQuiet    bool
	flagLogLevel string
	flagLogDev   bool
)

// errReported marks a failure that has already been shown to the user.
var errReported = errors.New("already reported")

// env is what PersistentPreRunE prepares for every command.
var env struct {
	cfg   config.Config
	state *store.Store
}

var rootCmd = &cobra.Command{
	Use:   "smartsave",
	Short: "SmartSave Hub terminal client",
	Long:  "Track savings goals on a SmartSave Hub server and add money through a simulated payment flow.",

	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: prepare,
	PersistentPostRun: teardown,
	RunE:              runTUI,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, cli.RenderError(err.Error()))
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagServer, "server", "s", "", "SmartSave Hub server URL (overrides config and "+config.ServerEnv+")")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&flagLogDev, "log-dev", false, "Write human-readable development logs")
}

func prepare(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	env.cfg = cfg

	if err := logging.Init(logging.Config{
		Level:       cfg.Log.Level,
		File:        config.LogPath(cfg),
		Development: flagLogDev,
	}); err != nil {
		return err
	}

	st, err := store.Open(config.StatePath())
	if err != nil {
		return fmt.Errorf("opening local state: %w", err)
	}
	env.state = st
	return nil
}

func teardown(_ *cobra.Command, _ []string) {
	if env.state != nil {
		if err := env.state.Close(); err != nil {
			logging.L().Warn("closing local state", zap.Error(err))
		}
		env.state = nil
	}
	logging.Sync()
}

// serverURL resolves the server from --server, the environment and config, in that order.
func serverURL() string {
	if flagServer != "" {
		return flagServer
	}
	return config.BaseURL(env.cfg)
}

func newClient() (*api.Client, error) {
	u := serverURL()
	c := api.NewClient(u)
	if c == nil {
		return nil, fmt.Errorf("invalid server URL %q (run `smartsave setup` or pass --server)", u)
	}
	return c, nil
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil || i < 0 {
		return 0, fmt.Errorf("invalid goal index %q", s)
	}
	return i, nil
}

// progressf prints a status line to stderr unless --quiet.
func progressf(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}
