// Package config loads and saves the smartsave TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// ServerEnv overrides Server.BaseURL when set.
const ServerEnv = "SMARTSAVE_SERVER"

// Config holds all smartsave configuration.
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Payments   PaymentsConfig   `toml:"payments"`
	Appearance AppearanceConfig `toml:"appearance"`
	Log        LogConfig        `toml:"log"`
}

// ServerConfig points the client at a SmartSave Hub server.
type ServerConfig struct {
	BaseURL string `toml:"base_url"`
}

// PaymentsConfig holds the simulated payment settings.
type PaymentsConfig struct {
	UPIPayee          string  `toml:"upi_payee"`
	UPIPayeeName      string  `toml:"upi_payee_name"`
	QuickAmounts      []int64 `toml:"quick_amounts"`
	ReceiptTimeoutSec int     `toml:"receipt_timeout_sec"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			BaseURL: "http://127.0.0.1:5000",
		},
		Payments: PaymentsConfig{
			UPIPayee:          "loki1@okaxis",
			UPIPayeeName:      "SmartSaveHub",
			QuickAmounts:      []int64{10, 50, 100},
			ReceiptTimeoutSec: 6,
		},
		Appearance: AppearanceConfig{
			Theme: "light",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "smartsave")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "smartsave")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// CacheDir returns the XDG-compliant directory for local state and logs.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "smartsave")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "smartsave")
}

// StatePath returns the path of the local state database.
func StatePath() string {
	return filepath.Join(CacheDir(), "state.db")
}

// LogPath returns the effective log file path.
func LogPath(cfg Config) string {
	if cfg.Log.File != "" {
		return cfg.Log.File
	}
	return filepath.Join(CacheDir(), "smartsave.log")
}

// Load reads the config file, returning defaults if it doesn't exist.
// A .env file in the working directory is loaded first so SMARTSAVE_* variables can live there.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.Payments.QuickAmounts) == 0 {
		cfg.Payments.QuickAmounts = DefaultConfig().Payments.QuickAmounts
	}
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// BaseURL returns the server URL from env var or config, in that order.
func BaseURL(cfg Config) string {
	if u := os.Getenv(ServerEnv); u != "" {
		return strings.TrimRight(u, "/")
	}
	return strings.TrimRight(cfg.Server.BaseURL, "/")
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
