// Package logging configures the zap logger used across smartsave.
//
// The TUI owns the terminal, so logs go to a file rather than stdout.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds logging configuration.
type Config struct {
	// Level is the log level (debug, info, warn, error).
	Level string
	// File is the path logs are appended to. Empty discards all output.
	File string
	// Development switches to the human-readable console encoder.
	Development bool
}

var global = zap.NewNop()

// L returns the global logger. It is a no-op until Init is called.
func L() *zap.Logger {
	return global
}

// SetGlobal replaces the global logger.
func SetGlobal(l *zap.Logger) {
	global = l
}

// New builds a logger from cfg.
func New(cfg Config) (*zap.Logger, error) {
	if cfg.File == "" {
		return zap.NewNop(), nil
	}

	lvl, err := zapcore.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o750); err != nil {
		return nil, fmt.Errorf("creating log dir: %w", err)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoding := "json"
	if cfg.Development {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoding = "console"
	}
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeDuration = zapcore.StringDurationEncoder

	zcfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(lvl),
		Development:       cfg.Development,
		DisableCaller:     !cfg.Development,
		DisableStacktrace: true,
		Encoding:          encoding,
		EncoderConfig:     encoderConfig,
		OutputPaths:       []string{cfg.File},
		ErrorOutputPaths:  []string{cfg.File},
	}
	return zcfg.Build()
}

// Init builds a logger from cfg and installs it as the global logger.
func Init(cfg Config) error {
	l, err := New(cfg)
	if err != nil {
		return err
	}
	SetGlobal(l)
	return nil
}

// Sync flushes buffered entries on the global logger.
func Sync() {
	_ = global.Sync()
}
