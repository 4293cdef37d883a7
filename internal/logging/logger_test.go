package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInit_WritesToFile(t *testing.T) {
	original := L()
	defer SetGlobal(original)

	path := filepath.Join(t.TempDir(), "logs", "smartsave.log")
	require.NoError(t, Init(Config{Level: "debug", File: path}))

	L().Info("payment flow started", zap.Int("goal_index", 2))
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "payment flow started")
	assert.Contains(t, string(data), `"goal_index":2`)
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Config{Level: "not-a-level", File: filepath.Join(t.TempDir(), "x.log")})
	assert.Error(t, err)
}

func TestNew_EmptyFileIsNop(t *testing.T) {
	l, err := New(Config{Level: "not-even-parsed"})
	require.NoError(t, err)
	assert.NotPanics(t, func() { l.Info("discarded") })
}

func TestL_NopBeforeInit(t *testing.T) {
	assert.NotNil(t, L())
	assert.NotPanics(t, func() { L().Info("nop logger test") })
}
