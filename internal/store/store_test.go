package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/smartsavehub/smartsave/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPrefs_SetGetDelete(t *testing.T) {
	s := openTemp(t)

	_, ok, err := s.Get(KeyTheme)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, DefaultTheme, s.Theme(""))
	assert.Equal(t, "dark", s.Theme("dark"))

	require.NoError(t, s.Set(KeyTheme, "dark"))
	require.NoError(t, s.Set(KeyTheme, "light"))
	v, ok, err := s.Get(KeyTheme)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "light", v)

	require.NoError(t, s.Delete(KeyTheme))
	_, ok, _ = s.Get(KeyTheme)
	assert.False(t, ok)
}

func TestTake_ConsumesOnce(t *testing.T) {
	s := openTemp(t)
	require.NoError(t, s.SetJustCompleted("New Laptop"))

	v, ok, err := s.Take(KeyJustCompleted)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "New Laptop", v)

	_, ok, err = s.Take(KeyJustCompleted)
	require.NoError(t, err)
	assert.False(t, ok, "marker must be consumed by the first Take")
}

func TestReceipts_NewestFirst(t *testing.T) {
	s := openTemp(t)
	base := time.Date(2026, 1, 30, 10, 0, 0, 0, time.UTC)

	require.NoError(t, s.SaveReceipt(model.Receipt{TxnID: "TXN10000001", GoalIndex: 0, GoalName: "Bike", Amount: 50, At: base}))
	require.NoError(t, s.SaveReceipt(model.Receipt{TxnID: "TXN10000002", GoalIndex: 1, Amount: 75, At: base.Add(time.Minute)}))
	require.NoError(t, s.SaveReceipt(model.Receipt{TxnID: "TXN10000003", GoalIndex: 0, GoalName: "Bike", Amount: 20, At: base.Add(2 * time.Minute)}))

	all, err := s.ListReceipts(0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "TXN10000003", all[0].TxnID)
	assert.Equal(t, "TXN10000001", all[2].TxnID)
	assert.Equal(t, "Bike", all[2].GoalName)
	assert.Equal(t, "", all[1].GoalName)

	two, err := s.ListReceipts(2)
	require.NoError(t, err)
	assert.Len(t, two, 2)

	n, err := s.ReceiptCount()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
