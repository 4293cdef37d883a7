// Package store provides SQLite-backed client-local state: preferences and a receipt ledger.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/smartsavehub/smartsave/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Preference keys that survive a reload.
const (
	KeyTheme         = "theme"
	KeyJustCompleted = "just_completed"
	KeyPendingToast  = "pendingToast"
)

// DefaultTheme is used when no theme has been persisted.
const DefaultTheme = "light"

// paidAtLayout is fixed-width so lexical order in SQLite matches time order.
const paidAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store is the local state database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the state database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating state dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the state database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value stored under key and whether it was present.
func (s *Store) Get(key string) (string, bool, error) {
	var v string
	err := s.db.QueryRow("SELECT value FROM prefs WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO prefs (key, value, updated_at) VALUES (?, ?, ?)`,
		key, value, time.Now().UTC().Format(time.RFC3339))
	return err
}

// Delete removes key.
func (s *Store) Delete(key string) error {
	_, err := s.db.Exec("DELETE FROM prefs WHERE key = ?", key)
	return err
}

// Take reads and removes key in one transaction. One-shot markers are consumed this way.
func (s *Store) Take(key string) (string, bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return "", false, err
	}
	defer func() { _ = tx.Rollback() }()

	var v string
	err = tx.QueryRow("SELECT value FROM prefs WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	if _, err := tx.Exec("DELETE FROM prefs WHERE key = ?", key); err != nil {
		return "", false, err
	}
	if err := tx.Commit(); err != nil {
		return "", false, err
	}
	return v, true, nil
}

// Theme returns the persisted theme, or fallback when none is stored.
func (s *Store) Theme(fallback string) string {
	v, ok, err := s.Get(KeyTheme)
	if err != nil || !ok || v == "" {
		if fallback == "" {
			return DefaultTheme
		}
		return fallback
	}
	return v
}

// SetJustCompleted persists the name of a goal that was just completed.
func (s *Store) SetJustCompleted(name string) error {
	return s.Set(KeyJustCompleted, name)
}

// SetPendingToast persists a message to show on the next load.
func (s *Store) SetPendingToast(msg string) error {
	return s.Set(KeyPendingToast, msg)
}

// SaveReceipt appends a receipt to the local ledger.
func (s *Store) SaveReceipt(r model.Receipt) error {
	at := r.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO receipts
		(txn_id, goal_index, goal_name, amount, paid_at)
		VALUES (?, ?, ?, ?, ?)`,
		r.TxnID, r.GoalIndex, r.GoalName, r.Amount, at.UTC().Format(paidAtLayout),
	)
	return err
}

// ListReceipts returns up to limit receipts, newest first. limit <= 0 returns all.
func (s *Store) ListReceipts(limit int) ([]model.Receipt, error) {
	query := `SELECT txn_id, goal_index, goal_name, amount, paid_at
		FROM receipts ORDER BY paid_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var receipts []model.Receipt
	for rows.Next() {
		var r model.Receipt
		var name sql.NullString
		var paidAt string
		if err := rows.Scan(&r.TxnID, &r.GoalIndex, &name, &r.Amount, &paidAt); err != nil {
			return nil, err
		}
		if name.Valid {
			r.GoalName = name.String
		}
		if t, err := time.Parse(paidAtLayout, paidAt); err == nil {
			r.At = t.Local()
			r.Time = r.At.Format("15:04")
		}
		receipts = append(receipts, r)
	}
	return receipts, rows.Err()
}

// ReceiptCount returns the number of receipts in the ledger.
func (s *Store) ReceiptCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM receipts").Scan(&count)
	return count, err
}
