package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS prefs (
    key                  TEXT PRIMARY KEY,
    value                TEXT NOT NULL,
    updated_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS receipts (
    txn_id               TEXT PRIMARY KEY,
    goal_index           INTEGER NOT NULL,
    goal_name            TEXT,
    amount               INTEGER NOT NULL,
    paid_at              TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_receipts_paid_at ON receipts(paid_at);
`
