package store

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite" // register pure-Go SQLite driver
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id         TEXT PRIMARY KEY,
    created_at INTEGER NOT NULL,
    source     TEXT NOT NULL DEFAULT '',
    epochs     INTEGER NOT NULL,
    negatives  INTEGER NOT NULL,
    lr         REAL NOT NULL,
    final_lr   REAL NOT NULL,
    eps        REAL NOT NULL,
    seed       INTEGER NOT NULL,
    loss       REAL NOT NULL,
    terms      INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS points (
    run_id TEXT NOT NULL,
    idx    INTEGER NOT NULL,
    term   TEXT NOT NULL,
    x      REAL NOT NULL,
    y      REAL NOT NULL,
    PRIMARY KEY (run_id, idx)
);
CREATE INDEX IF NOT EXISTS runs_created_at ON runs(created_at);
`

// Open opens a SQLite database and makes sure the schema exists.
//
// For file-based databases pass a path like "./runs.sqlite". For MemoryDSN the
// pool is limited to one connection, because every new connection to
// ":memory:" would otherwise see its own empty database.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, err
	}
	if dsn == MemoryDSN {
		db.SetMaxOpenConns(1)
	}
	if err := EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// EnsureSchema creates the runs and points tables if they do not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return ErrNilDB
	}
	_, err := db.ExecContext(ctx, schema)

	return err
}
