package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `CREATE TABLE IF NOT EXISTS found (
	run_id      TEXT NOT NULL,
	network     TEXT NOT NULL,
	identifier  TEXT NOT NULL,
	address     TEXT NOT NULL,
	private_key TEXT NOT NULL,
	balance     TEXT NOT NULL,
	attempts    INTEGER NOT NULL,
	found_at    TIMESTAMP NOT NULL,
	PRIMARY KEY (run_id, identifier)
)`

// SQLiteWriter stores records in a SQLite table named found.
type SQLiteWriter struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteWriter, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLiteWriter{db: db}, nil
}

// Write inserts one record; a record already stored for the run is kept.
func (w *SQLiteWriter) Write(ctx context.Context, f Found) error {
	bal := "0"
	if f.Balance != nil {
		bal = f.Balance.String()
	}
	_, err := w.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO found (run_id, network, identifier, address, private_key, balance, attempts, found_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		f.RunID, f.Network.String(), f.Identifier, f.Address, f.PrivateKey, bal, int64(f.Attempts), f.FoundAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert %s: %w", f.Identifier, err)
	}
	return nil
}

// DB exposes the underlying handle.
func (w *SQLiteWriter) DB() *sql.DB {
	return w.db
}

// Close closes the database.
func (w *SQLiteWriter) Close() error {
	return w.db.Close()
}
