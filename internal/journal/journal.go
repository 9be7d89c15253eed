// Package journal records completed brewsync runs in a local SQLite
// database.
//
// The journal is write-only from the reconciler's point of view: no run
// ever reads it to decide what to install or upgrade. Installed state is
// always re-derived from Homebrew itself, the journal only answers "what
// did brewsync do and when" for the status and history commands.
package journal

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Journal provides SQLite operations for the run history.
type Journal struct {
	db *sql.DB
}

// Open opens the journal database at path, creating the schema when it does
// not exist yet. Use ":memory:" for in-memory databases (useful for
// testing).
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	// SQLite only allows one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	j := &Journal{db: db}
	if err := j.createSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return j, nil
}

// Close closes the database connection.
func (j *Journal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}

func (j *Journal) createSchema() error {
	if _, err := j.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    kind TEXT NOT NULL,
    started_at TIMESTAMP NOT NULL,
    duration_ms INTEGER NOT NULL,
    installed INTEGER NOT NULL DEFAULT 0,
    already_present INTEGER NOT NULL DEFAULT 0,
    upgraded INTEGER NOT NULL DEFAULT 0,
    succeeded BOOLEAN NOT NULL DEFAULT 1
);

CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
`
