package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent so the
// full list is replayed on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS time_sessions (
		id               TEXT PRIMARY KEY,
		user_name        TEXT NOT NULL,
		client_name      TEXT NOT NULL,
		project_type     TEXT NOT NULL,
		project_name     TEXT NOT NULL,
		start_time       TEXT NOT NULL,
		end_time         TEXT,
		duration_minutes REAL,
		CHECK ((end_time IS NULL) = (duration_minutes IS NULL))
	)`,

	// At most one open session per user. The store is the source of truth
	// for this invariant; inserts that violate it surface as ErrConflict.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_time_sessions_open_user
		ON time_sessions(user_name) WHERE end_time IS NULL`,

	`CREATE INDEX IF NOT EXISTS idx_time_sessions_end ON time_sessions(end_time)`,

	`CREATE INDEX IF NOT EXISTS idx_time_sessions_user ON time_sessions(user_name)`,

	`CREATE TABLE IF NOT EXISTS preferences (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
}
