package db

import (
	"database/sql"
	"fmt"
)

// Migrate applies the archive schema. Every statement is idempotent so the
// full list runs on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS snapshots (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL DEFAULT '',
		label      TEXT NOT NULL DEFAULT '',
		content    BLOB NOT NULL,
		employees  INTEGER NOT NULL DEFAULT 0 CHECK(employees >= 0),
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_snapshots_created ON snapshots(created_at)`,
}
