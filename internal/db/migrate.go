package db

import (
	"database/sql"
	"fmt"
)

// Migrate applies the schema. Every statement is idempotent and runs on
// each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS user_ledgers (
		user_id    TEXT PRIMARY KEY,
		xp         INTEGER NOT NULL DEFAULT 0 CHECK(xp >= 0),
		level      INTEGER NOT NULL DEFAULT 1 CHECK(level >= 1),
		version    INTEGER NOT NULL DEFAULT 0,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS custom_activities (
		user_id    TEXT NOT NULL,
		name       TEXT NOT NULL CHECK(length(trim(name)) > 0),
		xp_value   INTEGER NOT NULL CHECK(xp_value > 0),
		created_at TEXT NOT NULL,
		PRIMARY KEY (user_id, name)
	)`,

	`CREATE TABLE IF NOT EXISTS activity_logs (
		id            TEXT PRIMARY KEY,
		user_id       TEXT NOT NULL,
		activity_name TEXT NOT NULL,
		xp_gained     INTEGER NOT NULL CHECK(xp_gained > 0),
		logged_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_activity_logs_user_time ON activity_logs(user_id, logged_at DESC)`,
}
