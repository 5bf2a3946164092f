package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"user_ledgers", "custom_activities", "activity_logs"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`,
		"idx_activity_logs_user_time").Scan(&name)
	require.NoError(t, err)
}

func TestSchema_RejectsBrokenLedgerRows(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO user_ledgers (user_id, xp, level, updated_at) VALUES ('u', -1, 1, 'x')`)
	assert.Error(t, err, "negative xp must violate the CHECK constraint")

	_, err = db.Exec(`INSERT INTO user_ledgers (user_id, xp, level, updated_at) VALUES ('u', 0, 0, 'x')`)
	assert.Error(t, err, "level 0 must violate the CHECK constraint")
}

func TestSchema_CustomActivityKeyIsPerUser(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO custom_activities (user_id, name, xp_value, created_at) VALUES ('a', 'Nap', 5, 'x')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO custom_activities (user_id, name, xp_value, created_at) VALUES ('b', 'Nap', 5, 'x')`)
	require.NoError(t, err, "same name for another user is allowed")
	_, err = db.Exec(`INSERT INTO custom_activities (user_id, name, xp_value, created_at) VALUES ('a', 'Nap', 9, 'x')`)
	assert.Error(t, err, "duplicate name for the same user must violate the primary key")
}

func TestOpenDB_CreatesDirectory(t *testing.T) {
	path := t.TempDir() + "/nested/dir/levelup.db"
	db, err := OpenDB(path)
	require.NoError(t, err)
	defer db.Close()

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
}
