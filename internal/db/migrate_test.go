package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// Run migrations a second time; must be a no-op.
	err := Migrate(db)
	require.NoError(t, err)

	// Third time for good measure.
	err = Migrate(db)
	require.NoError(t, err)
}

func TestMigrate_SurfacesStatementErrors(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Close())

	err := Migrate(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration 0")
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"time_sessions", "preferences"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_time_sessions_open_user",
		"idx_time_sessions_end",
		"idx_time_sessions_user",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestOpenDB_SetsBusyTimeout(t *testing.T) {
	db := openTestDB(t)

	var ms int
	err := db.QueryRow(`PRAGMA busy_timeout`).Scan(&ms)
	require.NoError(t, err)
	assert.Equal(t, 5000, ms, "concurrent CLI writers should wait for the lock")
}

func TestMigrate_WALModeRequested(t *testing.T) {
	// In-memory SQLite uses "memory" journal mode; WAL only applies to file DBs.
	// This test verifies OpenDB issues the PRAGMA (a no-op for :memory:).
	db := openTestDB(t)

	var mode string
	err := db.QueryRow(`PRAGMA journal_mode`).Scan(&mode)
	require.NoError(t, err)
	// In-memory DB reports "memory".
	assert.Equal(t, "memory", mode)
}

func TestMigrate_OpenSessionPartialUniqueIndex(t *testing.T) {
	db := openTestDB(t)

	insertOpen := `INSERT INTO time_sessions (id, user_name, client_name, project_type, project_name, start_time)
		VALUES (?, 'naomi', 'IDEOLA', 'GENERAL', 'LOGO', '2024-03-15T09:00:00Z')`

	_, err := db.Exec(insertOpen, "s1")
	require.NoError(t, err)

	_, err = db.Exec(insertOpen, "s2")
	assert.Error(t, err, "second open session for the same user should violate the partial unique index")

	// Once the first session is closed, a new open session is allowed.
	_, err = db.Exec(`UPDATE time_sessions SET end_time = '2024-03-15T10:00:00Z', duration_minutes = 60 WHERE id = 's1'`)
	require.NoError(t, err)
	_, err = db.Exec(insertOpen, "s2")
	assert.NoError(t, err)
}

func TestMigrate_OpenSessionIndexIsPerUser(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO time_sessions (id, user_name, client_name, project_type, project_name, start_time)
		VALUES ('s1', 'naomi', 'IDEOLA', 'GENERAL', 'LOGO', '2024-03-15T09:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO time_sessions (id, user_name, client_name, project_type, project_name, start_time)
		VALUES ('s2', 'rizka', 'IDEOLA', 'GENERAL', 'LOGO', '2024-03-15T09:00:00Z')`)
	assert.NoError(t, err)
}

func TestMigrate_EndTimeAndDurationSetTogether(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO time_sessions (id, user_name, client_name, project_type, project_name, start_time, end_time)
		VALUES ('s1', 'naomi', 'IDEOLA', 'GENERAL', 'LOGO', '2024-03-15T09:00:00Z', '2024-03-15T10:00:00Z')`)
	assert.Error(t, err, "end_time without duration_minutes should be rejected by CHECK constraint")

	_, err = db.Exec(`INSERT INTO time_sessions (id, user_name, client_name, project_type, project_name, start_time, duration_minutes)
		VALUES ('s2', 'naomi', 'IDEOLA', 'GENERAL', 'LOGO', '2024-03-15T09:00:00Z', 60)`)
	assert.Error(t, err, "duration_minutes on an open session should be rejected by CHECK constraint")
}
