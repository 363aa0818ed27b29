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

	expected := []string{
		"students", "student_profiles", "milestones", "quality_flags",
		"goals", "subtasks", "bookmarks", "reflections", "meetings",
	}
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
		"idx_students_name",
		"idx_quality_flags_student",
		"idx_meetings_student",
		"idx_meetings_status",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk, "foreign keys should be enabled")
}

func TestMigrate_WALModeRequested(t *testing.T) {
	// In-memory SQLite reports "memory"; WAL only applies to file databases.
	db := openTestDB(t)

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "memory", mode)
}

func TestMigrate_CheckConstraints(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO students (id, first_name, last_name, grade, on_track_status, created_at, updated_at)
		VALUES ('s1', 'A', 'B', 11, 'maybe', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	require.Error(t, err, "unknown standing should be rejected")

	_, err = db.Exec(`INSERT INTO students (id, first_name, last_name, grade, created_at, updated_at)
		VALUES ('s1', 'A', 'B', 11, '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO milestones (student_id, id, title, progress) VALUES ('s1', 'm1', 'FAFSA', 120)`)
	require.Error(t, err, "progress above 100 should be rejected")

	_, err = db.Exec(`INSERT INTO meetings (id, student_id, title, scheduled_date, duration, created_at)
		VALUES ('mt1', 'missing', 'x', '2025-01-01T10:00:00Z', 30, '2025-01-01T00:00:00Z')`)
	require.Error(t, err, "meeting for unknown student should violate the foreign key")
}

func TestMigrate_CascadesStudentDelete(t *testing.T) {
	db := openTestDB(t)

	stmts := []string{
		`INSERT INTO students (id, first_name, last_name, grade, created_at, updated_at)
			VALUES ('s1', 'A', 'B', 12, '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`,
		`INSERT INTO goals (student_id, id, title) VALUES ('s1', 'g1', 'Essays')`,
		`INSERT INTO subtasks (student_id, goal_id, id, title) VALUES ('s1', 'g1', 'st1', 'Outline')`,
		`DELETE FROM students WHERE id = 's1'`,
	}
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM subtasks`).Scan(&n))
	assert.Zero(t, n)
}
