package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/counsel/internal/db"
)

const insertStudent = `INSERT INTO students (id, first_name, last_name, grade, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)`

func openRoster(t *testing.T) (*sql.DB, *db.SQLiteUnitOfWork) {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, db.NewSQLiteUnitOfWork(database)
}

func addStudent(ctx context.Context, tx db.DBTX, id string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := tx.ExecContext(ctx, insertStudent, id, "Test", "Student", 11, now, now)
	return err
}

func studentExists(t *testing.T, database *sql.DB, id string) bool {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM students WHERE id = ?`, id).Scan(&n))
	return n == 1
}

func TestWithinTx_CommitsOnSuccess(t *testing.T) {
	database, uow := openRoster(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return addStudent(ctx, tx, "s1")
	})
	require.NoError(t, err)
	assert.True(t, studentExists(t, database, "s1"))
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	database, uow := openRoster(t)
	injected := errors.New("second student rejected")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := addStudent(ctx, tx, "s1"); err != nil {
			return err
		}
		return injected
	})
	require.ErrorIs(t, err, injected)
	assert.False(t, studentExists(t, database, "s1"), "the first write must not survive")
}

func TestWithinTx_RollsBackOnPanic(t *testing.T) {
	database, uow := openRoster(t)

	assert.PanicsWithValue(t, "boom", func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = addStudent(ctx, tx, "s1")
			panic("boom")
		})
	})
	assert.False(t, studentExists(t, database, "s1"))
}

func TestWithinTx_ConstraintViolationRollsBack(t *testing.T) {
	database, uow := openRoster(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := addStudent(ctx, tx, "s1"); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`UPDATE students SET readiness_score = 150 WHERE id = ?`, "s1")
		return err
	})
	require.Error(t, err)
	assert.False(t, studentExists(t, database, "s1"))
}
