package repository

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/counsel/internal/db"
	"github.com/alexanderramin/counsel/internal/domain"
	"github.com/alexanderramin/counsel/internal/testutil"
)

// newConcurrentTestDB creates a file-backed SQLite database in a temp directory.
// Unlike :memory:, a file-backed DB shares state across all connections in the
// pool, which is required to test real concurrent access with WAL mode.
func newConcurrentTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dir := t.TempDir()
	database, err := db.OpenDB(filepath.Join(dir, "concurrent_test.db"))
	require.NoError(t, err, "failed to create concurrent test database")
	t.Cleanup(func() { database.Close() })
	return database
}

// retryBusy retries fn while SQLite reports the database as locked.
func retryBusy(fn func() error) error {
	const maxRetries = 10
	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		time.Sleep(time.Millisecond * time.Duration(1<<attempt))
	}
	return err
}

// TestConcurrentAccess_ReadDuringWrite verifies that student reads stay
// consistent while meetings are being scheduled for the same student.
func TestConcurrentAccess_ReadDuringWrite(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()

	students := NewSQLiteStudentRepo(database)
	meetings := NewSQLiteMeetingRepo(database)

	data := testutil.NewTestStudentData("Riley", "Chen",
		testutil.WithMilestones(testutil.NewTestMilestone("Campus visit")),
		testutil.WithGoal("Scholarships", 1, 3),
	)
	require.NoError(t, students.Save(ctx, data))

	const writers = 10
	const readers = 10
	var wg sync.WaitGroup
	errCh := make(chan error, writers+readers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := retryBusy(func() error {
				return meetings.Add(ctx, &domain.Meeting{
					StudentID:     data.Student.ID,
					Title:         fmt.Sprintf("Check-in %d", i),
					ScheduledDate: time.Date(2025, 2, i+1, 10, 0, 0, 0, time.UTC),
					Duration:      30,
				})
			})
			if err != nil {
				errCh <- err
			}
		}(i)
	}
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := retryBusy(func() error {
				got, err := students.Get(ctx, data.Student.ID)
				if err != nil {
					return err
				}
				if len(got.Milestones) != 1 || len(got.Goals) != 1 {
					return fmt.Errorf("torn read: %d milestones, %d goals", len(got.Milestones), len(got.Goals))
				}
				return nil
			})
			if err != nil {
				errCh <- err
			}
		}()
	}

	wg.Wait()
	close(errCh)
	for err := range errCh {
		require.NoError(t, err)
	}

	list, err := meetings.ListByStudent(ctx, data.Student.ID)
	require.NoError(t, err)
	assert.Len(t, list, writers)
}

// TestConcurrentAccess_TransactionalSaves runs many student saves through
// the unit of work at once and checks every one landed whole.
func TestConcurrentAccess_TransactionalSaves(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()
	uow := db.NewSQLiteUnitOfWork(database)

	const workers = 8
	var wg sync.WaitGroup
	errCh := make(chan error, workers)
	ids := make([]string, workers)

	for i := 0; i < workers; i++ {
		d := testutil.NewTestStudentData(fmt.Sprintf("Student%02d", i), "Load",
			testutil.WithGoal("Goal", 2, 4),
			testutil.WithBookmark(domain.BookmarkCareer, "Engineer", true),
		)
		ids[i] = d.Student.ID
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := retryBusy(func() error {
				return uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
					return NewSQLiteStudentRepo(tx).Save(ctx, d)
				})
			})
			if err != nil {
				errCh <- err
			}
		}()
	}

	wg.Wait()
	close(errCh)
	for err := range errCh {
		require.NoError(t, err)
	}

	repo := NewSQLiteStudentRepo(database)
	for _, id := range ids {
		got, err := repo.Get(ctx, id)
		require.NoError(t, err)
		require.Len(t, got.Goals, 1)
		assert.Len(t, got.Goals[0].Subtasks, 4)
		assert.Len(t, got.Bookmarks, 1)
	}
}
