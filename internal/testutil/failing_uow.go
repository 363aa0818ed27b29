package testutil

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/counsel/internal/db"
)

// FailingUoW behaves like db.SQLiteUnitOfWork except that the FailOn-th
// write inside the transaction returns Err, so a test can stop a roster
// save partway through and check that nothing was kept. Writes are
// counted from 1; reads are not counted.
type FailingUoW struct {
	DB     *sql.DB
	FailOn int
	Err    error
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failingWrites{DBTX: tx, failOn: u.FailOn, err: u.Err})
	})
}

// failingWrites is only used from the goroutine running the transaction.
type failingWrites struct {
	db.DBTX
	writes int
	failOn int
	err    error
}

func (f *failingWrites) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.writes++
	if f.writes == f.failOn {
		return nil, fmt.Errorf("write %d: %w", f.writes, f.err)
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
