package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/levelup/internal/db"
)

// FaultyUoW is a UnitOfWork that injects store failures. BeginErr fails the
// transaction before the callback runs; FailOnExec injects Err on the Nth
// ExecContext call (counted from 1, reads are not counted) so tests can
// break a multi-write operation between its writes.
type FaultyUoW struct {
	DB         *sql.DB
	BeginErr   error
	FailOnExec int32
	Err        error

	Attempts atomic.Int32
}

func (u *FaultyUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	u.Attempts.Add(1)
	if u.BeginErr != nil {
		return fmt.Errorf("beginning transaction: %w", u.BeginErr)
	}
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &failOnNthExec{DBTX: tx, failOn: u.FailOnExec, err: u.Err}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failOnNthExec struct {
	db.DBTX
	count  atomic.Int32
	failOn int32
	err    error
}

func (f *failOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	n := f.count.Add(1)
	if f.failOn > 0 && n == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

// ConflictUoW simulates a concurrent writer: on each of the first Conflicts
// attempts it bumps the ledger version just before the compare-and-swap
// update, so the caller's expected version is stale.
type ConflictUoW struct {
	DB        *sql.DB
	Conflicts int32

	Attempts atomic.Int32
}

func (u *ConflictUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	n := u.Attempts.Add(1)
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	var wrapped db.DBTX = tx
	if n <= u.Conflicts {
		wrapped = &interloper{DBTX: tx}
	}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type interloper struct {
	db.DBTX
}

func (i *interloper) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if strings.HasPrefix(strings.TrimSpace(query), "UPDATE user_ledgers") {
		if _, err := i.DBTX.ExecContext(ctx, `UPDATE user_ledgers SET version = version + 1`); err != nil {
			return nil, err
		}
	}
	return i.DBTX.ExecContext(ctx, query, args...)
}
