package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/levelup/internal/db"
	"github.com/alexanderramin/levelup/internal/domain"
)

// SQLiteLedgerRepo implements LedgerRepo using a SQLite database.
type SQLiteLedgerRepo struct {
	db db.DBTX
}

func NewSQLiteLedgerRepo(conn db.DBTX) *SQLiteLedgerRepo {
	return &SQLiteLedgerRepo{db: conn}
}

func (r *SQLiteLedgerRepo) GetOrCreate(ctx context.Context, userID string) (*domain.UserLedger, error) {
	query := `INSERT INTO user_ledgers (user_id, xp, level, version, updated_at)
		VALUES (?, 0, 1, 0, ?)
		ON CONFLICT(user_id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, userID, formatTimestamp(time.Now())); err != nil {
		return nil, fmt.Errorf("seeding ledger: %w", err)
	}
	return r.Get(ctx, userID)
}

func (r *SQLiteLedgerRepo) Get(ctx context.Context, userID string) (*domain.UserLedger, error) {
	query := `SELECT user_id, xp, level, version, updated_at
		FROM user_ledgers WHERE user_id = ?`
	row := r.db.QueryRowContext(ctx, query, userID)

	var l domain.UserLedger
	var updatedAt string
	err := row.Scan(&l.UserID, &l.XP, &l.Level, &l.Version, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("ledger %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning ledger: %w", err)
	}
	l.UpdatedAt, err = parseTimestamp(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &l, nil
}

func (r *SQLiteLedgerRepo) CompareAndSwap(ctx context.Context, l *domain.UserLedger, expectedVersion int64) error {
	now := time.Now().UTC()
	query := `UPDATE user_ledgers
		SET xp = ?, level = ?, version = version + 1, updated_at = ?
		WHERE user_id = ? AND version = ?`
	res, err := r.db.ExecContext(ctx, query, l.XP, l.Level, formatTimestamp(now), l.UserID, expectedVersion)
	if err != nil {
		return fmt.Errorf("updating ledger: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("ledger %s at version %d: %w", l.UserID, expectedVersion, ErrVersionConflict)
	}
	l.Version = expectedVersion + 1
	l.UpdatedAt = now
	return nil
}
