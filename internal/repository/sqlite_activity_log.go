package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/levelup/internal/db"
	"github.com/alexanderramin/levelup/internal/domain"
)

// SQLiteActivityLogRepo implements ActivityLogRepo using a SQLite database.
type SQLiteActivityLogRepo struct {
	db db.DBTX
}

func NewSQLiteActivityLogRepo(conn db.DBTX) *SQLiteActivityLogRepo {
	return &SQLiteActivityLogRepo{db: conn}
}

func (r *SQLiteActivityLogRepo) Append(ctx context.Context, e *domain.ActivityLogEntry) error {
	query := `INSERT INTO activity_logs (id, user_id, activity_name, xp_gained, logged_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.UserID,
		e.ActivityName,
		e.XPGained,
		formatTimestamp(e.Timestamp),
	)
	if err != nil {
		return fmt.Errorf("inserting activity log entry: %w", err)
	}
	return nil
}

func (r *SQLiteActivityLogRepo) ListRecent(ctx context.Context, userID string, limit int) ([]domain.ActivityLogEntry, error) {
	if limit <= 0 {
		return nil, nil
	}
	query := `SELECT id, user_id, activity_name, xp_gained, logged_at
		FROM activity_logs
		WHERE user_id = ?
		ORDER BY logged_at DESC, id DESC
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent activity: %w", err)
	}
	defer rows.Close()
	return r.scanEntries(rows)
}

func (r *SQLiteActivityLogRepo) Count(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM activity_logs WHERE user_id = ?`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting activity log: %w", err)
	}
	return n, nil
}

func (r *SQLiteActivityLogRepo) scanEntries(rows *sql.Rows) ([]domain.ActivityLogEntry, error) {
	var entries []domain.ActivityLogEntry
	for rows.Next() {
		var e domain.ActivityLogEntry
		var loggedAt string
		if err := rows.Scan(&e.ID, &e.UserID, &e.ActivityName, &e.XPGained, &loggedAt); err != nil {
			return nil, fmt.Errorf("scanning activity log row: %w", err)
		}
		ts, err := parseTimestamp(loggedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing logged_at: %w", err)
		}
		e.Timestamp = ts
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activity log: %w", err)
	}
	return entries, nil
}
