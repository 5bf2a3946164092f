package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/levelup/internal/db"
	"github.com/alexanderramin/levelup/internal/domain"
)

// SQLiteCustomActivityRepo implements CustomActivityRepo using a SQLite database.
type SQLiteCustomActivityRepo struct {
	db db.DBTX
}

func NewSQLiteCustomActivityRepo(conn db.DBTX) *SQLiteCustomActivityRepo {
	return &SQLiteCustomActivityRepo{db: conn}
}

func (r *SQLiteCustomActivityRepo) ListByUser(ctx context.Context, userID string) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, xp_value FROM custom_activities WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing custom activities: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var name string
		var xp int
		if err := rows.Scan(&name, &xp); err != nil {
			return nil, fmt.Errorf("scanning custom activity: %w", err)
		}
		out[name] = xp
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating custom activities: %w", err)
	}
	return out, nil
}

// Create inserts def for userID. The (user_id, name) key makes a concurrent
// duplicate lose with ErrDuplicate instead of overwriting.
func (r *SQLiteCustomActivityRepo) Create(ctx context.Context, userID string, def domain.ActivityDefinition) error {
	query := `INSERT INTO custom_activities (user_id, name, xp_value, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, name) DO NOTHING`
	res, err := r.db.ExecContext(ctx, query, userID, def.Name, def.XPValue, formatTimestamp(time.Now()))
	if err != nil {
		return fmt.Errorf("inserting custom activity: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("custom activity %q: %w", def.Name, ErrDuplicate)
	}
	return nil
}
