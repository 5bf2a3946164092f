package repository

import (
	"context"

	"github.com/alexanderramin/levelup/internal/domain"
)

type LedgerRepo interface {
	// GetOrCreate returns the user's ledger, inserting the default
	// (xp=0, level=1) row on first access.
	GetOrCreate(ctx context.Context, userID string) (*domain.UserLedger, error)
	Get(ctx context.Context, userID string) (*domain.UserLedger, error)
	// CompareAndSwap writes l only if the stored version still equals
	// expectedVersion. On success l.Version is advanced.
	CompareAndSwap(ctx context.Context, l *domain.UserLedger, expectedVersion int64) error
}

type CustomActivityRepo interface {
	ListByUser(ctx context.Context, userID string) (map[string]int, error)
	Create(ctx context.Context, userID string, def domain.ActivityDefinition) error
}

type ActivityLogRepo interface {
	Append(ctx context.Context, e *domain.ActivityLogEntry) error
	// ListRecent returns at most limit entries, newest first.
	ListRecent(ctx context.Context, userID string, limit int) ([]domain.ActivityLogEntry, error)
	Count(ctx context.Context, userID string) (int, error)
}
