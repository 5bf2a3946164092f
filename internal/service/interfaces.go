package service

import (
	"context"

	"github.com/alexanderramin/levelup/internal/domain"
)

type CatalogService interface {
	// ListActivities returns the union of built-in and custom activities.
	ListActivities(ctx context.Context, userID string) (map[string]int, error)
	Definitions(ctx context.Context, userID string) ([]domain.ActivityDefinition, error)
	ResolveXP(ctx context.Context, userID, name string) (int, error)
	DefineActivity(ctx context.Context, userID, name string, xp int) (*domain.ActivityDefinition, error)
}

type LedgerService interface {
	LogActivity(ctx context.Context, userID, activityName string) (*domain.LogSummary, error)
	GetLedger(ctx context.Context, userID string) (*domain.UserLedger, error)
}

type ActivityLogService interface {
	RecentLog(ctx context.Context, userID string, limit int) ([]domain.ActivityLogEntry, error)
	// Subscribe opens a live view of the user's recent log. The first
	// snapshot is available immediately.
	Subscribe(ctx context.Context, userID string, limit int) (*Subscription, error)
}

type QuestService interface {
	SuggestQuests(ctx context.Context) ([]domain.GeneratedQuest, error)
}

// LogPublisher is told about every committed log entry.
type LogPublisher interface {
	Publish(userID string)
}
