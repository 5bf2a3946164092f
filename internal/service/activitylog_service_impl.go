package service

import (
	"context"

	"github.com/alexanderramin/levelup/internal/domain"
	"github.com/alexanderramin/levelup/internal/repository"
)

type activityLogService struct {
	logs repository.ActivityLogRepo
	feed *Feed
}

func NewActivityLogService(logs repository.ActivityLogRepo, feed *Feed) ActivityLogService {
	return &activityLogService{logs: logs, feed: feed}
}

func (s *activityLogService) RecentLog(ctx context.Context, userID string, limit int) ([]domain.ActivityLogEntry, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	entries, err := s.logs.ListRecent(ctx, userID, clampLimit(limit))
	if err != nil {
		return nil, persistenceErr("reading activity log", err)
	}
	if entries == nil {
		entries = []domain.ActivityLogEntry{}
	}
	return entries, nil
}

func (s *activityLogService) Subscribe(ctx context.Context, userID string, limit int) (*Subscription, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	sub, err := s.feed.Subscribe(ctx, userID, clampLimit(limit))
	if err != nil {
		return nil, persistenceErr("subscribing to activity log", err)
	}
	return sub, nil
}
