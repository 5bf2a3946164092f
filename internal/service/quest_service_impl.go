package service

import (
	"context"
	"time"

	"github.com/alexanderramin/levelup/internal/domain"
	"github.com/alexanderramin/levelup/internal/intelligence"
)

type questService struct {
	generator intelligence.QuestService
	observer  UseCaseObserver
}

func NewQuestService(generator intelligence.QuestService, observers ...UseCaseObserver) QuestService {
	if generator == nil {
		generator = intelligence.DisabledGenerator{}
	}
	return &questService{generator: generator, observer: useCaseObserverOrNoop(observers)}
}

func (s *questService) SuggestQuests(ctx context.Context) (quests []domain.GeneratedQuest, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "suggest-quests",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"count": len(quests)},
		})
	}()
	return s.generator.FetchSuggestedQuests(ctx)
}
