package intelligence

import (
	"context"
	"fmt"

	"github.com/alexanderramin/levelup/internal/domain"
)

// DisabledGenerator stands in for both services when no provider is
// configured.
type DisabledGenerator struct{}

func (DisabledGenerator) FetchLevelInsight(_ context.Context, level int) domain.LevelInsight {
	return FallbackInsight(level)
}

func (DisabledGenerator) FetchSuggestedQuests(context.Context) ([]domain.GeneratedQuest, error) {
	return nil, fmt.Errorf("%w: quest generation is disabled", domain.ErrGenerationFailed)
}
