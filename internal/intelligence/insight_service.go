package intelligence

import (
	"context"
	"strings"

	"github.com/alexanderramin/levelup/internal/domain"
	"github.com/alexanderramin/levelup/internal/llm"
)

// InsightService produces the motivational text shown when a level is reached.
type InsightService interface {
	// FetchLevelInsight never fails: any generator problem yields the
	// fallback text with Fallback set.
	FetchLevelInsight(ctx context.Context, level int) domain.LevelInsight
}

type insightService struct {
	client llm.LLMClient
}

// NewInsightService creates an InsightService backed by an LLM client.
func NewInsightService(client llm.LLMClient) InsightService {
	return &insightService{client: client}
}

func (s *insightService) FetchLevelInsight(ctx context.Context, level int) domain.LevelInsight {
	if ctx.Err() != nil {
		return FallbackInsight(level)
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskInsight,
		SystemPrompt: insightSystemPrompt,
		UserPrompt:   insightUserPrompt(level),
	})
	if err != nil {
		return FallbackInsight(level)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return FallbackInsight(level)
	}
	return domain.LevelInsight{Level: level, Text: text}
}

// FallbackInsight is the insight used whenever generation is unavailable.
func FallbackInsight(level int) domain.LevelInsight {
	return domain.LevelInsight{Level: level, Text: domain.InsightFallbackText, Fallback: true}
}
