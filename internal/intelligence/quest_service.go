package intelligence

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/alexanderramin/levelup/internal/domain"
	"github.com/alexanderramin/levelup/internal/llm"
)

// MaxSuggestedQuests caps the number of quests returned per request.
const MaxSuggestedQuests = 5

// QuestService suggests new activities. Suggestions are never persisted.
type QuestService interface {
	FetchSuggestedQuests(ctx context.Context) ([]domain.GeneratedQuest, error)
}

type questService struct {
	client llm.LLMClient
}

// NewQuestService creates a QuestService backed by an LLM client.
func NewQuestService(client llm.LLMClient) QuestService {
	return &questService{client: client}
}

var questSchema = llm.ArrayOf(llm.ObjectOf(map[string]*llm.Schema{
	"name": {Type: llm.TypeString, Description: "short activity name"},
	"xp":   {Type: llm.TypeNumber, Description: fmt.Sprintf("whole-number XP reward from 1 to %d", domain.MaxActivityXP)},
}, "name", "xp"))

// rawQuest defers decoding of each field so one malformed entry does not
// discard the whole array.
type rawQuest struct {
	Name json.RawMessage `json:"name"`
	XP   json.RawMessage `json:"xp"`
}

func (s *questService) FetchSuggestedQuests(ctx context.Context) ([]domain.GeneratedQuest, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:           llm.TaskQuests,
		SystemPrompt:   questsSystemPrompt,
		UserPrompt:     questsUserPrompt,
		ResponseSchema: questSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
	}

	raws, err := llm.ExtractJSONArray[rawQuest](resp.Text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
	}

	quests := sanitizeQuests(raws)
	if len(quests) == 0 {
		return nil, fmt.Errorf("%w: no usable quests in response", domain.ErrGenerationFailed)
	}
	return quests, nil
}

// sanitizeQuests keeps entries with a non-blank string name and an integral
// XP accepted by domain.ValidateXP, drops repeated names, and caps the result.
// Bad entries are dropped individually; the batch fails only when none survive.
func sanitizeQuests(raws []rawQuest) []domain.GeneratedQuest {
	seen := make(map[string]bool, len(raws))
	out := make([]domain.GeneratedQuest, 0, MaxSuggestedQuests)

	for _, r := range raws {
		if len(out) == MaxSuggestedQuests {
			break
		}
		var name string
		if err := json.Unmarshal(r.Name, &name); err != nil {
			continue
		}
		name, err := domain.NormalizeActivityName(name)
		if err != nil {
			continue
		}
		xp, ok := parseQuestXP(r.XP)
		if !ok {
			continue
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, domain.GeneratedQuest{Name: name, XP: xp})
	}
	return out
}

func parseQuestXP(raw json.RawMessage) (int, bool) {
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	xp := int(f)
	if domain.ValidateXP(xp) != nil {
		return 0, false
	}
	return xp, true
}
