package domain

import (
	"fmt"
	"strings"
)

// InsightFallbackText replaces any level-up insight the generator could not supply.
const InsightFallbackText = "System Notification: Level Up!"

// GeneratedQuest is a suggested activity. Suggestions are never persisted;
// adopting one goes through the regular define-activity path.
type GeneratedQuest struct {
	Name string `json:"name"`
	XP   int    `json:"xp"`
}

func (q GeneratedQuest) Validate() error {
	if strings.TrimSpace(q.Name) == "" {
		return fmt.Errorf("%w: quest name is empty", ErrInvalidName)
	}
	return ValidateXP(q.XP)
}

// LevelInsight pairs a level reached with its motivational text.
type LevelInsight struct {
	Level    int
	Text     string
	Fallback bool
}

// LogSummary is the caller-facing result of logging one activity.
type LogSummary struct {
	ActivityName string
	XPGained     int
	XP           int
	Level        int
	LevelUps     []LevelInsight
}

func (s *LogSummary) LeveledUp() bool {
	return len(s.LevelUps) > 0
}
