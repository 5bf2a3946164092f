package domain

import (
	"fmt"
	"math"
	"time"
)

// LevelStepXP is the per-level multiplier of the threshold curve. Stored
// ledgers depend on it; changing it reinterprets every existing ledger.
const LevelStepXP = 100

// UserLedger is the durable (xp, level) progress state of one user.
// XP is the progress inside the current level, not a lifetime total.
type UserLedger struct {
	UserID    string
	XP        int
	Level     int
	Version   int64
	UpdatedAt time.Time
}

// LevelUpEvent is emitted once per level boundary crossed by a single gain.
type LevelUpEvent struct {
	NewLevel int
}

// NewUserLedger returns the default ledger created on first access.
func NewUserLedger(userID string) UserLedger {
	return UserLedger{UserID: userID, XP: 0, Level: 1}
}

// XPRequiredForNextLevel returns the XP needed to advance from level to
// level+1: 200 at level 1, 300 at level 2, and so on.
func XPRequiredForNextLevel(level int) int {
	return LevelStepXP * (level + 1)
}

// Validate checks the ledger invariants: xp >= 0, level >= 1 and no
// unresolved overflow.
func (l UserLedger) Validate() error {
	if l.Level < 1 {
		return fmt.Errorf("%w: level %d is below 1", ErrInvalidLedger, l.Level)
	}
	if l.XP < 0 {
		return fmt.Errorf("%w: negative xp %d", ErrInvalidLedger, l.XP)
	}
	if l.XP >= XPRequiredForNextLevel(l.Level) {
		return fmt.Errorf("%w: xp %d overflows level %d", ErrInvalidLedger, l.XP, l.Level)
	}
	return nil
}

// XPToNextLevel returns the XP still missing before the next level-up.
func (l UserLedger) XPToNextLevel() int {
	remaining := XPRequiredForNextLevel(l.Level) - l.XP
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Progress returns the completed fraction of the current level in [0, 1].
func (l UserLedger) Progress() float64 {
	required := XPRequiredForNextLevel(l.Level)
	if required <= 0 || l.XP <= 0 {
		return 0
	}
	pct := float64(l.XP) / float64(required)
	if pct > 1 {
		return 1
	}
	return pct
}

// ApplyGain adds xpGained to the ledger and resolves every level boundary it
// crosses. Events come back in ascending level order. A stored ledger that
// carries overflow (xp beyond its threshold) is resolved as well, so the
// result always satisfies Validate.
func ApplyGain(current UserLedger, xpGained int) (UserLedger, []LevelUpEvent, error) {
	if xpGained <= 0 {
		return current, nil, fmt.Errorf("%w: gain must be positive, got %d", ErrInvalidXP, xpGained)
	}
	if xpGained > MaxActivityXP {
		return current, nil, fmt.Errorf("%w: gain must be at most %d, got %d", ErrInvalidXP, MaxActivityXP, xpGained)
	}
	if current.Level < 1 || current.XP < 0 {
		return current, nil, fmt.Errorf("%w: xp=%d level=%d", ErrInvalidLedger, current.XP, current.Level)
	}
	if current.XP > math.MaxInt-xpGained {
		return current, nil, fmt.Errorf("%w: gain %d overflows xp %d", ErrInvalidXP, xpGained, current.XP)
	}

	next := current
	next.XP += xpGained

	var events []LevelUpEvent
	for next.XP >= XPRequiredForNextLevel(next.Level) {
		next.XP -= XPRequiredForNextLevel(next.Level)
		next.Level++
		events = append(events, LevelUpEvent{NewLevel: next.Level})
	}
	return next, events, nil
}

// TotalXP returns the cumulative XP a ledger represents, counting every
// completed level. Useful for comparing ledgers across levels.
func (l UserLedger) TotalXP() int {
	total := l.XP
	for lvl := 1; lvl < l.Level; lvl++ {
		total += XPRequiredForNextLevel(lvl)
	}
	return total
}
