package domain

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXPRequiredForNextLevel(t *testing.T) {
	cases := []struct {
		level int
		want  int
	}{
		{1, 200},
		{2, 300},
		{3, 400},
		{5, 600},
		{10, 1100},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, XPRequiredForNextLevel(tc.level), "level=%d", tc.level)
	}
}

func TestXPRequiredForNextLevel_Monotonic(t *testing.T) {
	for lvl := 1; lvl < 200; lvl++ {
		assert.Less(t, XPRequiredForNextLevel(lvl), XPRequiredForNextLevel(lvl+1))
	}
}

func TestApplyGain_NoLevelUp(t *testing.T) {
	next, events, err := ApplyGain(NewUserLedger("u1"), 50)
	require.NoError(t, err)
	assert.Equal(t, 50, next.XP)
	assert.Equal(t, 1, next.Level)
	assert.Empty(t, events)
}

func TestApplyGain_CascadeLandsOnZero(t *testing.T) {
	// 200 to reach level 2, then 300 to reach level 3.
	next, events, err := ApplyGain(NewUserLedger("u1"), 500)
	require.NoError(t, err)
	assert.Equal(t, 0, next.XP)
	assert.Equal(t, 3, next.Level)
	assert.Equal(t, []LevelUpEvent{{NewLevel: 2}, {NewLevel: 3}}, events)
}

func TestApplyGain_ExactThreshold(t *testing.T) {
	next, events, err := ApplyGain(NewUserLedger("u1"), 200)
	require.NoError(t, err)
	assert.Equal(t, 0, next.XP)
	assert.Equal(t, 2, next.Level)
	assert.Len(t, events, 1)
}

func TestApplyGain_OneBelowThreshold(t *testing.T) {
	next, events, err := ApplyGain(UserLedger{XP: 150, Level: 1}, 49)
	require.NoError(t, err)
	assert.Equal(t, 199, next.XP)
	assert.Equal(t, 1, next.Level)
	assert.Empty(t, events)
}

func TestApplyGain_LargeGainEmitsAscendingEvents(t *testing.T) {
	// Levels 1..5 cost 200+300+400+500+600 = 2000.
	next, events, err := ApplyGain(NewUserLedger("u1"), 2050)
	require.NoError(t, err)
	assert.Equal(t, 6, next.Level)
	assert.Equal(t, 50, next.XP)
	require.Len(t, events, 5)
	for i, e := range events {
		assert.Equal(t, i+2, e.NewLevel)
	}
}

func TestApplyGain_KeepsIdentityFields(t *testing.T) {
	start := UserLedger{UserID: "u1", XP: 10, Level: 4, Version: 7}
	next, _, err := ApplyGain(start, 5)
	require.NoError(t, err)
	assert.Equal(t, "u1", next.UserID)
	assert.Equal(t, int64(7), next.Version)
}

func TestApplyGain_RejectsNonPositiveGain(t *testing.T) {
	for _, g := range []int{0, -1, -500} {
		start := UserLedger{XP: 10, Level: 2}
		next, events, err := ApplyGain(start, g)
		assert.ErrorIs(t, err, ErrInvalidXP, "gain=%d", g)
		assert.Equal(t, start, next, "ledger must be unchanged")
		assert.Nil(t, events)
	}
}

func TestApplyGain_RejectsGainAboveActivityCap(t *testing.T) {
	for _, g := range []int{MaxActivityXP + 1, 1_000_000_000_000, math.MaxInt} {
		start := UserLedger{XP: 150, Level: 1}
		next, events, err := ApplyGain(start, g)
		assert.ErrorIs(t, err, ErrInvalidXP, "gain=%d", g)
		assert.Equal(t, start, next)
		assert.Nil(t, events)
	}
}

func TestApplyGain_RejectsOverflowingXP(t *testing.T) {
	start := UserLedger{XP: math.MaxInt - 5, Level: 1}
	next, events, err := ApplyGain(start, 10)
	assert.ErrorIs(t, err, ErrInvalidXP)
	assert.Equal(t, start, next)
	assert.Nil(t, events)
}

func TestApplyGain_MaxGainBoundsLevelsCrossed(t *testing.T) {
	next, events, err := ApplyGain(NewUserLedger("u1"), MaxActivityXP)
	require.NoError(t, err)
	assert.NoError(t, next.Validate())
	// 200+300+...+1300 = 9000, the next threshold of 1400 is not reached.
	assert.Len(t, events, 12)
	assert.Equal(t, 13, next.Level)
	assert.Equal(t, 1000, next.XP)
}

func TestApplyGain_RejectsInvalidStart(t *testing.T) {
	_, _, err := ApplyGain(UserLedger{XP: 0, Level: 0}, 10)
	assert.ErrorIs(t, err, ErrInvalidLedger)

	_, _, err = ApplyGain(UserLedger{XP: -5, Level: 1}, 10)
	assert.ErrorIs(t, err, ErrInvalidLedger)
}

func TestApplyGain_ResolvesStoredOverflow(t *testing.T) {
	// 450 is already past the level 1 threshold of 200.
	next, events, err := ApplyGain(UserLedger{XP: 450, Level: 1}, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, next.Level)
	assert.Equal(t, 251, next.XP)
	assert.NoError(t, next.Validate())
	assert.Equal(t, []LevelUpEvent{{NewLevel: 2}}, events)
}

func TestApplyGain_ResultAlwaysSatisfiesInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		level := 1 + rng.Intn(30)
		start := UserLedger{Level: level, XP: rng.Intn(XPRequiredForNextLevel(level))}
		gain := 1 + rng.Intn(5000)

		next, events, err := ApplyGain(start, gain)
		require.NoError(t, err)
		require.NoError(t, next.Validate(), "start=%+v gain=%d", start, gain)
		assert.Equal(t, start.Level+len(events), next.Level)
		assert.Equal(t, start.TotalXP()+gain, next.TotalXP(), "xp must be conserved")
	}
}

func TestApplyGain_DecompositionYieldsSameState(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 300; i++ {
		level := 1 + rng.Intn(10)
		start := UserLedger{Level: level, XP: rng.Intn(XPRequiredForNextLevel(level))}
		total := 1 + rng.Intn(3000)

		whole, wholeEvents, err := ApplyGain(start, total)
		require.NoError(t, err)

		parts := splitPositive(rng, total)
		stepped := start
		var steppedEvents []LevelUpEvent
		for _, p := range parts {
			var evs []LevelUpEvent
			stepped, evs, err = ApplyGain(stepped, p)
			require.NoError(t, err)
			steppedEvents = append(steppedEvents, evs...)
		}

		msg := fmt.Sprintf("start=%+v total=%d parts=%v", start, total, parts)
		assert.Equal(t, whole.XP, stepped.XP, msg)
		assert.Equal(t, whole.Level, stepped.Level, msg)
		assert.Equal(t, wholeEvents, steppedEvents, msg)
	}
}

// splitPositive splits n into a random sequence of positive parts summing to n.
func splitPositive(rng *rand.Rand, n int) []int {
	var parts []int
	for n > 0 {
		p := 1 + rng.Intn(n)
		parts = append(parts, p)
		n -= p
	}
	return parts
}

func TestUserLedger_Validate(t *testing.T) {
	assert.NoError(t, NewUserLedger("u").Validate())
	assert.NoError(t, UserLedger{XP: 199, Level: 1}.Validate())
	assert.ErrorIs(t, UserLedger{XP: 200, Level: 1}.Validate(), ErrInvalidLedger)
	assert.ErrorIs(t, UserLedger{XP: -1, Level: 1}.Validate(), ErrInvalidLedger)
	assert.ErrorIs(t, UserLedger{XP: 0, Level: 0}.Validate(), ErrInvalidLedger)
}

func TestUserLedger_ProgressAndRemaining(t *testing.T) {
	l := UserLedger{XP: 150, Level: 2}
	assert.InDelta(t, 0.5, l.Progress(), 1e-9)
	assert.Equal(t, 150, l.XPToNextLevel())

	assert.Equal(t, 0.0, NewUserLedger("u").Progress())
	assert.Equal(t, 200, NewUserLedger("u").XPToNextLevel())
}

func TestUserLedger_TotalXP(t *testing.T) {
	assert.Equal(t, 0, NewUserLedger("u").TotalXP())
	assert.Equal(t, 500, UserLedger{XP: 0, Level: 3}.TotalXP())
	assert.Equal(t, 520, UserLedger{XP: 20, Level: 3}.TotalXP())
}
