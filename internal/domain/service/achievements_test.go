package service

import (
	"testing"
	"time"

	"nyayapath/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func newEvaluator(now time.Time) *AchievementEvaluator {
	return NewAchievementEvaluator(DefaultAchievementCatalog(), fixedClock{now: now})
}

func unlockedIDs(unlocked []entity.UnlockedAchievement) []string {
	ids := make([]string, 0, len(unlocked))
	for _, u := range unlocked {
		ids = append(ids, u.ID)
	}
	return ids
}

func TestEvaluateFirstWinUnlocksMultiple(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	eval := newEvaluator(now)

	prior := entity.DefaultPlayerStats("player-1")
	result := &entity.CaseResult{
		Won:            true,
		Verdict:        entity.VerdictWin,
		Score:          80,
		Accuracy:       1.0,
		TimeElapsed:    400,
		PerfectChoices: 4,
		TotalChoices:   4,
	}
	ctx := EvalContext{
		CasesWon:             1,
		WinStreak:            1,
		TotalCasesPlayed:     1,
		Difficulty:           entity.DifficultyBeginner,
		TotalCasesAvailable:  12,
		SlowestChoiceSeconds: 8,
	}

	unlocked := eval.Evaluate(prior, result, ctx)

	assert.Equal(t, []string{
		"first-victory",
		"swift-justice",
		"perfect-strategist",
		"sharp-counsel",
		"landslide-verdict",
		"quick-thinker",
	}, unlockedIDs(unlocked))

	for _, u := range unlocked {
		assert.Equal(t, now, u.UnlockedAt)
	}
}

func TestEvaluateIdempotentAcrossCases(t *testing.T) {
	eval := newEvaluator(time.Now())

	prior := entity.DefaultPlayerStats("player-1")
	result := &entity.CaseResult{
		Won:            true,
		Accuracy:       0.5,
		TimeElapsed:    2000,
		PerfectChoices: 0,
		TotalChoices:   4,
	}
	ctx := EvalContext{CasesWon: 1, WinStreak: 1, TotalCasesPlayed: 1, TotalCasesAvailable: 12, SlowestChoiceSeconds: 40}

	first := eval.Evaluate(prior, result, ctx)
	require.Equal(t, []string{"first-victory"}, unlockedIDs(first))

	// Fold the unlock into the stats, then evaluate a second win. The
	// predicate for first-victory would fail anyway (CasesWon != 0), but
	// the id check alone must suppress re-emission for predicates that
	// stay true, like sharp-counsel.
	prior.Achievements = append(prior.Achievements, first...)
	prior.Achievements = append(prior.Achievements, entity.UnlockedAchievement{
		Achievement: entity.Achievement{ID: "sharp-counsel"},
	})
	prior.CasesWon = 1

	again := &entity.CaseResult{Won: true, Accuracy: 0.95, TimeElapsed: 2000, TotalChoices: 4}
	second := eval.Evaluate(prior, again, EvalContext{CasesWon: 2, WinStreak: 2, TotalCasesPlayed: 2, TotalCasesAvailable: 12, SlowestChoiceSeconds: 40})
	assert.Empty(t, unlockedIDs(second))
}

func TestEvaluateLossUnlocksNoWinGated(t *testing.T) {
	eval := newEvaluator(time.Now())

	prior := entity.DefaultPlayerStats("player-1")
	result := &entity.CaseResult{
		Won:          false,
		Verdict:      entity.VerdictLoss,
		Score:        -40,
		Accuracy:     0.95,
		TimeElapsed:  300,
		TotalChoices: 4,
	}
	ctx := EvalContext{TotalCasesPlayed: 1, TotalCasesAvailable: 12, SlowestChoiceSeconds: 30}

	unlocked := eval.Evaluate(prior, result, ctx)

	// High accuracy still counts on a loss; the win-gated ones must not.
	assert.Equal(t, []string{"sharp-counsel"}, unlockedIDs(unlocked))
}

func TestEvaluateStreakAndCollection(t *testing.T) {
	eval := newEvaluator(time.Now())

	prior := entity.DefaultPlayerStats("player-1")
	prior.CasesWon = 11
	for _, id := range []string{"first-victory", "swift-justice", "sharp-counsel", "perfect-strategist", "landslide-verdict", "quick-thinker"} {
		prior.Achievements = append(prior.Achievements, entity.UnlockedAchievement{
			Achievement: entity.Achievement{ID: id},
		})
	}

	result := &entity.CaseResult{Won: true, Accuracy: 0.5, TimeElapsed: 2000, TotalChoices: 4}
	ctx := EvalContext{
		CasesWon:             12,
		WinStreak:            5,
		TotalCasesPlayed:     13,
		TotalCasesAvailable:  12,
		SlowestChoiceSeconds: 44,
	}

	unlocked := eval.Evaluate(prior, result, ctx)
	assert.Equal(t, []string{"on-a-roll", "master-advocate", "seasoned-litigator"}, unlockedIDs(unlocked))
}

func TestEvaluateEmptyCatalog(t *testing.T) {
	eval := NewAchievementEvaluator(nil, fixedClock{now: time.Now()})
	unlocked := eval.Evaluate(entity.DefaultPlayerStats("p"), &entity.CaseResult{Won: true}, EvalContext{})
	assert.Empty(t, unlocked)
}

func TestQuickThinkerRequiresChoices(t *testing.T) {
	eval := newEvaluator(time.Now())

	prior := entity.DefaultPlayerStats("player-1")
	prior.Achievements = []entity.UnlockedAchievement{
		{Achievement: entity.Achievement{ID: "first-victory"}},
	}

	// Zero choices means no timing data; the predicate must not fire.
	result := &entity.CaseResult{Won: true, TimeElapsed: 2000, TotalChoices: 0}
	unlocked := eval.Evaluate(prior, result, EvalContext{CasesWon: 2, SlowestChoiceSeconds: 0})
	assert.NotContains(t, unlockedIDs(unlocked), "quick-thinker")
	assert.NotContains(t, unlockedIDs(unlocked), "perfect-strategist")
}
