package usecase

import (
	"context"
	"testing"

	"nyayapath/internal/domain/entity"
	"nyayapath/internal/domain/service"
	"nyayapath/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProgressionFixture(t *testing.T) (*ProgressionUseCase, *fakeStatsRepo, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	statsRepo := newFakeStatsRepo()
	caseRepo := newFakeCaseRepo(testScenario("case-1"), testScenario("case-2"))

	scoring := service.NewScoringService(service.DefaultScoringConfig())
	evaluator := service.NewAchievementEvaluator(service.DefaultAchievementCatalog(), clock)
	return NewProgressionUseCase(statsRepo, caseRepo, scoring, evaluator, clock), statsRepo, clock
}

func wonResult(caseID string, score int) *entity.CaseResult {
	return &entity.CaseResult{
		CaseID:         caseID,
		Won:            true,
		Verdict:        entity.VerdictWin,
		Score:          score,
		Accuracy:       1.0,
		TimeElapsed:    600,
		PerfectChoices: 4,
		TotalChoices:   4,
	}
}

func lostResult(caseID string) *entity.CaseResult {
	return &entity.CaseResult{
		CaseID:       caseID,
		Won:          false,
		Verdict:      entity.VerdictLoss,
		Score:        -30,
		Accuracy:     0.25,
		TimeElapsed:  1100,
		TotalChoices: 4,
	}
}

func TestCompleteCaseFirstWin(t *testing.T) {
	uc, statsRepo, _ := newProgressionFixture(t)
	ctx := context.Background()

	completion, err := uc.CompleteCase(ctx, "player-1", wonResult("case-1", 80), entity.DifficultyBeginner, nil)
	require.NoError(t, err)

	stats := completion.Stats
	assert.Equal(t, 1, stats.CasesWon)
	assert.Equal(t, 0, stats.CasesLost)
	assert.Equal(t, 1, stats.TotalCasesPlayed)
	assert.Equal(t, 1, stats.CurrentWinStreak)
	assert.Equal(t, 1, stats.BestWinStreak)
	assert.Equal(t, 80.0, stats.AverageScore)
	assert.Equal(t, 4, stats.PerfectChoices)
	assert.Equal(t, 4, stats.TotalChoices)
	require.NotNil(t, stats.FastestWin)
	assert.Equal(t, int64(600), *stats.FastestWin)
	assert.Contains(t, stats.UnlockedCases, "case-1")

	// XP: base 100 + win 150 + 4*25 + time 50 + accuracy 100 = 500 from
	// the case, plus achievement rewards on top.
	assert.Equal(t, int64(500), completion.Result.XPEarned)
	assert.NotEmpty(t, completion.Result.AchievementsUnlocked)
	var rewards int64
	for _, a := range completion.Result.AchievementsUnlocked {
		rewards += a.XPReward
	}
	assert.Equal(t, 500+rewards, stats.TotalXP)
	assert.Equal(t, stats.Level, completion.Stats.Level)

	// Fold persisted.
	saved, err := statsRepo.Get(ctx, "player-1")
	require.NoError(t, err)
	assert.Equal(t, stats.TotalXP, saved.TotalXP)
}

func TestCompleteCaseCounterInvariants(t *testing.T) {
	uc, _, _ := newProgressionFixture(t)
	ctx := context.Background()

	results := []*entity.CaseResult{
		wonResult("case-1", 40),
		lostResult("case-2"),
		wonResult("case-2", 60),
		wonResult("case-1", 30),
	}

	var stats *entity.PlayerStats
	for _, result := range results {
		completion, err := uc.CompleteCase(ctx, "player-1", result, entity.DifficultyBeginner, nil)
		require.NoError(t, err)
		stats = completion.Stats
		assert.Equal(t, stats.TotalCasesPlayed, stats.CasesWon+stats.CasesLost)
		assert.GreaterOrEqual(t, stats.BestWinStreak, stats.CurrentWinStreak)
	}

	assert.Equal(t, 3, stats.CasesWon)
	assert.Equal(t, 1, stats.CasesLost)
	assert.Equal(t, 2, stats.CurrentWinStreak)
	// Average of 40, -30, 60, 30.
	assert.InDelta(t, 25.0, stats.AverageScore, 1e-9)
	// Duplicate case ids collapse in the unlock set.
	assert.Len(t, stats.UnlockedCases, 2)
}

func TestCompleteCaseLossResetsStreak(t *testing.T) {
	uc, _, _ := newProgressionFixture(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := uc.CompleteCase(ctx, "player-1", wonResult("case-1", 40), entity.DifficultyBeginner, nil)
		require.NoError(t, err)
	}
	completion, err := uc.CompleteCase(ctx, "player-1", lostResult("case-1"), entity.DifficultyBeginner, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, completion.Stats.CurrentWinStreak)
	assert.Equal(t, 2, completion.Stats.BestWinStreak)
	assert.Nil(t, completion.Result.AchievementsUnlocked)
}

func TestCompleteCaseFastestWinOnlyImproves(t *testing.T) {
	uc, _, _ := newProgressionFixture(t)
	ctx := context.Background()

	first := wonResult("case-1", 40)
	first.TimeElapsed = 700
	_, err := uc.CompleteCase(ctx, "player-1", first, entity.DifficultyBeginner, nil)
	require.NoError(t, err)

	slower := wonResult("case-1", 40)
	slower.TimeElapsed = 1000
	completion, err := uc.CompleteCase(ctx, "player-1", slower, entity.DifficultyBeginner, nil)
	require.NoError(t, err)
	require.NotNil(t, completion.Stats.FastestWin)
	assert.Equal(t, int64(700), *completion.Stats.FastestWin)

	faster := wonResult("case-1", 40)
	faster.TimeElapsed = 300
	completion, err = uc.CompleteCase(ctx, "player-1", faster, entity.DifficultyBeginner, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(300), *completion.Stats.FastestWin)
}

func TestCompleteCaseStorageFailureStillReturnsOutcome(t *testing.T) {
	uc, statsRepo, _ := newProgressionFixture(t)
	ctx := context.Background()

	statsRepo.failSave = true
	completion, err := uc.CompleteCase(ctx, "player-1", wonResult("case-1", 80), entity.DifficultyBeginner, nil)

	require.Error(t, err)
	assert.Equal(t, "STORAGE_UNAVAILABLE", errors.CodeOf(err))
	require.NotNil(t, completion, "outcome must survive a durability failure")
	assert.Equal(t, int64(500), completion.Result.XPEarned)
	assert.Equal(t, 1, completion.Stats.CasesWon)
}

func TestCompleteCaseNormalizesCorruptStoredStats(t *testing.T) {
	uc, statsRepo, _ := newProgressionFixture(t)
	ctx := context.Background()

	// A document with drifted fields: negative XP, broken counters,
	// nil slices.
	statsRepo.stats["player-1"] = &entity.PlayerStats{
		PlayerID:         "player-1",
		TotalXP:          -500,
		Level:            0,
		CasesWon:         2,
		CasesLost:        1,
		TotalCasesPlayed: 9,
	}

	completion, err := uc.CompleteCase(ctx, "player-1", wonResult("case-1", 40), entity.DifficultyBeginner, nil)
	require.NoError(t, err)

	stats := completion.Stats
	assert.Equal(t, 3, stats.CasesWon)
	assert.Equal(t, 4, stats.TotalCasesPlayed, "played counter rebuilt from won+lost before the fold")
	assert.GreaterOrEqual(t, stats.TotalXP, int64(0))
	assert.GreaterOrEqual(t, stats.Level, 1)
	assert.NotNil(t, stats.UnlockedCases)
	assert.Contains(t, stats.UnlockedDifficulties, entity.DifficultyBeginner)
}

func TestCompleteCaseAchievementXPCountsTowardLevel(t *testing.T) {
	uc, _, _ := newProgressionFixture(t)
	ctx := context.Background()

	completion, err := uc.CompleteCase(ctx, "player-1", wonResult("case-1", 80), entity.DifficultyBeginner, nil)
	require.NoError(t, err)

	// 500 case XP alone is level 2 (threshold 500); achievement rewards
	// push past 1200 into level 3 and unlock intermediate.
	assert.Greater(t, completion.Stats.TotalXP, int64(1200))
	assert.GreaterOrEqual(t, completion.Stats.Level, 3)
	assert.True(t, completion.LeveledUp)
	assert.Contains(t, completion.Stats.UnlockedDifficulties, entity.DifficultyIntermediate)
	assert.Contains(t, completion.NewUnlocks, entity.DifficultyIntermediate)
}

func TestGetProgressDefaultsForNewPlayer(t *testing.T) {
	uc, _, _ := newProgressionFixture(t)

	view, err := uc.GetProgress(context.Background(), "fresh-player")
	require.NoError(t, err)
	assert.Equal(t, int64(0), view.Stats.TotalXP)
	assert.Equal(t, 1, view.Stats.Level)
	assert.Equal(t, int64(500), view.XPForNextLevel)
	assert.Equal(t, []entity.Difficulty{entity.DifficultyBeginner}, view.Stats.UnlockedDifficulties)
}

func TestCompleteQuizGrantsXP(t *testing.T) {
	uc, statsRepo, clock := newProgressionFixture(t)
	ctx := context.Background()

	attempt := &entity.QuizAttempt{
		ID:       "attempt-1",
		QuizID:   "quiz-1",
		PlayerID: "player-1",
		Correct:  8,
		Total:    10,
		XPEarned: 160,
	}
	stats, err := uc.CompleteQuiz(ctx, "player-1", attempt)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.QuizzesCompleted)
	assert.Equal(t, int64(160), stats.TotalXP)
	assert.Equal(t, clock.Now(), stats.UpdatedAt)

	saved, err := statsRepo.Get(ctx, "player-1")
	require.NoError(t, err)
	assert.Equal(t, int64(160), saved.TotalXP)
}
