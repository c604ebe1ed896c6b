package service

import (
	"testing"

	"nyayapath/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScoring() *ScoringService {
	return NewScoringService(DefaultScoringConfig())
}

func TestComputeXPBeginnerPerfectRun(t *testing.T) {
	s := newScoring()
	tier := DefaultScoringConfig().Tiers[entity.DifficultyBeginner]

	result := &entity.CaseResult{
		Won:            true,
		PerfectChoices: 4,
		TotalChoices:   4,
		TimeElapsed:    500,
		Accuracy:       1.0,
	}

	xp, err := s.ComputeXP(result, entity.DifficultyBeginner)
	require.NoError(t, err)

	want := tier.BaseXP + tier.WinBonus + 4*tier.PerfectChoiceBonus + tier.TimeBonus + 100
	assert.Equal(t, want, xp)
}

func TestComputeXPInvalidDifficulty(t *testing.T) {
	s := newScoring()

	_, err := s.ComputeXP(&entity.CaseResult{}, entity.Difficulty("nightmare"))
	assert.Error(t, err)
}

func TestComputeXPNeverBelowBase(t *testing.T) {
	s := newScoring()

	result := &entity.CaseResult{
		Won:         false,
		TimeElapsed: 5000,
		Accuracy:    0.0,
	}

	for _, difficulty := range []entity.Difficulty{
		entity.DifficultyBeginner,
		entity.DifficultyIntermediate,
		entity.DifficultyAdvanced,
	} {
		xp, err := s.ComputeXP(result, difficulty)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, xp, DefaultScoringConfig().Tiers[difficulty].BaseXP)
	}
}

func TestComputeXPMonotonicity(t *testing.T) {
	s := newScoring()

	base := &entity.CaseResult{
		Won:            false,
		PerfectChoices: 1,
		TotalChoices:   4,
		TimeElapsed:    1200,
		Accuracy:       0.5,
	}
	baseXP, err := s.ComputeXP(base, entity.DifficultyIntermediate)
	require.NoError(t, err)

	win := *base
	win.Won = true
	winXP, err := s.ComputeXP(&win, entity.DifficultyIntermediate)
	require.NoError(t, err)
	assert.Greater(t, winXP, baseXP, "winning must strictly increase XP")

	perfect := *base
	perfect.PerfectChoices = 2
	perfectXP, err := s.ComputeXP(&perfect, entity.DifficultyIntermediate)
	require.NoError(t, err)
	assert.Greater(t, perfectXP, baseXP, "more perfect choices must strictly increase XP")

	fast := *base
	fast.TimeElapsed = 899
	fastXP, err := s.ComputeXP(&fast, entity.DifficultyIntermediate)
	require.NoError(t, err)
	assert.Greater(t, fastXP, baseXP, "finishing under the time threshold must strictly increase XP")

	accurate := *base
	accurate.Accuracy = 0.8
	accurateXP, err := s.ComputeXP(&accurate, entity.DifficultyIntermediate)
	require.NoError(t, err)
	assert.Greater(t, accurateXP, baseXP, "entering a higher accuracy bracket must strictly increase XP")
}

func TestComputeXPTimeBonusIsSingleThreshold(t *testing.T) {
	s := newScoring()

	at := &entity.CaseResult{TimeElapsed: 900}
	below := &entity.CaseResult{TimeElapsed: 899}

	atXP, err := s.ComputeXP(at, entity.DifficultyBeginner)
	require.NoError(t, err)
	belowXP, err := s.ComputeXP(below, entity.DifficultyBeginner)
	require.NoError(t, err)

	tier := DefaultScoringConfig().Tiers[entity.DifficultyBeginner]
	assert.Equal(t, tier.TimeBonus, belowXP-atXP)
}

func TestComputeXPAccuracyBracketFirstMatchOnly(t *testing.T) {
	s := newScoring()

	high := &entity.CaseResult{Accuracy: 0.95}
	mid := &entity.CaseResult{Accuracy: 0.8}
	low := &entity.CaseResult{Accuracy: 0.5}

	highXP, err := s.ComputeXP(high, entity.DifficultyBeginner)
	require.NoError(t, err)
	midXP, err := s.ComputeXP(mid, entity.DifficultyBeginner)
	require.NoError(t, err)
	lowXP, err := s.ComputeXP(low, entity.DifficultyBeginner)
	require.NoError(t, err)

	assert.Equal(t, int64(100), highXP-lowXP)
	assert.Equal(t, int64(50), midXP-lowXP)
}

func TestLevelForXPConsistency(t *testing.T) {
	s := newScoring()
	thresholds := DefaultScoringConfig().LevelThresholds

	samples := []int64{0, 1, 499, 500, 501, 1199, 1200, 4000, 19999, 20000, 250000}
	for _, xp := range samples {
		level := s.LevelForXP(xp)
		require.GreaterOrEqual(t, level, 1)
		require.LessOrEqual(t, level, len(thresholds))

		assert.GreaterOrEqual(t, xp, thresholds[level-1], "xp=%d level=%d", xp, level)
		if level < len(thresholds) {
			assert.Less(t, xp, thresholds[level], "xp=%d level=%d", xp, level)
		}
	}
}

func TestLevelForXPNegativeClampsToFirstLevel(t *testing.T) {
	s := newScoring()
	assert.Equal(t, 1, s.LevelForXP(-50))
}

func TestXPForNextLevel(t *testing.T) {
	s := newScoring()
	thresholds := DefaultScoringConfig().LevelThresholds

	assert.Equal(t, thresholds[1], s.XPForNextLevel(1))
	assert.Equal(t, thresholds[5], s.XPForNextLevel(5))

	// No leveling past the table's end.
	max := thresholds[len(thresholds)-1]
	assert.Equal(t, max, s.XPForNextLevel(len(thresholds)))
	assert.Equal(t, max, s.XPForNextLevel(len(thresholds)+3))
}

func TestVerdictBoundaries(t *testing.T) {
	s := newScoring()

	assert.Equal(t, entity.VerdictWin, s.VerdictForScore(21))
	assert.Equal(t, entity.VerdictHung, s.VerdictForScore(20))
	assert.Equal(t, entity.VerdictHung, s.VerdictForScore(0))
	assert.Equal(t, entity.VerdictHung, s.VerdictForScore(-20))
	assert.Equal(t, entity.VerdictLoss, s.VerdictForScore(-21))
}

func TestChoiceTimeLimits(t *testing.T) {
	s := newScoring()

	assert.Equal(t, int64(45), s.ChoiceTimeLimit(entity.PhaseOpeningStatements))
	assert.Equal(t, int64(60), s.ChoiceTimeLimit(entity.PhaseEvidencePresentation))
	assert.Equal(t, int64(50), s.ChoiceTimeLimit(entity.PhaseWitnessExamination))
	assert.Equal(t, int64(45), s.ChoiceTimeLimit(entity.PhaseClosingArguments))
}
