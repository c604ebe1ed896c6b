package service

import (
	"fmt"

	"nyayapath/internal/domain/entity"
	"nyayapath/pkg/errors"
)

// DifficultyTier holds the fixed XP constants for one difficulty.
type DifficultyTier struct {
	BaseXP             int64
	WinBonus           int64
	PerfectChoiceBonus int64
	TimeBonus          int64
}

// AccuracyBracket awards Bonus when accuracy >= Min. Brackets are
// evaluated in order and only the first match applies.
type AccuracyBracket struct {
	Min   float64
	Bonus int64
}

// ScoringConfig is balance-tuning content, not logic: every constant the
// progression engine consults lives here so rebalancing is a config
// change. Note that changing level thresholds re-levels every player
// retroactively, since level is always recomputed from totalXP.
type ScoringConfig struct {
	Tiers            map[entity.Difficulty]DifficultyTier
	AccuracyBrackets []AccuracyBracket
	FastWinSeconds   int64 // time bonus applies strictly below this

	// LevelThresholds is ascending, first entry 0. Level n (1-based)
	// is held from thresholds[n-1] up to but excluding thresholds[n].
	LevelThresholds []int64

	// Verdict bounds, both strict: score > WinScore wins,
	// score < LossScore loses, anything else is a hung jury.
	WinScore  int
	LossScore int

	// Per-phase choice countdown limits, seconds.
	ChoiceTimeLimits map[entity.BattlePhase]int64
}

func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		Tiers: map[entity.Difficulty]DifficultyTier{
			entity.DifficultyBeginner:     {BaseXP: 100, WinBonus: 150, PerfectChoiceBonus: 25, TimeBonus: 50},
			entity.DifficultyIntermediate: {BaseXP: 200, WinBonus: 250, PerfectChoiceBonus: 40, TimeBonus: 75},
			entity.DifficultyAdvanced:     {BaseXP: 300, WinBonus: 400, PerfectChoiceBonus: 60, TimeBonus: 100},
		},
		AccuracyBrackets: []AccuracyBracket{
			{Min: 0.9, Bonus: 100},
			{Min: 0.75, Bonus: 50},
		},
		FastWinSeconds: 900,
		LevelThresholds: []int64{
			0, 500, 1200, 2500, 4000, 6000, 8500, 11500, 15000, 17500, 20000,
		},
		WinScore:  20,
		LossScore: -20,
		ChoiceTimeLimits: map[entity.BattlePhase]int64{
			entity.PhaseOpeningStatements:    45,
			entity.PhaseEvidencePresentation: 60,
			entity.PhaseWitnessExamination:   50,
			entity.PhaseClosingArguments:     45,
		},
	}
}

type ScoringService struct {
	cfg ScoringConfig
}

func NewScoringService(cfg ScoringConfig) *ScoringService {
	return &ScoringService{cfg: cfg}
}

// ComputeXP converts a case outcome into an XP award for the given
// difficulty tier. Deterministic: same inputs always produce the same
// award, so callers never retry on error.
func (s *ScoringService) ComputeXP(result *entity.CaseResult, difficulty entity.Difficulty) (int64, error) {
	tier, ok := s.cfg.Tiers[difficulty]
	if !ok {
		return 0, errors.BadRequest(fmt.Sprintf("invalid difficulty tier %q", difficulty), nil)
	}

	xp := tier.BaseXP
	if result.Won {
		xp += tier.WinBonus
	}
	xp += int64(result.PerfectChoices) * tier.PerfectChoiceBonus
	if result.TimeElapsed < s.cfg.FastWinSeconds {
		xp += tier.TimeBonus
	}
	for _, bracket := range s.cfg.AccuracyBrackets {
		if result.Accuracy >= bracket.Min {
			xp += bracket.Bonus
			break
		}
	}

	return xp, nil
}

// LevelForXP resolves the 1-based level from cumulative XP: the highest
// threshold index i with totalXP >= thresholds[i], plus one.
func (s *ScoringService) LevelForXP(totalXP int64) int {
	if totalXP < 0 {
		totalXP = 0
	}
	level := 1
	for i, threshold := range s.cfg.LevelThresholds {
		if totalXP >= threshold {
			level = i + 1
		} else {
			break
		}
	}
	return level
}

// XPForNextLevel returns the cumulative XP needed to reach level+1, or
// the last threshold when the table's end has been reached.
func (s *ScoringService) XPForNextLevel(level int) int64 {
	thresholds := s.cfg.LevelThresholds
	if level >= len(thresholds) {
		return thresholds[len(thresholds)-1]
	}
	if level < 1 {
		level = 1
	}
	return thresholds[level]
}

func (s *ScoringService) MaxLevel() int {
	return len(s.cfg.LevelThresholds)
}

// VerdictForScore applies the verdict policy: both bounds are open, so
// a score equal to either threshold is still a hung jury.
func (s *ScoringService) VerdictForScore(score int) entity.Verdict {
	switch {
	case score > s.cfg.WinScore:
		return entity.VerdictWin
	case score < s.cfg.LossScore:
		return entity.VerdictLoss
	default:
		return entity.VerdictHung
	}
}

// ChoiceTimeLimit returns the per-phase choice countdown in seconds.
func (s *ScoringService) ChoiceTimeLimit(phase entity.BattlePhase) int64 {
	if limit, ok := s.cfg.ChoiceTimeLimits[phase]; ok {
		return limit
	}
	return 45
}
