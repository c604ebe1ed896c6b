package usecase

import (
	"context"
	"sync"

	"nyayapath/internal/domain/entity"
	"nyayapath/internal/domain/repository"
	"nyayapath/internal/domain/service"
	"nyayapath/pkg/errors"
	"nyayapath/pkg/logger"
)

// Levels at which higher difficulty tiers open up.
const (
	intermediateUnlockLevel = 3
	advancedUnlockLevel     = 6
)

// ProgressionUseCase owns the one-per-case fold of battle outcomes into
// durable player stats. All mutation of a player's stats document goes
// through here, serialized by a per-player lock, so concurrent
// completions never interleave their read-modify-write cycles.
type ProgressionUseCase struct {
	statsRepo repository.PlayerStatsRepository
	caseRepo  repository.CaseRepository
	scoring   *service.ScoringService
	evaluator *service.AchievementEvaluator
	clock     service.Clock

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewProgressionUseCase(
	statsRepo repository.PlayerStatsRepository,
	caseRepo repository.CaseRepository,
	scoring *service.ScoringService,
	evaluator *service.AchievementEvaluator,
	clock service.Clock,
) *ProgressionUseCase {
	return &ProgressionUseCase{
		statsRepo: statsRepo,
		caseRepo:  caseRepo,
		scoring:   scoring,
		evaluator: evaluator,
		clock:     clock,
		locks:     make(map[string]*sync.Mutex),
	}
}

func (uc *ProgressionUseCase) playerLock(playerID string) *sync.Mutex {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	lock, ok := uc.locks[playerID]
	if !ok {
		lock = &sync.Mutex{}
		uc.locks[playerID] = lock
	}
	return lock
}

// CaseCompletion is everything the client needs to render the end-of-case
// screen: the enriched result, the stats after the fold, and level-up
// info.
type CaseCompletion struct {
	Result         *entity.CaseResult  `json:"result"`
	Stats          *entity.PlayerStats `json:"stats"`
	LeveledUp      bool                `json:"leveledUp"`
	PreviousLevel  int                 `json:"previousLevel"`
	XPForNextLevel int64               `json:"xpForNextLevel"`
	NewUnlocks     []entity.Difficulty `json:"newUnlocks,omitempty"`
}

// CompleteCase folds a finished case into the player's stats: counters,
// streaks, running average, fastest win, XP (case award plus achievement
// rewards), recomputed level, and unlock sets. The fold happens exactly
// once per completed case.
//
// When the save fails the computed completion is still returned alongside
// a STORAGE_UNAVAILABLE error, so the client can show the outcome while
// the caller decides how to surface the durability failure.
func (uc *ProgressionUseCase) CompleteCase(ctx context.Context, playerID string, result *entity.CaseResult, difficulty entity.Difficulty, history []entity.ChoiceRecord) (*CaseCompletion, error) {
	lock := uc.playerLock(playerID)
	lock.Lock()
	defer lock.Unlock()

	stats := uc.loadStats(ctx, playerID)
	previousLevel := stats.Level

	// Snapshot before mutation; achievement predicates compare against
	// the pre-case state.
	prior := *stats
	prior.Achievements = append([]entity.UnlockedAchievement(nil), stats.Achievements...)

	casesBefore := stats.TotalCasesPlayed
	if result.Won {
		stats.CasesWon++
		stats.CurrentWinStreak++
		if stats.CurrentWinStreak > stats.BestWinStreak {
			stats.BestWinStreak = stats.CurrentWinStreak
		}
		if stats.FastestWin == nil || result.TimeElapsed < *stats.FastestWin {
			elapsed := result.TimeElapsed
			stats.FastestWin = &elapsed
		}
	} else {
		stats.CasesLost++
		stats.CurrentWinStreak = 0
	}
	stats.TotalCasesPlayed++
	stats.AverageScore = (stats.AverageScore*float64(casesBefore) + float64(result.Score)) / float64(casesBefore+1)
	stats.PerfectChoices += result.PerfectChoices
	stats.TotalChoices += result.TotalChoices

	if !stats.HasUnlockedCase(result.CaseID) {
		stats.UnlockedCases = append(stats.UnlockedCases, result.CaseID)
	}

	caseXP, err := uc.scoring.ComputeXP(result, difficulty)
	if err != nil {
		return nil, err
	}
	result.XPEarned = caseXP

	unlocked := uc.evaluator.Evaluate(&prior, result, service.EvalContext{
		CasesWon:             stats.CasesWon,
		WinStreak:            stats.CurrentWinStreak,
		TotalCasesPlayed:     stats.TotalCasesPlayed,
		Difficulty:           difficulty,
		TotalCasesAvailable:  uc.totalCases(ctx),
		SlowestChoiceSeconds: slowestChoice(history),
	})
	result.AchievementsUnlocked = unlocked

	totalAward := caseXP
	for _, a := range unlocked {
		totalAward += a.XPReward
	}
	stats.Achievements = append(stats.Achievements, unlocked...)
	stats.TotalXP += totalAward
	stats.Level = uc.scoring.LevelForXP(stats.TotalXP)

	var newUnlocks []entity.Difficulty
	for _, tier := range []struct {
		level      int
		difficulty entity.Difficulty
	}{
		{intermediateUnlockLevel, entity.DifficultyIntermediate},
		{advancedUnlockLevel, entity.DifficultyAdvanced},
	} {
		if stats.Level >= tier.level && !stats.HasUnlockedDifficulty(tier.difficulty) {
			stats.UnlockedDifficulties = append(stats.UnlockedDifficulties, tier.difficulty)
			newUnlocks = append(newUnlocks, tier.difficulty)
		}
	}

	stats.UpdatedAt = uc.clock.Now()

	completion := &CaseCompletion{
		Result:         result,
		Stats:          stats,
		LeveledUp:      stats.Level > previousLevel,
		PreviousLevel:  previousLevel,
		XPForNextLevel: uc.scoring.XPForNextLevel(stats.Level),
		NewUnlocks:     newUnlocks,
	}

	if err := uc.statsRepo.Save(ctx, stats); err != nil {
		logger.Error("Failed to persist stats for %s: %v", playerID, err)
		return completion, errors.Unavailable("Progress could not be saved", err)
	}

	return completion, nil
}

// CompleteQuiz grants a quiz attempt's XP and bumps the quiz counter.
// Quiz completions share the per-player serialization with case folds.
func (uc *ProgressionUseCase) CompleteQuiz(ctx context.Context, playerID string, attempt *entity.QuizAttempt) (*entity.PlayerStats, error) {
	lock := uc.playerLock(playerID)
	lock.Lock()
	defer lock.Unlock()

	stats := uc.loadStats(ctx, playerID)
	stats.QuizzesCompleted++
	stats.TotalXP += attempt.XPEarned
	stats.Level = uc.scoring.LevelForXP(stats.TotalXP)
	stats.UpdatedAt = uc.clock.Now()

	if err := uc.statsRepo.Save(ctx, stats); err != nil {
		logger.Error("Failed to persist stats for %s: %v", playerID, err)
		return stats, errors.Unavailable("Progress could not be saved", err)
	}
	return stats, nil
}

type ProgressView struct {
	Stats          *entity.PlayerStats `json:"stats"`
	XPForNextLevel int64               `json:"xpForNextLevel"`
	MaxLevel       int                 `json:"maxLevel"`
}

func (uc *ProgressionUseCase) GetProgress(ctx context.Context, playerID string) (*ProgressView, error) {
	stats := uc.loadStats(ctx, playerID)
	return &ProgressView{
		Stats:          stats,
		XPForNextLevel: uc.scoring.XPForNextLevel(stats.Level),
		MaxLevel:       uc.scoring.MaxLevel(),
	}, nil
}

func (uc *ProgressionUseCase) Leaderboard(ctx context.Context, limit int) ([]*entity.PlayerStats, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	top, err := uc.statsRepo.Top(ctx, limit)
	if err != nil {
		return nil, errors.Internal("Failed to load leaderboard", err)
	}
	for _, stats := range top {
		stats.Normalize()
	}
	return top, nil
}

// loadStats reads a player's document, falling back to the zero-state
// when no document exists, and normalizes whatever was stored so the
// fold never operates on malformed fields.
func (uc *ProgressionUseCase) loadStats(ctx context.Context, playerID string) *entity.PlayerStats {
	stats, err := uc.statsRepo.Get(ctx, playerID)
	if err != nil || stats == nil {
		return entity.DefaultPlayerStats(playerID)
	}
	stats.PlayerID = playerID
	stats.Normalize()
	return stats
}

func (uc *ProgressionUseCase) totalCases(ctx context.Context) int {
	count, err := uc.caseRepo.Count(ctx)
	if err != nil {
		logger.Warn("Failed to count cases for achievement evaluation: %v", err)
		return 0
	}
	return count
}

func slowestChoice(history []entity.ChoiceRecord) int64 {
	var slowest int64
	for _, record := range history {
		if record.TimeTaken > slowest {
			slowest = record.TimeTaken
		}
	}
	return slowest
}
