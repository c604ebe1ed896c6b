package service

import (
	"nyayapath/internal/domain/entity"
)

// EvalContext carries counters the caller has already folded for the
// completing case, alongside the prior stats the predicates compare
// against.
type EvalContext struct {
	CasesWon            int
	WinStreak           int
	TotalCasesPlayed    int
	NewLevel            int
	Difficulty          entity.Difficulty
	TotalCasesAvailable int
	// SlowestChoiceSeconds is the longest any single choice took this
	// case, from the battle's choice history.
	SlowestChoiceSeconds int64
}

// AchievementDefinition pairs catalog metadata with an independent
// unlock predicate. Predicates never see each other's results; several
// achievements can unlock from the same case.
type AchievementDefinition struct {
	entity.Achievement
	Unlocks func(prior *entity.PlayerStats, result *entity.CaseResult, ctx EvalContext) bool
}

// QuickChoiceSeconds is the per-choice limit for the quick-thinker
// achievement.
const QuickChoiceSeconds = 10

// DefaultAchievementCatalog returns the full achievement registry in
// definition order, which is also the deterministic evaluation order.
func DefaultAchievementCatalog() []AchievementDefinition {
	return []AchievementDefinition{
		{
			Achievement: entity.Achievement{
				ID:          "first-victory",
				Name:        "First Victory",
				Description: "Win your first case",
				Icon:        "🏆",
				XPReward:    50,
				Rarity:      entity.AchievementRarityCommon,
			},
			Unlocks: func(prior *entity.PlayerStats, result *entity.CaseResult, ctx EvalContext) bool {
				return result.Won && prior.CasesWon == 0
			},
		},
		{
			Achievement: entity.Achievement{
				ID:          "on-a-roll",
				Name:        "On a Roll",
				Description: "Win five cases in a row",
				Icon:        "🔥",
				XPReward:    150,
				Rarity:      entity.AchievementRarityRare,
			},
			Unlocks: func(prior *entity.PlayerStats, result *entity.CaseResult, ctx EvalContext) bool {
				return ctx.WinStreak >= 5
			},
		},
		{
			Achievement: entity.Achievement{
				ID:          "master-advocate",
				Name:        "Master Advocate",
				Description: "Win every case in the library",
				Icon:        "⚖️",
				XPReward:    500,
				Rarity:      entity.AchievementRarityLegendary,
			},
			Unlocks: func(prior *entity.PlayerStats, result *entity.CaseResult, ctx EvalContext) bool {
				return ctx.TotalCasesAvailable > 0 && ctx.CasesWon >= ctx.TotalCasesAvailable
			},
		},
		{
			Achievement: entity.Achievement{
				ID:          "swift-justice",
				Name:        "Swift Justice",
				Description: "Win a case in under fifteen minutes",
				Icon:        "⚡",
				XPReward:    150,
				Rarity:      entity.AchievementRarityRare,
			},
			Unlocks: func(prior *entity.PlayerStats, result *entity.CaseResult, ctx EvalContext) bool {
				return result.Won && result.TimeElapsed < 900
			},
		},
		{
			Achievement: entity.Achievement{
				ID:          "perfect-strategist",
				Name:        "Perfect Strategist",
				Description: "Make only perfect choices in a case",
				Icon:        "🎯",
				XPReward:    300,
				Rarity:      entity.AchievementRarityEpic,
			},
			Unlocks: func(prior *entity.PlayerStats, result *entity.CaseResult, ctx EvalContext) bool {
				return result.TotalChoices > 0 && result.PerfectChoices == result.TotalChoices
			},
		},
		{
			Achievement: entity.Achievement{
				ID:          "sharp-counsel",
				Name:        "Sharp Counsel",
				Description: "Finish a case with at least 90% accuracy",
				Icon:        "🧠",
				XPReward:    150,
				Rarity:      entity.AchievementRarityRare,
			},
			Unlocks: func(prior *entity.PlayerStats, result *entity.CaseResult, ctx EvalContext) bool {
				return result.Accuracy >= 0.9
			},
		},
		{
			Achievement: entity.Achievement{
				ID:          "landslide-verdict",
				Name:        "Landslide Verdict",
				Description: "Win a case with a jury score of 60 or more",
				Icon:        "🌊",
				XPReward:    300,
				Rarity:      entity.AchievementRarityEpic,
			},
			Unlocks: func(prior *entity.PlayerStats, result *entity.CaseResult, ctx EvalContext) bool {
				return result.Won && result.Score >= 60
			},
		},
		{
			Achievement: entity.Achievement{
				ID:          "seasoned-litigator",
				Name:        "Seasoned Litigator",
				Description: "Play ten cases",
				Icon:        "📚",
				XPReward:    150,
				Rarity:      entity.AchievementRarityRare,
			},
			Unlocks: func(prior *entity.PlayerStats, result *entity.CaseResult, ctx EvalContext) bool {
				return ctx.TotalCasesPlayed >= 10
			},
		},
		{
			Achievement: entity.Achievement{
				ID:          "quick-thinker",
				Name:        "Quick Thinker",
				Description: "Resolve every choice within ten seconds",
				Icon:        "⏱️",
				XPReward:    300,
				Rarity:      entity.AchievementRarityEpic,
			},
			Unlocks: func(prior *entity.PlayerStats, result *entity.CaseResult, ctx EvalContext) bool {
				return result.TotalChoices > 0 && ctx.SlowestChoiceSeconds <= QuickChoiceSeconds
			},
		},
	}
}

// AchievementEvaluator runs the catalog against a completed case in a
// single pass.
type AchievementEvaluator struct {
	catalog []AchievementDefinition
	clock   Clock
}

func NewAchievementEvaluator(catalog []AchievementDefinition, clock Clock) *AchievementEvaluator {
	return &AchievementEvaluator{
		catalog: catalog,
		clock:   clock,
	}
}

// Catalog returns a copy of the registered definitions.
func (e *AchievementEvaluator) Catalog() []AchievementDefinition {
	out := make([]AchievementDefinition, len(e.catalog))
	copy(out, e.catalog)
	return out
}

// Evaluate returns the achievements newly satisfied by this case result,
// in definition order. Ids already present on prior are never
// re-emitted; UnlockedAt is stamped from the evaluator's clock.
func (e *AchievementEvaluator) Evaluate(prior *entity.PlayerStats, result *entity.CaseResult, ctx EvalContext) []entity.UnlockedAchievement {
	now := e.clock.Now()
	var unlocked []entity.UnlockedAchievement
	for _, def := range e.catalog {
		if prior.HasAchievement(def.ID) {
			continue
		}
		if def.Unlocks(prior, result, ctx) {
			unlocked = append(unlocked, entity.UnlockedAchievement{
				Achievement: def.Achievement,
				UnlockedAt:  now,
			})
		}
	}
	return unlocked
}
