package entity

import (
	"time"
)

type AchievementRarity string

const (
	AchievementRarityCommon    AchievementRarity = "common"
	AchievementRarityRare      AchievementRarity = "rare"
	AchievementRarityEpic      AchievementRarity = "epic"
	AchievementRarityLegendary AchievementRarity = "legendary"
)

// Achievement is a static definition from the catalog.
type Achievement struct {
	ID          string            `json:"id" firestore:"id"`
	Name        string            `json:"name" firestore:"name"`
	Description string            `json:"description" firestore:"description"`
	Icon        string            `json:"icon" firestore:"icon"`
	XPReward    int64             `json:"xpReward" firestore:"xpReward"`
	Rarity      AchievementRarity `json:"rarity" firestore:"rarity"`
}

// UnlockedAchievement records the one-time unlock of a catalog entry.
// An id appears at most once per player; re-satisfying the condition
// after unlock is a no-op.
type UnlockedAchievement struct {
	Achievement
	UnlockedAt time.Time `json:"unlockedAt" firestore:"unlockedAt"`
}
