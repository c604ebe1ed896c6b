package entity

import (
	"time"
)

// PlayerStats is the durable cross-session progression record, one
// document per player. It is mutated exactly once per completed case,
// never mid-case.
type PlayerStats struct {
	PlayerID string `json:"playerId" firestore:"playerId"`

	TotalXP int64 `json:"totalXP" firestore:"totalXP"`
	// Level is always recomputed from TotalXP against the threshold
	// table; it is stored for display only.
	Level int `json:"level" firestore:"level"`

	CasesWon         int `json:"casesWon" firestore:"casesWon"`
	CasesLost        int `json:"casesLost" firestore:"casesLost"`
	CurrentWinStreak int `json:"currentWinStreak" firestore:"currentWinStreak"`
	BestWinStreak    int `json:"bestWinStreak" firestore:"bestWinStreak"`
	TotalCasesPlayed int `json:"totalCasesPlayed" firestore:"totalCasesPlayed"`

	AverageScore   float64 `json:"averageScore" firestore:"averageScore"`
	PerfectChoices int     `json:"perfectChoices" firestore:"perfectChoices"`
	TotalChoices   int     `json:"totalChoices" firestore:"totalChoices"`

	// FastestWin is the minimum elapsed seconds among won cases;
	// nil until the first win is recorded.
	FastestWin *int64 `json:"fastestWin,omitempty" firestore:"fastestWin,omitempty"`

	Achievements         []UnlockedAchievement `json:"achievements" firestore:"achievements"`
	UnlockedCases        []string              `json:"unlockedCases" firestore:"unlockedCases"`
	UnlockedDifficulties []Difficulty          `json:"unlockedDifficulties" firestore:"unlockedDifficulties"`

	QuizzesCompleted int `json:"quizzesCompleted" firestore:"quizzesCompleted"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// DefaultPlayerStats is the canonical zero-state created on first play
// and used to back-fill corrupted or partially stored records.
func DefaultPlayerStats(playerID string) *PlayerStats {
	now := time.Now()
	return &PlayerStats{
		PlayerID:             playerID,
		TotalXP:              0,
		Level:                1,
		Achievements:         []UnlockedAchievement{},
		UnlockedCases:        []string{},
		UnlockedDifficulties: []Difficulty{DifficultyBeginner},
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// Normalize back-fills missing or nonsensical fields from the default
// zero-state so that schema drift in stored documents degrades
// gracefully instead of wiping long-lived progress.
func (s *PlayerStats) Normalize() {
	if s.TotalXP < 0 {
		s.TotalXP = 0
	}
	if s.Level < 1 {
		s.Level = 1
	}
	if s.CasesWon < 0 {
		s.CasesWon = 0
	}
	if s.CasesLost < 0 {
		s.CasesLost = 0
	}
	if s.CurrentWinStreak < 0 {
		s.CurrentWinStreak = 0
	}
	if s.BestWinStreak < s.CurrentWinStreak {
		s.BestWinStreak = s.CurrentWinStreak
	}
	if s.TotalCasesPlayed != s.CasesWon+s.CasesLost {
		s.TotalCasesPlayed = s.CasesWon + s.CasesLost
	}
	if s.PerfectChoices < 0 {
		s.PerfectChoices = 0
	}
	if s.TotalChoices < s.PerfectChoices {
		s.TotalChoices = s.PerfectChoices
	}
	if s.FastestWin != nil && *s.FastestWin <= 0 {
		s.FastestWin = nil
	}
	if s.Achievements == nil {
		s.Achievements = []UnlockedAchievement{}
	}
	if s.UnlockedCases == nil {
		s.UnlockedCases = []string{}
	}
	if len(s.UnlockedDifficulties) == 0 {
		s.UnlockedDifficulties = []Difficulty{DifficultyBeginner}
	}
	if s.QuizzesCompleted < 0 {
		s.QuizzesCompleted = 0
	}
}

func (s *PlayerStats) HasAchievement(id string) bool {
	for _, a := range s.Achievements {
		if a.ID == id {
			return true
		}
	}
	return false
}

func (s *PlayerStats) HasUnlockedCase(caseID string) bool {
	for _, id := range s.UnlockedCases {
		if id == caseID {
			return true
		}
	}
	return false
}

func (s *PlayerStats) HasUnlockedDifficulty(d Difficulty) bool {
	for _, existing := range s.UnlockedDifficulties {
		if existing == d {
			return true
		}
	}
	return false
}
