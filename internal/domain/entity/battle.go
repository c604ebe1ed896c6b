package entity

import (
	"time"
)

// BattlePhase is one of the four fixed stages of a courtroom case.
// Phases advance strictly forward and are never skipped or revisited.
type BattlePhase string

const (
	PhaseOpeningStatements    BattlePhase = "opening-statements"
	PhaseEvidencePresentation BattlePhase = "evidence-presentation"
	PhaseWitnessExamination   BattlePhase = "witness-examination"
	PhaseClosingArguments     BattlePhase = "closing-arguments"
)

func BattlePhaseOrder() []BattlePhase {
	return []BattlePhase{
		PhaseOpeningStatements,
		PhaseEvidencePresentation,
		PhaseWitnessExamination,
		PhaseClosingArguments,
	}
}

const TotalBattlePhases = 4

// GamePhase is the sub-state within a battle phase. It cycles
// gandhi-speaking -> player-choosing -> showing-results, except after the
// final phase where showing-results leads to game-over.
type GamePhase string

const (
	GamePhaseGandhiSpeaking GamePhase = "gandhi-speaking"
	GamePhasePlayerChoosing GamePhase = "player-choosing"
	GamePhaseShowingResults GamePhase = "showing-results"
	GamePhaseGameOver       GamePhase = "game-over"
)

// OpponentMood is cosmetic presentation state derived from the last
// choice's effectiveness; it never feeds scoring.
type OpponentMood string

const (
	MoodNeutral   OpponentMood = "neutral"
	MoodWorried   OpponentMood = "worried"
	MoodConfident OpponentMood = "confident"
)

func MoodForEffectiveness(e Effectiveness) OpponentMood {
	switch e {
	case EffectivenessPerfect:
		return MoodWorried
	case EffectivenessBad:
		return MoodConfident
	}
	return MoodNeutral
}

type Verdict string

const (
	VerdictWin  Verdict = "win"
	VerdictLoss Verdict = "loss"
	VerdictHung Verdict = "hung"
)

// ChoiceRecord is one entry of the append-only choice history, the
// source of truth for end-of-game analytics.
type ChoiceRecord struct {
	Phase         BattlePhase   `json:"phase"`
	OptionIndex   int           `json:"optionIndex"`
	Strategy      string        `json:"strategy"`
	Effectiveness Effectiveness `json:"effectiveness"`
	ScoreDelta    int           `json:"scoreDelta"`
	TimeTaken     int64         `json:"timeTaken"` // seconds spent choosing
	AutoSelected  bool          `json:"autoSelected"`
}

// BattleState is the ephemeral state of one active courtroom session.
// It is never persisted: abandoning a battle discards it without credit,
// and game-over reduces it to a CaseResult.
type BattleState struct {
	SessionID  string     `json:"sessionId"`
	PlayerID   string     `json:"playerId"`
	CaseID     string     `json:"caseId"`
	Role       CaseRole   `json:"role"`
	Difficulty Difficulty `json:"difficulty"`

	CurrentPhase BattlePhase `json:"currentPhase"`
	PhaseNumber  int         `json:"phaseNumber"` // 1-indexed
	TotalPhases  int         `json:"totalPhases"`
	GamePhase    GamePhase   `json:"gamePhase"`

	Score               int          `json:"score"`
	OpponentMood        OpponentMood `json:"opponentMood"`
	TimeRemaining       int64        `json:"timeRemaining"`       // overall session countdown, seconds
	ChoiceTimeRemaining int64        `json:"choiceTimeRemaining"` // per-phase countdown, seconds

	ChoiceHistory []ChoiceRecord `json:"choiceHistory"`
	Verdict       Verdict        `json:"verdict,omitempty"` // set at game-over

	StartedAt time.Time `json:"startedAt"`
	EndedAt   time.Time `json:"endedAt"` // set at game-over
}

// CaseResult is produced exactly once per completed case and folded into
// PlayerStats by the progression engine. XPEarned and
// AchievementsUnlocked are derived during the fold, not inputs.
type CaseResult struct {
	CaseID         string  `json:"caseId"`
	Won            bool    `json:"won"`
	Verdict        Verdict `json:"verdict"`
	Score          int     `json:"score"`
	Accuracy       float64 `json:"accuracy"` // ratio in [0,1]
	TimeElapsed    int64   `json:"timeElapsed"` // seconds
	PerfectChoices int     `json:"perfectChoices"`
	TotalChoices   int     `json:"totalChoices"`

	XPEarned             int64                 `json:"xpEarned"`
	AchievementsUnlocked []UnlockedAchievement `json:"achievementsUnlocked"`
}
