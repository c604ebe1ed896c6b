package entity

import (
	"fmt"
	"time"
)

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

type CaseRole string

const (
	CaseRoleDefense     CaseRole = "defense"
	CaseRoleProsecution CaseRole = "prosecution"
)

func (r CaseRole) Valid() bool {
	return r == CaseRoleDefense || r == CaseRoleProsecution
}

type Effectiveness string

const (
	EffectivenessPerfect Effectiveness = "perfect"
	EffectivenessGood    Effectiveness = "good"
	EffectivenessWeak    Effectiveness = "weak"
	EffectivenessBad     Effectiveness = "bad"
)

// StrategyOption is one of the four fixed choices a phase offers.
// Effectiveness, score delta and explanation are static content.
type StrategyOption struct {
	Text          string        `json:"text" firestore:"text"`
	Strategy      string        `json:"strategy" firestore:"strategy"`
	Effectiveness Effectiveness `json:"effectiveness" firestore:"effectiveness"`
	ScoreDelta    int           `json:"scoreDelta" firestore:"scoreDelta"`
	Explanation   string        `json:"explanation" firestore:"explanation"`
}

type Evidence struct {
	ID          string `json:"id" firestore:"id"`
	Title       string `json:"title" firestore:"title"`
	Description string `json:"description" firestore:"description"`
	ImageURL    string `json:"image_url,omitempty" firestore:"imageURL,omitempty"`
}

type Witness struct {
	ID        string `json:"id" firestore:"id"`
	Name      string `json:"name" firestore:"name"`
	Role      string `json:"role" firestore:"role"`
	Testimony string `json:"testimony" firestore:"testimony"`
}

// CasePhase holds the opposing side's argument and the per-role option
// lists for one of the four courtroom phases.
type CasePhase struct {
	Phase              BattlePhase      `json:"phase" firestore:"phase"`
	OpponentArgument   string           `json:"opponent_argument" firestore:"opponentArgument"`
	DefenseOptions     []StrategyOption `json:"defense_options" firestore:"defenseOptions"`
	ProsecutionOptions []StrategyOption `json:"prosecution_options" firestore:"prosecutionOptions"`
}

func (p *CasePhase) OptionsForRole(role CaseRole) []StrategyOption {
	if role == CaseRoleProsecution {
		return p.ProsecutionOptions
	}
	return p.DefenseOptions
}

type CaseScenario struct {
	ID         string      `json:"id" firestore:"id"`
	Title      string      `json:"title" firestore:"title"`
	Summary    string      `json:"summary" firestore:"summary"`
	Era        string      `json:"era,omitempty" firestore:"era,omitempty"`
	Year       int         `json:"year,omitempty" firestore:"year,omitempty"`
	Difficulty Difficulty  `json:"difficulty" firestore:"difficulty"`
	Evidence   []Evidence  `json:"evidence" firestore:"evidence"`
	Witnesses  []Witness   `json:"witnesses" firestore:"witnesses"`
	Phases     []CasePhase `json:"phases" firestore:"phases"`
	Status     string      `json:"status" firestore:"status"`
	CreatedAt  time.Time   `json:"created_at" firestore:"createdAt"`
	UpdatedAt  time.Time   `json:"updated_at" firestore:"updatedAt"`
}

const OptionsPerPhase = 4

// Validate checks a scenario is playable: the four canonical phases in
// order, four options per role per phase, and the worst option last so
// timeout auto-selection lands on the bad tier.
func (c *CaseScenario) Validate() error {
	if !c.Difficulty.Valid() {
		return fmt.Errorf("invalid difficulty %q", c.Difficulty)
	}
	order := BattlePhaseOrder()
	if len(c.Phases) != len(order) {
		return fmt.Errorf("case %s has %d phases, want %d", c.ID, len(c.Phases), len(order))
	}
	for i, phase := range c.Phases {
		if phase.Phase != order[i] {
			return fmt.Errorf("case %s phase %d is %q, want %q", c.ID, i+1, phase.Phase, order[i])
		}
		for _, opts := range [][]StrategyOption{phase.DefenseOptions, phase.ProsecutionOptions} {
			if len(opts) != OptionsPerPhase {
				return fmt.Errorf("case %s phase %q has %d options, want %d", c.ID, phase.Phase, len(opts), OptionsPerPhase)
			}
			if opts[len(opts)-1].Effectiveness != EffectivenessBad {
				return fmt.Errorf("case %s phase %q must list the bad option last", c.ID, phase.Phase)
			}
		}
	}
	return nil
}
