package entity

import (
	"time"
)

type QuizQuestion struct {
	ID           string   `json:"id" firestore:"id"`
	Prompt       string   `json:"prompt" firestore:"prompt"`
	Options      []string `json:"options" firestore:"options"`
	CorrectIndex int      `json:"correct_index" firestore:"correctIndex"`
	Explanation  string   `json:"explanation,omitempty" firestore:"explanation,omitempty"`
}

type Quiz struct {
	ID         string         `json:"id" firestore:"id"`
	Title      string         `json:"title" firestore:"title"`
	Topic      string         `json:"topic" firestore:"topic"`
	Difficulty Difficulty     `json:"difficulty" firestore:"difficulty"`
	Questions  []QuizQuestion `json:"questions" firestore:"questions"`
	XPReward   int64          `json:"xp_reward" firestore:"xpReward"` // for a perfect attempt, scaled down otherwise
	Status     string         `json:"status" firestore:"status"`
	CreatedAt  time.Time      `json:"created_at" firestore:"createdAt"`
	UpdatedAt  time.Time      `json:"updated_at" firestore:"updatedAt"`
}

type QuizAttempt struct {
	ID           string    `json:"id" firestore:"id"`
	QuizID       string    `json:"quiz_id" firestore:"quizId"`
	PlayerID     string    `json:"player_id" firestore:"playerId"`
	Answers      []int     `json:"answers" firestore:"answers"`
	Correct      int       `json:"correct" firestore:"correct"`
	Total        int       `json:"total" firestore:"total"`
	ScorePercent float64   `json:"score_percent" firestore:"scorePercent"`
	XPEarned     int64     `json:"xp_earned" firestore:"xpEarned"`
	CompletedAt  time.Time `json:"completed_at" firestore:"completedAt"`
}
