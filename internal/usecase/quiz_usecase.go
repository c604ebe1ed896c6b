package usecase

import (
	"context"
	"math"

	"github.com/google/uuid"

	"nyayapath/internal/domain/entity"
	"nyayapath/internal/domain/repository"
	"nyayapath/internal/domain/service"
	"nyayapath/pkg/errors"
)

type QuizUseCase struct {
	quizRepo    repository.QuizRepository
	progression *ProgressionUseCase
	clock       service.Clock
}

func NewQuizUseCase(quizRepo repository.QuizRepository, progression *ProgressionUseCase, clock service.Clock) *QuizUseCase {
	return &QuizUseCase{
		quizRepo:    quizRepo,
		progression: progression,
		clock:       clock,
	}
}

func (uc *QuizUseCase) GetQuiz(ctx context.Context, id string) (*entity.Quiz, error) {
	quiz, err := uc.quizRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NotFound("Quiz", err)
	}
	return quiz, nil
}

func (uc *QuizUseCase) ListQuizzes(ctx context.Context, topic string, limit, offset int) ([]*entity.Quiz, int64, error) {
	return uc.quizRepo.List(ctx, topic, limit, offset)
}

type QuizSubmission struct {
	Attempt *entity.QuizAttempt `json:"attempt"`
	Stats   *entity.PlayerStats `json:"stats"`
}

// SubmitQuiz grades an answer sheet against the quiz, records the
// attempt, and grants XP proportional to the score through the
// progression fold.
func (uc *QuizUseCase) SubmitQuiz(ctx context.Context, playerID, quizID string, answers []int) (*QuizSubmission, error) {
	quiz, err := uc.quizRepo.GetByID(ctx, quizID)
	if err != nil {
		return nil, errors.NotFound("Quiz", err)
	}
	if len(answers) != len(quiz.Questions) {
		return nil, errors.BadRequest("Answer count does not match question count", nil)
	}

	correct := 0
	for i, question := range quiz.Questions {
		if answers[i] == question.CorrectIndex {
			correct++
		}
	}

	total := len(quiz.Questions)
	percent := 0.0
	if total > 0 {
		percent = float64(correct) / float64(total)
	}
	xp := int64(math.Round(float64(quiz.XPReward) * percent))

	attempt := &entity.QuizAttempt{
		ID:           uuid.New().String(),
		QuizID:       quizID,
		PlayerID:     playerID,
		Answers:      answers,
		Correct:      correct,
		Total:        total,
		ScorePercent: percent,
		XPEarned:     xp,
		CompletedAt:  uc.clock.Now(),
	}

	if err := uc.quizRepo.SaveAttempt(ctx, attempt); err != nil {
		return nil, errors.Internal("Failed to record quiz attempt", err)
	}

	stats, err := uc.progression.CompleteQuiz(ctx, playerID, attempt)
	if err != nil {
		return &QuizSubmission{Attempt: attempt, Stats: stats}, err
	}
	return &QuizSubmission{Attempt: attempt, Stats: stats}, nil
}

func (uc *QuizUseCase) ListAttempts(ctx context.Context, playerID string, limit, offset int) ([]*entity.QuizAttempt, int64, error) {
	return uc.quizRepo.ListAttempts(ctx, playerID, limit, offset)
}

func (uc *QuizUseCase) CreateQuiz(ctx context.Context, quiz *entity.Quiz) (*entity.Quiz, error) {
	if len(quiz.Questions) == 0 {
		return nil, errors.BadRequest("Quiz needs at least one question", nil)
	}
	for _, question := range quiz.Questions {
		if question.CorrectIndex < 0 || question.CorrectIndex >= len(question.Options) {
			return nil, errors.BadRequest("Question correct index out of range", nil)
		}
	}

	if quiz.ID == "" {
		quiz.ID = uuid.New().String()
	}
	if quiz.Status == "" {
		quiz.Status = "active"
	}
	now := uc.clock.Now()
	quiz.CreatedAt = now
	quiz.UpdatedAt = now

	if err := uc.quizRepo.Create(ctx, quiz); err != nil {
		return nil, errors.Internal("Failed to create quiz", err)
	}
	return quiz, nil
}
