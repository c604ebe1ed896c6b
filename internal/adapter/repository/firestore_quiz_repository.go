package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"nyayapath/internal/domain/entity"
	"nyayapath/internal/domain/repository"
)

type firestoreQuizRepository struct {
	client *firestore.Client
}

func NewFirestoreQuizRepository(client *firestore.Client) repository.QuizRepository {
	return &firestoreQuizRepository{
		client: client,
	}
}

func (r *firestoreQuizRepository) GetByID(ctx context.Context, id string) (*entity.Quiz, error) {
	doc, err := r.client.Collection("quizzes").Doc(id).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	var quiz entity.Quiz
	if err := doc.DataTo(&quiz); err != nil {
		return nil, fmt.Errorf("failed to decode quiz: %w", err)
	}

	return &quiz, nil
}

func (r *firestoreQuizRepository) List(ctx context.Context, topic string, limit, offset int) ([]*entity.Quiz, int64, error) {
	query := r.client.Collection("quizzes").Where("status", "==", "active")
	if topic != "" {
		query = query.Where("topic", "==", topic)
	}

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count quizzes: %w", err)
	}
	total := int64(len(countDocs))

	iter := query.OrderBy("createdAt", firestore.Asc).Offset(offset).Limit(limit).Documents(ctx)
	defer iter.Stop()

	var quizzes []*entity.Quiz
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to iterate quizzes: %w", err)
		}

		var quiz entity.Quiz
		if err := doc.DataTo(&quiz); err != nil {
			return nil, 0, fmt.Errorf("failed to decode quiz: %w", err)
		}
		quizzes = append(quizzes, &quiz)
	}

	return quizzes, total, nil
}

func (r *firestoreQuizRepository) Create(ctx context.Context, quiz *entity.Quiz) error {
	_, err := r.client.Collection("quizzes").Doc(quiz.ID).Set(ctx, quiz)
	if err != nil {
		return fmt.Errorf("failed to create quiz: %w", err)
	}
	return nil
}

func (r *firestoreQuizRepository) Update(ctx context.Context, quiz *entity.Quiz) error {
	_, err := r.client.Collection("quizzes").Doc(quiz.ID).Set(ctx, quiz)
	if err != nil {
		return fmt.Errorf("failed to update quiz: %w", err)
	}
	return nil
}

func (r *firestoreQuizRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("quizzes").Doc(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete quiz: %w", err)
	}
	return nil
}

func (r *firestoreQuizRepository) SaveAttempt(ctx context.Context, attempt *entity.QuizAttempt) error {
	_, err := r.client.Collection("quizAttempts").Doc(attempt.ID).Set(ctx, attempt)
	if err != nil {
		return fmt.Errorf("failed to save quiz attempt: %w", err)
	}
	return nil
}

func (r *firestoreQuizRepository) ListAttempts(ctx context.Context, playerID string, limit, offset int) ([]*entity.QuizAttempt, int64, error) {
	query := r.client.Collection("quizAttempts").Where("playerId", "==", playerID)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count quiz attempts: %w", err)
	}
	total := int64(len(countDocs))

	iter := query.OrderBy("completedAt", firestore.Desc).Offset(offset).Limit(limit).Documents(ctx)
	defer iter.Stop()

	var attempts []*entity.QuizAttempt
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to iterate quiz attempts: %w", err)
		}

		var attempt entity.QuizAttempt
		if err := doc.DataTo(&attempt); err != nil {
			return nil, 0, fmt.Errorf("failed to decode quiz attempt: %w", err)
		}
		attempts = append(attempts, &attempt)
	}

	return attempts, total, nil
}
