package repository

import (
	"context"
	"nyayapath/internal/domain/entity"
)

type QuizRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Quiz, error)
	List(ctx context.Context, topic string, limit, offset int) ([]*entity.Quiz, int64, error)
	Create(ctx context.Context, quiz *entity.Quiz) error
	Update(ctx context.Context, quiz *entity.Quiz) error
	Delete(ctx context.Context, id string) error

	SaveAttempt(ctx context.Context, attempt *entity.QuizAttempt) error
	ListAttempts(ctx context.Context, playerID string, limit, offset int) ([]*entity.QuizAttempt, int64, error)
}
