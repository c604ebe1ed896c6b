package repository

import (
	"context"
	"nyayapath/internal/domain/entity"
)

type CaseRepository interface {
	GetByID(ctx context.Context, id string) (*entity.CaseScenario, error)
	List(ctx context.Context, difficulty entity.Difficulty, limit, offset int) ([]*entity.CaseScenario, int64, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, scenario *entity.CaseScenario) error
	Update(ctx context.Context, scenario *entity.CaseScenario) error
	Delete(ctx context.Context, id string) error
}
