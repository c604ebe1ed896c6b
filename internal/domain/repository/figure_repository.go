package repository

import (
	"context"
	"nyayapath/internal/domain/entity"
)

type FigureRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Figure, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Figure, error)
	List(ctx context.Context, era string, limit, offset int) ([]*entity.Figure, int64, error)
	Create(ctx context.Context, figure *entity.Figure) error
	Update(ctx context.Context, figure *entity.Figure) error
}
