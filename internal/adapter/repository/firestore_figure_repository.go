package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"nyayapath/internal/domain/entity"
	"nyayapath/internal/domain/repository"
)

type firestoreFigureRepository struct {
	client *firestore.Client
}

func NewFirestoreFigureRepository(client *firestore.Client) repository.FigureRepository {
	return &firestoreFigureRepository{
		client: client,
	}
}

func (r *firestoreFigureRepository) GetByID(ctx context.Context, id string) (*entity.Figure, error) {
	doc, err := r.client.Collection("figures").Doc(id).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get figure: %w", err)
	}

	var figure entity.Figure
	if err := doc.DataTo(&figure); err != nil {
		return nil, fmt.Errorf("failed to decode figure: %w", err)
	}

	return &figure, nil
}

func (r *firestoreFigureRepository) GetBySlug(ctx context.Context, slug string) (*entity.Figure, error) {
	query := r.client.Collection("figures").Where("slug", "==", slug).Limit(1)
	iter := query.Documents(ctx)
	doc, err := iter.Next()
	if err != nil {
		return nil, fmt.Errorf("failed to get figure by slug: %w", err)
	}

	var figure entity.Figure
	if err := doc.DataTo(&figure); err != nil {
		return nil, fmt.Errorf("failed to decode figure: %w", err)
	}

	return &figure, nil
}

func (r *firestoreFigureRepository) List(ctx context.Context, era string, limit, offset int) ([]*entity.Figure, int64, error) {
	query := r.client.Collection("figures").Where("status", "==", "active")
	if era != "" {
		query = query.Where("era", "==", era)
	}

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count figures: %w", err)
	}
	total := int64(len(countDocs))

	iter := query.OrderBy("name", firestore.Asc).Offset(offset).Limit(limit).Documents(ctx)
	defer iter.Stop()

	var figures []*entity.Figure
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to iterate figures: %w", err)
		}

		var figure entity.Figure
		if err := doc.DataTo(&figure); err != nil {
			return nil, 0, fmt.Errorf("failed to decode figure: %w", err)
		}
		figures = append(figures, &figure)
	}

	return figures, total, nil
}

func (r *firestoreFigureRepository) Create(ctx context.Context, figure *entity.Figure) error {
	_, err := r.client.Collection("figures").Doc(figure.ID).Set(ctx, figure)
	if err != nil {
		return fmt.Errorf("failed to create figure: %w", err)
	}
	return nil
}

func (r *firestoreFigureRepository) Update(ctx context.Context, figure *entity.Figure) error {
	_, err := r.client.Collection("figures").Doc(figure.ID).Set(ctx, figure)
	if err != nil {
		return fmt.Errorf("failed to update figure: %w", err)
	}
	return nil
}
