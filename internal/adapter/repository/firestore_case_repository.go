package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"nyayapath/internal/domain/entity"
	"nyayapath/internal/domain/repository"
)

type firestoreCaseRepository struct {
	client *firestore.Client
}

func NewFirestoreCaseRepository(client *firestore.Client) repository.CaseRepository {
	return &firestoreCaseRepository{
		client: client,
	}
}

func (r *firestoreCaseRepository) GetByID(ctx context.Context, id string) (*entity.CaseScenario, error) {
	doc, err := r.client.Collection("cases").Doc(id).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get case: %w", err)
	}

	var scenario entity.CaseScenario
	if err := doc.DataTo(&scenario); err != nil {
		return nil, fmt.Errorf("failed to decode case: %w", err)
	}

	return &scenario, nil
}

func (r *firestoreCaseRepository) List(ctx context.Context, difficulty entity.Difficulty, limit, offset int) ([]*entity.CaseScenario, int64, error) {
	query := r.client.Collection("cases").Where("status", "==", "active")
	if difficulty != "" {
		query = query.Where("difficulty", "==", string(difficulty))
	}

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count cases: %w", err)
	}
	total := int64(len(countDocs))

	iter := query.OrderBy("createdAt", firestore.Asc).Offset(offset).Limit(limit).Documents(ctx)
	defer iter.Stop()

	var cases []*entity.CaseScenario
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to iterate cases: %w", err)
		}

		var scenario entity.CaseScenario
		if err := doc.DataTo(&scenario); err != nil {
			return nil, 0, fmt.Errorf("failed to decode case: %w", err)
		}
		cases = append(cases, &scenario)
	}

	return cases, total, nil
}

func (r *firestoreCaseRepository) Count(ctx context.Context) (int, error) {
	docs, err := r.client.Collection("cases").Where("status", "==", "active").Documents(ctx).GetAll()
	if err != nil {
		return 0, fmt.Errorf("failed to count cases: %w", err)
	}
	return len(docs), nil
}

func (r *firestoreCaseRepository) Create(ctx context.Context, scenario *entity.CaseScenario) error {
	_, err := r.client.Collection("cases").Doc(scenario.ID).Set(ctx, scenario)
	if err != nil {
		return fmt.Errorf("failed to create case: %w", err)
	}
	return nil
}

func (r *firestoreCaseRepository) Update(ctx context.Context, scenario *entity.CaseScenario) error {
	_, err := r.client.Collection("cases").Doc(scenario.ID).Set(ctx, scenario)
	if err != nil {
		return fmt.Errorf("failed to update case: %w", err)
	}
	return nil
}

func (r *firestoreCaseRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("cases").Doc(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete case: %w", err)
	}
	return nil
}
