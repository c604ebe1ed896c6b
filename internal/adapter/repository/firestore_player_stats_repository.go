package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"nyayapath/internal/domain/entity"
	"nyayapath/internal/domain/repository"
)

type firestorePlayerStatsRepository struct {
	client *firestore.Client
}

func NewFirestorePlayerStatsRepository(client *firestore.Client) repository.PlayerStatsRepository {
	return &firestorePlayerStatsRepository{
		client: client,
	}
}

func (r *firestorePlayerStatsRepository) Get(ctx context.Context, playerID string) (*entity.PlayerStats, error) {
	doc, err := r.client.Collection("playerStats").Doc(playerID).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get player stats: %w", err)
	}

	var stats entity.PlayerStats
	if err := doc.DataTo(&stats); err != nil {
		return nil, fmt.Errorf("failed to decode player stats: %w", err)
	}

	return &stats, nil
}

// Save writes the whole document. The progression usecase serializes
// writes per player, so last-write-wins is safe here.
func (r *firestorePlayerStatsRepository) Save(ctx context.Context, stats *entity.PlayerStats) error {
	_, err := r.client.Collection("playerStats").Doc(stats.PlayerID).Set(ctx, stats)
	if err != nil {
		return fmt.Errorf("failed to save player stats: %w", err)
	}
	return nil
}

func (r *firestorePlayerStatsRepository) Top(ctx context.Context, limit int) ([]*entity.PlayerStats, error) {
	iter := r.client.Collection("playerStats").
		OrderBy("totalXP", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var top []*entity.PlayerStats
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate leaderboard: %w", err)
		}

		var stats entity.PlayerStats
		if err := doc.DataTo(&stats); err != nil {
			return nil, fmt.Errorf("failed to decode player stats: %w", err)
		}
		top = append(top, &stats)
	}

	return top, nil
}
