package repository

import (
	"context"
	"nyayapath/internal/domain/entity"
)

// PlayerStatsRepository is the durable key-value contract for player
// progression: one document per player id, last-write-wins under the
// per-player serialization the progression usecase enforces.
type PlayerStatsRepository interface {
	Get(ctx context.Context, playerID string) (*entity.PlayerStats, error)
	Save(ctx context.Context, stats *entity.PlayerStats) error
	Top(ctx context.Context, limit int) ([]*entity.PlayerStats, error)
}
