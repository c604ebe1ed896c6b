package usecase

import (
	"context"

	"nyayapath/internal/domain/entity"
)

type FirebaseAuthClient interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	GenerateToken(ctx context.Context, uid string) (string, error)
	SignInWithEmailPassword(email, password string) (string, error)
	SignInWithEmailPasswordWithRefresh(email, password string) (string, string, error)
	RefreshIdToken(refreshToken string) (string, string, error)
	UpdateUserPassword(ctx context.Context, uid, newPassword string) error
	TestConnection(ctx context.Context) error
}

// BattleNotifier pushes battle transitions to a connected client. A nil
// notifier is valid; pushes are best-effort and never block state
// transitions.
type BattleNotifier interface {
	PushBattleState(playerID string, state *entity.BattleState)
}

// ChatNotifier delivers figure replies to a connected client.
type ChatNotifier interface {
	PushChatMessage(playerID string, message *entity.Message)
}
