package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"nyayapath/internal/domain/entity"
	"nyayapath/internal/domain/repository"
	"nyayapath/internal/domain/service"
	"nyayapath/pkg/errors"
	"nyayapath/pkg/logger"
)

const maxChatMessageLen = 2000

// FigureChatUseCase manages scripted conversations with historical
// figures: one chat thread per player/figure pairing, figure replies
// produced by the DialogueService seam and pushed over websocket.
type FigureChatUseCase struct {
	figureRepo repository.FigureRepository
	chatRepo   repository.ChatRepository
	dialogue   service.DialogueService
	clock      service.Clock
	notifier   ChatNotifier
}

func NewFigureChatUseCase(
	figureRepo repository.FigureRepository,
	chatRepo repository.ChatRepository,
	dialogue service.DialogueService,
	clock service.Clock,
	notifier ChatNotifier,
) *FigureChatUseCase {
	return &FigureChatUseCase{
		figureRepo: figureRepo,
		chatRepo:   chatRepo,
		dialogue:   dialogue,
		clock:      clock,
		notifier:   notifier,
	}
}

func (uc *FigureChatUseCase) ListFigures(ctx context.Context, era string, limit, offset int) ([]*entity.Figure, int64, error) {
	return uc.figureRepo.List(ctx, era, limit, offset)
}

// GetFigure resolves by id first, then by slug, so both URL styles work.
func (uc *FigureChatUseCase) GetFigure(ctx context.Context, idOrSlug string) (*entity.Figure, error) {
	figure, err := uc.figureRepo.GetByID(ctx, idOrSlug)
	if err == nil {
		return figure, nil
	}
	figure, err = uc.figureRepo.GetBySlug(ctx, idOrSlug)
	if err != nil {
		return nil, errors.NotFound("Figure", err)
	}
	return figure, nil
}

// StartChat opens a thread with a figure and seeds it with the figure's
// greeting.
func (uc *FigureChatUseCase) StartChat(ctx context.Context, playerID, figureID string) (*entity.Chat, *entity.Message, error) {
	figure, err := uc.GetFigure(ctx, figureID)
	if err != nil {
		return nil, nil, err
	}

	now := uc.clock.Now()
	chat := &entity.Chat{
		ID:            uuid.New().String(),
		PlayerID:      playerID,
		FigureID:      figure.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
		LastMessageAt: now,
		LastMessage:   figure.Greeting,
		MessageCount:  1,
	}
	if err := uc.chatRepo.Create(ctx, chat); err != nil {
		return nil, nil, errors.Internal("Failed to create chat", err)
	}

	greeting := &entity.Message{
		ID:        uuid.New().String(),
		ChatID:    chat.ID,
		Sender:    entity.MessageSenderFigure,
		Content:   figure.Greeting,
		CreatedAt: now,
	}
	if err := uc.chatRepo.AddMessage(ctx, greeting); err != nil {
		return nil, nil, errors.Internal("Failed to record greeting", err)
	}

	return chat, greeting, nil
}

// SendMessage appends the player's message and the figure's scripted
// reply. The reply is returned and also pushed to the player's
// websocket when one is connected.
func (uc *FigureChatUseCase) SendMessage(ctx context.Context, playerID, chatID, content string) (*entity.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.BadRequest("Message is empty", nil)
	}
	if len(content) > maxChatMessageLen {
		return nil, errors.BadRequest("Message is too long", nil)
	}

	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, errors.NotFound("Chat", err)
	}
	if chat.PlayerID != playerID {
		return nil, errors.Forbidden("Chat belongs to another player", nil)
	}

	figure, err := uc.figureRepo.GetByID(ctx, chat.FigureID)
	if err != nil {
		return nil, errors.NotFound("Figure", err)
	}

	now := uc.clock.Now()
	playerMsg := &entity.Message{
		ID:        uuid.New().String(),
		ChatID:    chatID,
		Sender:    entity.MessageSenderPlayer,
		Content:   content,
		CreatedAt: now,
	}
	if err := uc.chatRepo.AddMessage(ctx, playerMsg); err != nil {
		return nil, errors.Internal("Failed to record message", err)
	}

	history, _, err := uc.chatRepo.ListMessages(ctx, chatID, 20, 0)
	if err != nil {
		logger.Warn("Failed to load chat history for %s: %v", chatID, err)
		history = nil
	}

	replyText, err := uc.dialogue.Reply(ctx, figure, history, content)
	if err != nil {
		return nil, errors.Internal("Failed to produce reply", err)
	}

	reply := &entity.Message{
		ID:        uuid.New().String(),
		ChatID:    chatID,
		Sender:    entity.MessageSenderFigure,
		Content:   replyText,
		CreatedAt: uc.clock.Now(),
	}
	if err := uc.chatRepo.AddMessage(ctx, reply); err != nil {
		return nil, errors.Internal("Failed to record reply", err)
	}

	chat.LastMessage = replyText
	chat.LastMessageAt = reply.CreatedAt
	chat.UpdatedAt = reply.CreatedAt
	chat.MessageCount += 2
	if err := uc.chatRepo.Update(ctx, chat); err != nil {
		logger.Warn("Failed to update chat summary for %s: %v", chatID, err)
	}

	if uc.notifier != nil {
		uc.notifier.PushChatMessage(playerID, reply)
	}
	return reply, nil
}

func (uc *FigureChatUseCase) ListChats(ctx context.Context, playerID string, limit, offset int) ([]*entity.Chat, int64, error) {
	return uc.chatRepo.ListByPlayer(ctx, playerID, limit, offset)
}

func (uc *FigureChatUseCase) ListMessages(ctx context.Context, playerID, chatID string, limit, offset int) ([]*entity.Message, int64, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, 0, errors.NotFound("Chat", err)
	}
	if chat.PlayerID != playerID {
		return nil, 0, errors.Forbidden("Chat belongs to another player", nil)
	}
	return uc.chatRepo.ListMessages(ctx, chatID, limit, offset)
}

func (uc *FigureChatUseCase) CreateFigure(ctx context.Context, figure *entity.Figure) (*entity.Figure, error) {
	if figure.Name == "" || figure.Greeting == "" {
		return nil, errors.BadRequest("Figure needs a name and a greeting", nil)
	}
	if figure.ID == "" {
		figure.ID = uuid.New().String()
	}
	if figure.Slug == "" {
		figure.Slug = strings.ToLower(strings.ReplaceAll(figure.Name, " ", "-"))
	}
	if figure.Status == "" {
		figure.Status = "active"
	}
	now := uc.clock.Now()
	figure.CreatedAt = now
	figure.UpdatedAt = now

	if err := uc.figureRepo.Create(ctx, figure); err != nil {
		return nil, errors.Internal("Failed to create figure", err)
	}
	return figure, nil
}
