package service

import (
	"context"
	"strings"

	"nyayapath/internal/domain/entity"
)

// DialogueService produces a figure's reply to a player message. The
// bundled implementation is catalog-backed; a generated-text client can
// replace it behind the same seam.
type DialogueService interface {
	Reply(ctx context.Context, figure *entity.Figure, history []*entity.Message, input string) (string, error)
}

type scriptedDialogueService struct{}

func NewScriptedDialogueService() DialogueService {
	return &scriptedDialogueService{}
}

// Reply matches the player's message against the figure's topic
// keywords; first matching topic wins, otherwise the figure's fallback
// line is used.
func (s *scriptedDialogueService) Reply(ctx context.Context, figure *entity.Figure, history []*entity.Message, input string) (string, error) {
	lowered := strings.ToLower(input)
	for _, topic := range figure.Topics {
		for _, keyword := range topic.Keywords {
			if keyword == "" {
				continue
			}
			if strings.Contains(lowered, strings.ToLower(keyword)) {
				return topic.Reply, nil
			}
		}
	}
	if figure.Fallback != "" {
		return figure.Fallback, nil
	}
	return figure.Greeting, nil
}
