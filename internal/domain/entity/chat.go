package entity

import "time"

type Chat struct {
	ID            string    `json:"id" firestore:"id"`
	PlayerID      string    `json:"player_id" firestore:"playerId"`
	FigureID      string    `json:"figure_id" firestore:"figureId"`
	CreatedAt     time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt     time.Time `json:"updated_at" firestore:"updatedAt"`
	LastMessageAt time.Time `json:"last_message_at" firestore:"lastMessageAt"`
	LastMessage   string    `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	MessageCount  int       `json:"message_count" firestore:"messageCount"`
}

type MessageSender string

const (
	MessageSenderPlayer MessageSender = "player"
	MessageSenderFigure MessageSender = "figure"
)

type Message struct {
	ID        string        `json:"id" firestore:"id"`
	ChatID    string        `json:"chat_id" firestore:"chatId"`
	Sender    MessageSender `json:"sender" firestore:"sender"`
	Content   string        `json:"content" firestore:"content"`
	CreatedAt time.Time     `json:"created_at" firestore:"createdAt"`
}
