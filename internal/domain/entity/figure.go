package entity

import (
	"time"
)

// FigureTopic maps keywords in a player's message to a scripted reply.
type FigureTopic struct {
	Keywords []string `json:"keywords" firestore:"keywords"`
	Reply    string   `json:"reply" firestore:"reply"`
}

// Figure is a historical figure players can chat with.
type Figure struct {
	ID        string        `json:"id" firestore:"id"`
	Name      string        `json:"name" firestore:"name"`
	Slug      string        `json:"slug" firestore:"slug"`
	Era       string        `json:"era" firestore:"era"`
	Lifespan  string        `json:"lifespan,omitempty" firestore:"lifespan,omitempty"`
	Portrait  string        `json:"portrait,omitempty" firestore:"portrait,omitempty"`
	Biography string        `json:"biography" firestore:"biography"`
	Greeting  string        `json:"greeting" firestore:"greeting"`
	Fallback  string        `json:"fallback" firestore:"fallback"` // reply when no topic matches
	Topics    []FigureTopic `json:"topics" firestore:"topics"`
	Status    string        `json:"status" firestore:"status"`
	CreatedAt time.Time     `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time     `json:"updated_at" firestore:"updatedAt"`
}
