package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one utterance in a session. Sender is a free-form label;
// "user" and "assistant" are the conventional values but arbitrary senders
// are accepted. Messages are never updated in place.
type ChatMessage struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	Sender        string
	Content       string
	Context       string // optional retrieval context, empty when absent
	CreatedAt     time.Time
	DeletedAt     *time.Time
	IsDeleted     bool
}
