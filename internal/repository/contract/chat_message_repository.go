package contract

import (
	"context"

	"rag-chat-be/internal/entity"

	"github.com/google/uuid"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error

	// FindPageBySessionId returns one page of the session's messages
	// ordered by creation time ascending
	FindPageBySessionId(ctx context.Context, sessionId uuid.UUID, offset, limit int) ([]*entity.ChatMessage, error)

	DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error
	CountBySessionId(ctx context.Context, sessionId uuid.UUID) (int64, error)
}
