package contract

import (
	"context"

	"rag-chat-be/internal/entity"

	"github.com/google/uuid"
)

type ChatSessionRepository interface {
	Create(ctx context.Context, session *entity.ChatSession) error
	Update(ctx context.Context, session *entity.ChatSession) error
	Delete(ctx context.Context, id uuid.UUID) error

	// FindById returns nil (no error) when the session does not exist
	FindById(ctx context.Context, id uuid.UUID) (*entity.ChatSession, error)
	FindAllByUserId(ctx context.Context, userId string) ([]*entity.ChatSession, error)
	ExistsById(ctx context.Context, id uuid.UUID) (bool, error)
}
