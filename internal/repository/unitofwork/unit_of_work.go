package unitofwork

import (
	"context"

	"rag-chat-be/internal/repository/contract"
)

// UnitOfWork scopes repository work to one logical operation. Begin/Commit
// wrap the work in a database transaction; without Begin, repositories run
// against the shared connection.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
}
