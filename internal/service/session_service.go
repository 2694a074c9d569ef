package service

import (
	"context"
	"strings"
	"time"

	"rag-chat-be/internal/dto"
	"rag-chat-be/internal/entity"
	"rag-chat-be/internal/pkg/apperror"
	"rag-chat-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const maxMessagePageSize = 100

type ISessionService interface {
	CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	GetSessionById(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error)
	GetSessionsByUserId(ctx context.Context, userId string) ([]*dto.SessionResponse, error)
	RenameSession(ctx context.Context, id uuid.UUID, name string) (*dto.SessionResponse, error)
	MarkFavorite(ctx context.Context, id uuid.UUID, favorite bool) (*dto.SessionResponse, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error

	AddMessage(ctx context.Context, sessionId uuid.UUID, req *dto.AddMessageRequest) (*dto.MessageResponse, error)
	GetMessages(ctx context.Context, sessionId uuid.UUID, skip, limit int) ([]*dto.MessageResponse, error)
}

type sessionService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewSessionService(uowFactory unitofwork.RepositoryFactory) ISessionService {
	return &sessionService{
		uowFactory: uowFactory,
	}
}

func (s *sessionService) CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	if strings.TrimSpace(req.UserId) == "" {
		return nil, apperror.Invalid("user_id must not be blank")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperror.Invalid("name must not be blank")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	now := time.Now()
	session := entity.ChatSession{
		Id:        uuid.New(),
		UserId:    req.UserId,
		Name:      req.Name,
		Favorite:  false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uow.ChatSessionRepository().Create(ctx, &session); err != nil {
		return nil, apperror.Internal("failed to create session", err)
	}

	return sessionToResponse(&session), nil
}

func (s *sessionService) GetSessionById(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.ChatSessionRepository().FindById(ctx, id)
	if err != nil {
		return nil, apperror.Internal("failed to fetch session", err)
	}
	if session == nil {
		return nil, apperror.NotFound("session not found")
	}
	return sessionToResponse(session), nil
}

func (s *sessionService) GetSessionsByUserId(ctx context.Context, userId string) ([]*dto.SessionResponse, error) {
	if strings.TrimSpace(userId) == "" {
		return nil, apperror.Invalid("user_id must not be blank")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	sessions, err := uow.ChatSessionRepository().FindAllByUserId(ctx, userId)
	if err != nil {
		return nil, apperror.Internal("failed to list sessions", err)
	}

	responses := make([]*dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		responses = append(responses, sessionToResponse(session))
	}
	return responses, nil
}

func (s *sessionService) RenameSession(ctx context.Context, id uuid.UUID, name string) (*dto.SessionResponse, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperror.Invalid("name must not be blank")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.ChatSessionRepository().FindById(ctx, id)
	if err != nil {
		return nil, apperror.Internal("failed to fetch session", err)
	}
	if session == nil {
		return nil, apperror.NotFound("session not found")
	}

	session.Name = name
	session.UpdatedAt = time.Now()
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return nil, apperror.Internal("failed to rename session", err)
	}
	return sessionToResponse(session), nil
}

func (s *sessionService) MarkFavorite(ctx context.Context, id uuid.UUID, favorite bool) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.ChatSessionRepository().FindById(ctx, id)
	if err != nil {
		return nil, apperror.Internal("failed to fetch session", err)
	}
	if session == nil {
		return nil, apperror.NotFound("session not found")
	}

	session.Favorite = favorite
	session.UpdatedAt = time.Now()
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return nil, apperror.Internal("failed to update session", err)
	}
	return sessionToResponse(session), nil
}

// DeleteSession removes the session and all of its messages in one
// transaction, so a failure leaves both intact.
func (s *sessionService) DeleteSession(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	exists, err := uow.ChatSessionRepository().ExistsById(ctx, id)
	if err != nil {
		return apperror.Internal("failed to fetch session", err)
	}
	if !exists {
		return apperror.NotFound("session not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return apperror.Internal("failed to begin transaction", err)
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().DeleteBySessionId(ctx, id); err != nil {
		return apperror.Internal("failed to delete session messages", err)
	}
	if err := uow.ChatSessionRepository().Delete(ctx, id); err != nil {
		return apperror.Internal("failed to delete session", err)
	}

	if err := uow.Commit(); err != nil {
		return apperror.Internal("failed to commit session delete", err)
	}
	return nil
}

func (s *sessionService) AddMessage(ctx context.Context, sessionId uuid.UUID, req *dto.AddMessageRequest) (*dto.MessageResponse, error) {
	if strings.TrimSpace(req.Sender) == "" {
		return nil, apperror.Invalid("sender must not be blank")
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, apperror.Invalid("content must not be blank")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	exists, err := uow.ChatSessionRepository().ExistsById(ctx, sessionId)
	if err != nil {
		return nil, apperror.Internal("failed to fetch session", err)
	}
	if !exists {
		return nil, apperror.NotFound("session not found")
	}

	// Adding a message intentionally leaves the session's UpdatedAt alone;
	// only rename and favorite bump it.
	message := entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		Sender:        req.Sender,
		Content:       req.Content,
		Context:       req.Context,
		CreatedAt:     time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, &message); err != nil {
		return nil, apperror.Internal("failed to store message", err)
	}

	return messageToResponse(&message), nil
}

func (s *sessionService) GetMessages(ctx context.Context, sessionId uuid.UUID, skip, limit int) ([]*dto.MessageResponse, error) {
	if skip < 0 {
		return nil, apperror.Invalid("skip must not be negative")
	}
	if limit < 1 || limit > maxMessagePageSize {
		return nil, apperror.Invalid("limit must be between 1 and 100")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	exists, err := uow.ChatSessionRepository().ExistsById(ctx, sessionId)
	if err != nil {
		return nil, apperror.Internal("failed to fetch session", err)
	}
	if !exists {
		return nil, apperror.NotFound("session not found")
	}

	// skip is interpreted as a page cursor floored to a page boundary:
	// any skip inside page N yields page N.
	offset := (skip / limit) * limit
	messages, err := uow.ChatMessageRepository().FindPageBySessionId(ctx, sessionId, offset, limit)
	if err != nil {
		return nil, apperror.Internal("failed to list messages", err)
	}

	responses := make([]*dto.MessageResponse, 0, len(messages))
	for _, message := range messages {
		responses = append(responses, messageToResponse(message))
	}
	return responses, nil
}

func sessionToResponse(session *entity.ChatSession) *dto.SessionResponse {
	return &dto.SessionResponse{
		Id:        session.Id,
		UserId:    session.UserId,
		Name:      session.Name,
		Favorite:  session.Favorite,
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}
}

func messageToResponse(message *entity.ChatMessage) *dto.MessageResponse {
	return &dto.MessageResponse{
		Id:            message.Id,
		ChatSessionId: message.ChatSessionId,
		Sender:        message.Sender,
		Content:       message.Content,
		Context:       message.Context,
		CreatedAt:     message.CreatedAt,
	}
}
