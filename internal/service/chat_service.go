package service

import (
	"context"
	"strings"

	"rag-chat-be/internal/dto"
	"rag-chat-be/internal/pkg/apperror"
	"rag-chat-be/internal/pkg/logger"
	"rag-chat-be/pkg/llm"

	"github.com/google/uuid"
)

// historyWindow is how many prior turns a chat exchange replays.
const historyWindow = 10

type IChatService interface {
	// Chat persists the user turn, queries the provider and persists the
	// assistant turn. The user turn stays stored even when the provider
	// call fails.
	Chat(ctx context.Context, sessionId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error)

	// QueryLLM is a direct gateway call; nothing is persisted.
	QueryLLM(ctx context.Context, req *dto.QueryRequest) (*dto.QueryResponse, error)
}

type chatService struct {
	sessionService ISessionService
	gateway        llm.Querier
	sysLogger      logger.ILogger
}

func NewChatService(sessionService ISessionService, gateway llm.Querier, sysLogger logger.ILogger) IChatService {
	return &chatService{
		sessionService: sessionService,
		gateway:        gateway,
		sysLogger:      sysLogger,
	}
}

func (c *chatService) Chat(ctx context.Context, sessionId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, apperror.Invalid("query must not be blank")
	}

	// The user turn is persisted and committed before the provider call so
	// a gateway failure never loses it.
	userMessage, err := c.sessionService.AddMessage(ctx, sessionId, &dto.AddMessageRequest{
		Sender:  "user",
		Content: req.Query,
		Context: req.Context,
	})
	if err != nil {
		return nil, err
	}

	var history []llm.Message
	if req.IncludeHistory {
		history, err = c.loadHistory(ctx, sessionId)
		if err != nil {
			return nil, err
		}
	}

	var answer string
	if len(history) > 0 {
		answer, err = c.gateway.QueryWithHistory(ctx, req.Query, req.Context, history)
	} else {
		answer, err = c.gateway.Query(ctx, req.Query, req.Context)
	}
	if err != nil {
		c.sysLogger.Error("ChatService", "llm query failed", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
		return nil, apperror.Gateway("llm query failed", err)
	}

	assistantMessage, err := c.sessionService.AddMessage(ctx, sessionId, &dto.AddMessageRequest{
		Sender:  "assistant",
		Content: answer,
	})
	if err != nil {
		return nil, err
	}

	return &dto.ChatResponse{
		UserMessage:      userMessage,
		AssistantMessage: assistantMessage,
		Response:         answer,
	}, nil
}

func (c *chatService) QueryLLM(ctx context.Context, req *dto.QueryRequest) (*dto.QueryResponse, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, apperror.Invalid("query must not be blank")
	}

	answer, err := c.gateway.Query(ctx, req.Query, req.Context)
	if err != nil {
		c.sysLogger.Error("ChatService", "llm query failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, apperror.Gateway("llm query failed", err)
	}

	return &dto.QueryResponse{Response: answer}, nil
}

// loadHistory maps the first page of stored turns to provider roles. Any
// sender other than "assistant" replays as a user turn. The just-persisted
// user turn is part of the window, matching how exchanges have always been
// replayed.
func (c *chatService) loadHistory(ctx context.Context, sessionId uuid.UUID) ([]llm.Message, error) {
	stored, err := c.sessionService.GetMessages(ctx, sessionId, 0, historyWindow)
	if err != nil {
		return nil, err
	}

	history := make([]llm.Message, 0, len(stored))
	for _, message := range stored {
		role := "user"
		if message.Sender == "assistant" {
			role = "assistant"
		}
		history = append(history, llm.Message{Role: role, Content: message.Content})
	}
	return history, nil
}
