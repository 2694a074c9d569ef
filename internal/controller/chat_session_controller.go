package controller

import (
	"rag-chat-be/internal/dto"
	"rag-chat-be/internal/pkg/apperror"
	"rag-chat-be/internal/pkg/serverutils"
	"rag-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatSessionController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	ListSessions(ctx *fiber.Ctx) error
	ShowSession(ctx *fiber.Ctx) error
	RenameSession(ctx *fiber.Ctx) error
	FavoriteSession(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
	AddMessage(ctx *fiber.Ctx) error
	ListMessages(ctx *fiber.Ctx) error
	Chat(ctx *fiber.Ctx) error
	QueryLLM(ctx *fiber.Ctx) error
}

type chatSessionController struct {
	sessionService service.ISessionService
	chatService    service.IChatService
}

func NewChatSessionController(sessionService service.ISessionService, chatService service.IChatService) IChatSessionController {
	return &chatSessionController{
		sessionService: sessionService,
		chatService:    chatService,
	}
}

func (c *chatSessionController) RegisterRoutes(r fiber.Router) {
	sessions := r.Group("/sessions")
	sessions.Post("", c.CreateSession)
	sessions.Get("", c.ListSessions)
	sessions.Get(":id", c.ShowSession)
	sessions.Patch(":id/rename", c.RenameSession)
	sessions.Patch(":id/favorite", c.FavoriteSession)
	sessions.Delete(":id", c.DeleteSession)
	sessions.Post(":id/messages", c.AddMessage)
	sessions.Get(":id/messages", c.ListMessages)
	sessions.Post(":id/chat", c.Chat)

	r.Post("/llm/query", c.QueryLLM)
}

func sessionIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, apperror.Invalid("invalid session id")
	}
	return id, nil
}

func (c *chatSessionController) CreateSession(ctx *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Invalid("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return apperror.Invalid(err.Error())
	}

	res, err := c.sessionService.CreateSession(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Session created", res))
}

func (c *chatSessionController) ListSessions(ctx *fiber.Ctx) error {
	userId := ctx.Query("user_id")

	res, err := c.sessionService.GetSessionsByUserId(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Sessions retrieved", res))
}

func (c *chatSessionController) ShowSession(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.sessionService.GetSessionById(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Session retrieved", res))
}

func (c *chatSessionController) RenameSession(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.RenameSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Invalid("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return apperror.Invalid(err.Error())
	}

	res, err := c.sessionService.RenameSession(ctx.Context(), id, req.Name)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Session renamed", res))
}

func (c *chatSessionController) FavoriteSession(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.FavoriteSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Invalid("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return apperror.Invalid(err.Error())
	}

	res, err := c.sessionService.MarkFavorite(ctx.Context(), id, *req.Favorite)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Session updated", res))
}

func (c *chatSessionController) DeleteSession(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	if err := c.sessionService.DeleteSession(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *chatSessionController) AddMessage(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.AddMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Invalid("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return apperror.Invalid(err.Error())
	}

	res, err := c.sessionService.AddMessage(ctx.Context(), id, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Message stored", res))
}

func (c *chatSessionController) ListMessages(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	skip := ctx.QueryInt("skip", 0)
	limit := ctx.QueryInt("limit", 20)

	res, err := c.sessionService.GetMessages(ctx.Context(), id, skip, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Messages retrieved", res))
}

func (c *chatSessionController) Chat(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Invalid("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return apperror.Invalid(err.Error())
	}

	res, err := c.chatService.Chat(ctx.Context(), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Chat completed", res))
}

func (c *chatSessionController) QueryLLM(ctx *fiber.Ctx) error {
	var req dto.QueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Invalid("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return apperror.Invalid(err.Error())
	}

	res, err := c.chatService.QueryLLM(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Query completed", res))
}
