package bootstrap

import (
	"log"
	"time"

	"rag-chat-be/internal/config"
	"rag-chat-be/internal/controller"
	"rag-chat-be/internal/pkg/logger"
	"rag-chat-be/internal/pkg/ratelimit"
	"rag-chat-be/internal/repository/unitofwork"
	"rag-chat-be/internal/service"
	"rag-chat-be/pkg/llm"
	"rag-chat-be/pkg/llm/factory"

	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatSessionController controller.IChatSessionController

	// Shared infrastructure the server wires as middleware
	RateLimiter *ratelimit.Limiter
	SysLogger   logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. LLM Gateway
	gateway, err := factory.NewGateway(llm.Config{
		Endpoint:    cfg.Llm.ApiUrl,
		APIKey:      cfg.Llm.ApiKey,
		Model:       cfg.Llm.Model,
		MaxTokens:   cfg.Llm.MaxTokens,
		Temperature: cfg.Llm.Temperature,
		Format:      llm.Format(cfg.Llm.Format),
		Timeout:     time.Duration(cfg.Llm.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM gateway: %v", err)
	}
	log.Printf("[INFO] Using LLM endpoint: %s (%s)", cfg.Llm.ApiUrl, cfg.Llm.Model)

	// 3. Services
	sessionService := service.NewSessionService(uowFactory)
	chatService := service.NewChatService(sessionService, gateway, sysLogger)

	limiter := ratelimit.New(cfg.RateLimit.Requests, time.Minute)

	// 4. Controllers
	return &Container{
		ChatSessionController: controller.NewChatSessionController(sessionService, chatService),
		RateLimiter:           limiter,
		SysLogger:             sysLogger,
	}
}
