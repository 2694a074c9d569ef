package serverutils

import (
	"github.com/gofiber/fiber/v2"

	"rag-chat-be/internal/pkg/ratelimit"
)

// RateLimitMiddleware runs before any store or gateway work; a rejected
// request produces nothing but the 429.
func RateLimitMiddleware(limiter *ratelimit.Limiter) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if !limiter.Admit(ctx.IP()) {
			return ctx.Status(fiber.StatusTooManyRequests).JSON(ErrorResponse(429, "Rate limit exceeded, try again later"))
		}
		return ctx.Next()
	}
}
