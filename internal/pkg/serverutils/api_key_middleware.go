package serverutils

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// ApiKeyMiddleware requires the X-API-KEY header to match the configured
// key. The health endpoint stays open for probes.
func ApiKeyMiddleware(apiKey string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if ctx.Path() == "/api/health" {
			return ctx.Next()
		}

		provided := ctx.Get("X-API-KEY")
		if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid or missing API key"))
		}
		return ctx.Next()
	}
}
