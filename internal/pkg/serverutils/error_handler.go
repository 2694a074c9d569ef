package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"rag-chat-be/internal/pkg/apperror"
	"rag-chat-be/internal/pkg/logger"
)

// ErrorHandlerMiddleware translates service errors into envelopes. Unknown
// errors are logged and surface as a generic 500 so internals never leak.
func ErrorHandlerMiddleware(sysLogger logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		switch apperror.KindOf(err) {
		case apperror.KindNotFound:
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(404, err.Error()))
		case apperror.KindInvalid:
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(400, err.Error()))
		case apperror.KindGateway:
			return ctx.Status(fiber.StatusBadGateway).JSON(ErrorResponse(502, err.Error()))
		case apperror.KindRateLimited:
			return ctx.Status(fiber.StatusTooManyRequests).JSON(ErrorResponse(429, err.Error()))
		default:
			sysLogger.Error("HTTP", "unhandled error", map[string]interface{}{
				"path":   ctx.Path(),
				"method": ctx.Method(),
				"error":  err.Error(),
			})
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(500, "Internal server error"))
		}
	}
}
