package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// HeaderRequestID - заголовок с идентификатором запроса
	HeaderRequestID = "X-Request-ID"

	requestIDLocal = "request_id"
)

type requestIDKey struct{}

// Logger - присваивает запросу id (или берёт из заголовка) и пишет access-лог
func Logger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		id := c.Get(HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Locals(requestIDLocal, id)
		c.Set(HeaderRequestID, id)
		c.SetUserContext(context.WithValue(c.UserContext(), requestIDKey{}, id))

		err := c.Next()
		if err != nil {
			// отдаём ошибку ErrorHandler'у сейчас, чтобы в логе был итоговый статус
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		fields := []zap.Field{
			zap.String("request_id", id),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			logger.Error("HTTP request", fields...)
		case status >= fiber.StatusBadRequest:
			logger.Warn("HTTP request", fields...)
		default:
			logger.Info("HTTP request", fields...)
		}

		return nil
	}
}

// RequestID - id текущего запроса (пусто вне Logger)
func RequestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestIDLocal).(string); ok {
		return id
	}
	return ""
}

// RequestIDFromContext - id запроса из context.Context
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
