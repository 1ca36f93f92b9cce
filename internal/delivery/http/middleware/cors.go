package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS - origins через запятую, пусто - "*".
// Запись только в /cache/invalidate, поэтому POST разрешён.
func CORS(origins string) fiber.Handler {
	origins = strings.TrimSpace(origins)
	if origins == "" {
		origins = "*"
	}
	return cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  "GET,POST,OPTIONS",
		AllowHeaders:  "Content-Type,Accept," + HeaderRequestID,
		ExposeHeaders: HeaderRequestID,
		MaxAge:        600,
	})
}
