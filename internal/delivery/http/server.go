package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/airport-locator/internal/config"
	"github.com/airport-locator/internal/delivery/http/handler"
	"github.com/airport-locator/internal/delivery/http/middleware"
	"github.com/airport-locator/internal/pkg/errors"
	"github.com/airport-locator/internal/pkg/utils"
)

// HealthCheck - проверка зависимости для /health
type HealthCheck func(ctx context.Context) error

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	searchHandler *handler.SearchHandler
	cacheHandler  *handler.CacheHandler

	healthChecks map[string]HealthCheck
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	searchHandler *handler.SearchHandler,
	cacheHandler *handler.CacheHandler,
	healthChecks map[string]HealthCheck,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Airport Locator",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:           app,
		config:        cfg,
		logger:        logger,
		searchHandler: searchHandler,
		cacheHandler:  cacheHandler,
		healthChecks:  healthChecks,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.Prometheus())
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)
	s.app.Get("/metrics", middleware.MetricsHandler())

	api := s.app.Group("/api/v1")

	api.Get("/health", s.health)

	// Search routes
	api.Get("/search", s.searchHandler.Search)
	api.Get("/resolve", s.searchHandler.Resolve)
	api.Get("/distance", s.searchHandler.Distance)

	// Cache routes
	api.Post("/cache/invalidate", s.cacheHandler.Invalidate)
}

// health - статус зависимостей; кеш не критичен, поиск работает и без него
func (s *Server) health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := "healthy"
	checks := fiber.Map{}
	for name, check := range s.healthChecks {
		if err := check(ctx); err != nil {
			checks[name] = err.Error()
			if name == "database" {
				status = "unhealthy"
			} else if status == "healthy" {
				status = "degraded"
			}
			continue
		}
		checks[name] = "ok"
	}

	code := fiber.StatusOK
	if status == "unhealthy" {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{
		"status": status,
		"checks": checks,
		"time":   time.Now().UTC(),
	})
}

// App - fiber приложение (для тестов через app.Test)
func (s *Server) App() *fiber.App {
	return s.app
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - ошибки fiber (404, 405, разбор тела) в общем формате
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if appErr, ok := errors.As(err); ok {
			return utils.SendError(c, appErr)
		}

		code := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err),
			)
			return utils.SendError(c, errors.ErrInternalServer)
		}

		return utils.SendErrors(c, errors.New("HTTP_ERROR", err.Error(), code))
	}
}
