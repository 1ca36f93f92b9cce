package main

// @title Airport Locator API
// @version 1.0.0
// @description Поиск ближайших аэропортов по координатам, IATA коду или названию города.
// @description
// @description Основные возможности:
// @description - Разрешение запроса в координату с кешированием
// @description - Ближайшие активные аэропорты с фильтром по стране, в км или милях
// @description - Расстояние между двумя точками по сфере и по эллипсоиду WGS-84
// @description - Сброс кеша поиска по префиксу

// @contact.name API Support
// @contact.email support@airport-locator.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/airport-locator/docs/swagger"
	"github.com/airport-locator/internal/config"
	httpDelivery "github.com/airport-locator/internal/delivery/http"
	"github.com/airport-locator/internal/delivery/http/handler"
	"github.com/airport-locator/internal/domain"
	"github.com/airport-locator/internal/domain/repository"
	"github.com/airport-locator/internal/pkg/logger"
	"github.com/airport-locator/internal/repository/cache"
	"github.com/airport-locator/internal/repository/postgres"
	"github.com/airport-locator/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "airport-locator-api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Airport Locator")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("cache_backend", cfg.Cache.Backend),
	)

	// 3. Connect to PostgreSQL (справочник аэропортов и городов)
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()
	log.Info("PostgreSQL connected")

	healthChecks := map[string]httpDelivery.HealthCheck{
		"database": db.Health,
	}

	// 4. Cache store
	var store repository.CacheRepository
	switch cfg.Cache.Backend {
	case config.CacheBackendMemory:
		store = cache.NewMemoryCache(cfg.Cache.MemoryShards, cfg.Cache.MemoryShardCapacity)
		log.Info("In-memory cache initialized",
			zap.Int("shards", cfg.Cache.MemoryShards),
			zap.Int("shard_capacity", cfg.Cache.MemoryShardCapacity))
	default:
		redisClient, err := cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()
		store = cache.NewCacheRepository(redisClient)
		healthChecks["cache"] = redisClient.Health
		log.Info("Redis connected")
	}

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	log.Info("All connections healthy")

	// 6. Repositories and use cases
	airportRepo := postgres.NewAirportRepository(db)
	cacheLayer := usecase.NewCacheLayer(store, log, cfg.Cache.NegativeTTLDivisor)

	searchUC := usecase.NewSearchUseCase(airportRepo, cacheLayer, log, usecase.SearchOptions{
		ResolveTTL:   cfg.Cache.ResolveTTL,
		NearestTTL:   cfg.Cache.NearestTTL,
		DefaultLimit: cfg.Search.DefaultLimit,
		MaxLimit:     cfg.Search.MaxLimit,
		DefaultUnit:  domain.Unit(cfg.Search.DefaultUnit),
	})

	log.Info("Use cases initialized",
		zap.Duration("resolve_ttl", cfg.Cache.ResolveTTL),
		zap.Duration("nearest_ttl", cfg.Cache.NearestTTL))

	// 7. HTTP handlers and server
	searchHandler := handler.NewSearchHandler(searchUC, log)
	cacheHandler := handler.NewCacheHandler(searchUC, log)

	server := httpDelivery.NewServer(cfg, log, searchHandler, cacheHandler, healthChecks)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
