package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/airport-locator/internal/config"
	"github.com/airport-locator/internal/pkg/logger"
	"github.com/airport-locator/internal/repository/cache"
	"github.com/airport-locator/internal/repository/postgres"
	redisRepo "github.com/airport-locator/internal/repository/redis"
	"github.com/airport-locator/internal/usecase"
	"github.com/airport-locator/internal/worker"
	"github.com/airport-locator/internal/worker/invalidation"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}
	if cfg.Cache.Backend != config.CacheBackendRedis {
		fmt.Println("Cache invalidation worker requires CACHE_BACKEND=redis.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "airport-locator-worker")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Cache Invalidation Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Duration("stream_read_timeout", cfg.Worker.StreamReadTimeout),
		zap.Int("batch_size", cfg.Worker.BatchSize),
		zap.Duration("claim_min_idle", cfg.Worker.ClaimMinIdle))

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis (кеш поиска и стримы в одном инстансе)
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Repositories and use cases
	airportRepo := postgres.NewAirportRepository(db)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log, cfg.Worker.StreamReadTimeout)
	cacheLayer := usecase.NewCacheLayer(cache.NewCacheRepository(redisClient), log, cfg.Cache.NegativeTTLDivisor)
	searchUC := usecase.NewSearchUseCase(airportRepo, cacheLayer, log, usecase.DefaultSearchOptions())

	// 6. Workers
	invalidationWorker := invalidation.NewCacheInvalidationWorker(
		streamRepo,
		searchUC,
		invalidation.Options{
			ConsumerGroup: cfg.Worker.ConsumerGroup,
			BatchSize:     cfg.Worker.BatchSize,
			ClaimMinIdle:  cfg.Worker.ClaimMinIdle,
		},
		log,
	)

	workerManager := worker.NewWorkerManager(log, worker.DefaultShutdownTimeout)
	if err := workerManager.Register(invalidationWorker); err != nil {
		log.Fatal("Failed to register worker", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// 7. Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
