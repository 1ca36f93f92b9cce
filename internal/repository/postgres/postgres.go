package postgres

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/airport-locator/internal/config"
)

// DB - пул подключений к справочнику аэропортов (только чтение)
type DB struct {
	*sqlx.DB
	logger       *zap.Logger
	queryTimeout time.Duration
}

// New открывает пул через pgx, проверяет подключение и
// регистрирует метрики пула (go_sql_* с db_name="airports").
func New(cfg *config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	db, err := sqlx.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := prometheus.Register(collectors.NewDBStatsCollector(db.DB, cfg.DBName)); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !stderrors.As(err, &already) {
			logger.Warn("Failed to register database pool metrics", zap.Error(err))
		}
	}

	logger.Info("PostgreSQL connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.DBName),
		zap.Duration("query_timeout", cfg.QueryTimeout),
	)

	return &DB{DB: db, logger: logger, queryTimeout: cfg.QueryTimeout}, nil
}

func (db *DB) Close() error {
	db.logger.Info("Closing PostgreSQL connection")
	return db.DB.Close()
}

func (db *DB) Health(ctx context.Context) error {
	return db.PingContext(ctx)
}

// withTimeout ограничивает запрос queryTimeout, если он задан
func (db *DB) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if db.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, db.queryTimeout)
}

// NewDBForTest оборачивает готовое подключение (тесты, lib/pq)
func NewDBForTest(sqlxDB *sqlx.DB, logger *zap.Logger, queryTimeout time.Duration) *DB {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DB{
		DB:           sqlxDB,
		logger:       logger,
		queryTimeout: queryTimeout,
	}
}
