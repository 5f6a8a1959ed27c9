package database

import (
	"context"
	"fmt"
	"time"

	"github.com/playea/beach-api/config"
	"github.com/playea/beach-api/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// GormLogLevel picks how chatty GORM is for an environment.
func GormLogLevel(environment string) gormLogger.LogLevel {
	switch environment {
	case "production":
		return gormLogger.Error
	case "staging":
		return gormLogger.Warn
	default:
		return gormLogger.Info
	}
}

// NewGormConfig is shared by the real connection and tests.
func NewGormConfig(environment string) *gorm.Config {
	return &gorm.Config{
		Logger:         logger.NewGormLogger(GormLogLevel(environment), slowQueryThreshold),
		PrepareStmt:    true,
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// NewPostgresDB opens the pool and verifies it with a ping.
func NewPostgresDB(cfg *config.Config) (*gorm.DB, error) {
	start := time.Now()

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: cfg.DatabaseConnectionString(),
	}), NewGormConfig(cfg.App.Environment))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.GetLogger().Info("Database connected",
		zap.String("host", cfg.Database.Host),
		zap.Int("port", cfg.Database.Port),
		zap.String("database", cfg.Database.Name),
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
		zap.Duration("connection_time", time.Since(start)),
	)

	return db, nil
}

// Ping is used by the health endpoint.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func CloseDB(db *gorm.DB) error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.GetLogger().Error("Failed to get database instance for closing", zap.Error(err))
		return err
	}

	if err := sqlDB.Close(); err != nil {
		logger.GetLogger().Error("Failed to close database connection", zap.Error(err))
		return err
	}

	logger.GetLogger().Info("Database connection closed")
	return nil
}
