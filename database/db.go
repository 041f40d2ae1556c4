package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"comic_portfolio/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the Postgres database, retrying while the server comes up.
func Connect(ctx context.Context, cfg config.DBConfig, log *slog.Logger) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	for i := 0; i < cfg.ConnectRetries; i++ {
		db, err = open(ctx, cfg)
		if err == nil {
			break
		}
		log.Warn("failed to connect to database",
			slog.Int("attempt", i+1),
			slog.Int("max_attempts", cfg.ConnectRetries),
			slog.String("error", err.Error()))

		if i == cfg.ConnectRetries-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.RetryDelay):
		}
	}
	if err != nil {
		return nil, fmt.Errorf("connect to database after %d attempts: %w", cfg.ConnectRetries, err)
	}

	log.Info("connected to database", slog.String("host", cfg.Host), slog.String("name", cfg.Name))
	return db, nil
}

func open(ctx context.Context, cfg config.DBConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), Options())
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// Options is the GORM configuration shared by every dialect. Driver errors
// are translated so unique violations surface as gorm.ErrDuplicatedKey.
func Options() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	}
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
