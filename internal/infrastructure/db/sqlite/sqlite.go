package sqlite

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultTimeout = 5 * time.Second

// Config captures the settings for opening the session database.
type Config struct {
	Path    string
	Debug   bool
	Timeout time.Duration
}

// Connect opens the SQLite file at cfg.Path, migrates the session table and
// verifies connectivity with a ping.
func Connect(ctx context.Context, cfg Config) (*gorm.DB, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	level := logger.Silent
	if cfg.Debug {
		level = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	// SQLite allows one writer; ":memory:" databases are per connection.
	sqlDB.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("sqlite ping: %w", err)
	}

	if err := db.WithContext(pingCtx).AutoMigrate(&sessionRecord{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("sqlite migrate: %w", err)
	}

	return db, nil
}
