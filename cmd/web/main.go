package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matchme/matchme-web/internal/api"
	"github.com/matchme/matchme-web/internal/core/ports"
	"github.com/matchme/matchme-web/internal/infrastructure/backend"
	"github.com/matchme/matchme-web/internal/infrastructure/config"
	redisdb "github.com/matchme/matchme-web/internal/infrastructure/db/redis"
	sqlitedb "github.com/matchme/matchme-web/internal/infrastructure/db/sqlite"
	"github.com/matchme/matchme-web/internal/infrastructure/session"
	"github.com/matchme/matchme-web/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	// Init logger (global singleton)
	log := logger.Init(logger.OptionsFor(cfg.Env, cfg.LogLevel, "matchme-web"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init session storage
	sessions, closer, err := openSessions(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Str("driver", cfg.Session.Driver).Msg("failed to open session storage")
		os.Exit(1)
	}
	defer func() {
		if err := closer.Close(); err != nil {
			log.Warn().Err(err).Msg("close session storage")
		}
	}()

	client := backend.NewClient(backend.Config{BaseURL: cfg.Backend.URL, Timeout: cfg.Backend.Timeout}, log)

	e := api.NewRouter(api.Deps{
		Logger:        log,
		Backend:       client,
		Sessions:      sessions,
		CookieName:    cfg.Session.CookieName,
		CookieSecure:  cfg.Session.CookieSecure,
		PageCacheSize: cfg.Pages.CacheSize,
		PageStateTTL:  cfg.Pages.StateTTL,
		Registerer:    prometheus.DefaultRegisterer,
		Gatherer:      prometheus.DefaultGatherer,
	})

	addr := ":" + cfg.Port
	go func() {
		log.Info().Str("addr", addr).Str("backend", cfg.Backend.URL).Str("session_driver", cfg.Session.Driver).Msg("starting web server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("web server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// openSessions connects the configured session backend. The returned closer
// releases its connections.
func openSessions(ctx context.Context, cfg *config.Config) (ports.SessionBackend, io.Closer, error) {
	switch cfg.Session.Driver {
	case config.DriverRedis:
		client, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		return redisdb.NewSessionBackend(client, cfg.Session.TTL), client, nil

	case config.DriverSQLite:
		db, err := sqlitedb.Connect(ctx, sqlitedb.Config{Path: cfg.SQLite.Path, Debug: !cfg.IsProduction() && cfg.LogLevel == "debug"})
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("sqlite handle: %w", err)
		}
		return sqlitedb.NewSessionBackend(db), sqlDB, nil

	case config.DriverMemory:
		return session.NewMemoryBackend(), closerFunc(func() error { return nil }), nil
	}
	return nil, nil, fmt.Errorf("unknown session driver %q", cfg.Session.Driver)
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
