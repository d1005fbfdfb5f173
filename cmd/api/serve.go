// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/taibuivan/grimoire/internal/api"
	"github.com/taibuivan/grimoire/internal/core/monster"
	"github.com/taibuivan/grimoire/internal/core/spell"
	"github.com/taibuivan/grimoire/internal/platform/config"
	"github.com/taibuivan/grimoire/internal/platform/constants"
	"github.com/taibuivan/grimoire/internal/platform/migration"
	pgstore "github.com/taibuivan/grimoire/internal/platform/postgres"
	redisstore "github.com/taibuivan/grimoire/internal/platform/redis"
	"github.com/taibuivan/grimoire/internal/platform/sec"
	"github.com/taibuivan/grimoire/internal/translation"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the Grimoire HTTP API.

Startup sequence:
  1. Initialize structured logger.
  2. Load configuration from environment variables.
  3. Connect to PostgreSQL and Redis (postgres store only).
  4. Run database migrations (idempotent).
  5. Wire HTTP handlers.
  6. Start HTTP server with graceful shutdown.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(false)
	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.Debug {
		log = newLogger(true)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("store", cfg.StoreDriver),
	)

	verifier, err := sec.NewTokenVerifier(cfg.JWTPubKeyPath, cfg.JWTIssuer)
	if err != nil {
		return fmt.Errorf("initialize token verifier: %w", err)
	}

	// Root context lives until a shutdown signal arrives.
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// ── 3. Storage ────────────────────────────────────────────────────────
	store, err := openStore(rootCtx, cfg, log)
	if err != nil {
		return err
	}
	defer store.close()

	options := translation.Options{
		DefaultLanguage: translation.MustCode(cfg.DefaultLanguage),
		Cache:           store.cache,
	}

	// ── 4. Domain Wiring ──────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(store.health, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Spell:     spell.NewHandler(spell.NewService(store.spells, options, log)),
		Monster:   monster.NewHandler(monster.NewService(store.monsters, options, log)),
	}

	server := api.NewServer(rootCtx, cfg, log, verifier, handlers)

	// ── 5. Graceful Shutdown ──────────────────────────────────────────────
	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case <-rootCtx.Done():
		log.Info("shutdown_signal_received")
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
		return err
	}

	// Give in-flight requests enough time to complete.
	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("server_stopped_cleanly")
	return nil
}

// store bundles the repositories and infrastructure selected by STORE_DRIVER.
type store struct {
	spells   translation.Repository[spell.Details]
	monsters translation.Repository[monster.Details]
	cache    translation.LanguageCache
	health   api.HealthDependencies
	close    func()
}

// openStore connects the configured backend. The memory driver needs no
// external service and caches nothing.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (*store, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		log.Warn("memory_store_enabled", slog.String("note", "content is lost on restart"))
		return &store{
			spells:   spell.NewMemoryRepository(),
			monsters: monster.NewMemoryRepository(),
			cache:    translation.NopLanguageCache{},
			close:    func() {},
		}, nil
	}

	// Bound connecting so misconfiguration is caught quickly rather than hanging.
	startupCtx, cancel := context.WithTimeout(ctx, constants.StartupTimeout)
	defer cancel()

	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	closeAll := func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_error", slog.Any("error", cerr))
		}
		log.Info("closing_postgres_pool")
		pool.Close()
	}

	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
		closeAll()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &store{
		spells:   spell.NewPostgresRepository(pool),
		monsters: monster.NewPostgresRepository(pool),
		cache:    translation.NewRedisLanguageCache(rdb, cfg.LanguageCacheTTL),
		health: api.HealthDependencies{
			CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
			CheckCache:    func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
		},
		close: closeAll,
	}, nil
}
