// Copyright (c) 2026 Lootforge. All rights reserved.
// Author: contact@lootforge.dev

// Lootforge API server entry point.
//
// Startup order: logging, configuration, PostgreSQL, Redis, schema
// migrations, credential signing, dependency wiring, HTTP listener. Any
// failure before the listener is fatal.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/haneulkim/lootforge/internal/api"
	"github.com/haneulkim/lootforge/internal/auth"
	"github.com/haneulkim/lootforge/internal/game/character"
	"github.com/haneulkim/lootforge/internal/game/equipment"
	"github.com/haneulkim/lootforge/internal/game/inventory"
	"github.com/haneulkim/lootforge/internal/game/item"
	"github.com/haneulkim/lootforge/internal/platform/config"
	"github.com/haneulkim/lootforge/internal/platform/constants"
	"github.com/haneulkim/lootforge/internal/platform/migration"
	"github.com/haneulkim/lootforge/internal/platform/postgres"
	"github.com/haneulkim/lootforge/internal/platform/redis"
	"github.com/haneulkim/lootforge/internal/platform/sec"
)

func main() {
	if err := run(); err != nil {
		slog.Error("startup_failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ── 1. Logging ────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	logger.Info("starting",
		slog.String("app", constants.AppName),
		slog.String("version", constants.AppVersion),
		slog.String("environment", cfg.Environment),
	)

	// ── 2. Storage ────────────────────────────────────────────────────────
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	cache, err := redis.NewClient(ctx, cfg.RedisURL, logger)
	if err != nil {
		return err
	}
	defer func() { _ = cache.Close() }()

	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, logger); err != nil {
		return err
	}

	// ── 3. Security ───────────────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer)
	if err != nil {
		return err
	}

	// ── 4. Domain wiring ──────────────────────────────────────────────────
	accountRepo := auth.NewPostgresAccountRepository(pool)
	sessionRepo := auth.NewPostgresSessionRepository(pool)
	authService := auth.NewService(accountRepo, sessionRepo, tokens)

	itemRepo := item.NewCachedRepository(item.NewPostgresRepository(pool), cache, logger)
	itemService := item.NewService(itemRepo)

	characterService := character.NewService(character.NewPostgresRepository(pool))
	inventoryService := inventory.NewService(inventory.NewPostgresRepository(pool), characterService, itemRepo)
	equipmentService := equipment.NewService(equipment.NewPostgresRepository(pool), characterService, inventoryService)

	handlers := api.Handlers{
		Auth:      auth.NewHandler(authService, cfg.IsProduction()),
		Item:      item.NewHandler(itemService),
		Character: character.NewHandler(characterService),
		Inventory: inventory.NewHandler(inventoryService),
		Equipment: equipment.NewHandler(equipmentService),
	}

	// ── 5. Serve ──────────────────────────────────────────────────────────
	server := api.NewServer(ctx, cfg, logger, authService, handlers, pool, cache)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Start()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutdown_signal_received")
	}

	return server.Shutdown(context.Background())
}
