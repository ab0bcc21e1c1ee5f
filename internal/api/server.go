// Copyright (c) 2026 Lootforge. All rights reserved.
// Author: contact@lootforge.dev

// Package api assembles the HTTP server: the middleware chain, the route
// tree, and the listener lifecycle.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/haneulkim/lootforge/internal/auth"
	"github.com/haneulkim/lootforge/internal/game/character"
	"github.com/haneulkim/lootforge/internal/game/equipment"
	"github.com/haneulkim/lootforge/internal/game/inventory"
	"github.com/haneulkim/lootforge/internal/game/item"
	"github.com/haneulkim/lootforge/internal/platform/config"
	"github.com/haneulkim/lootforge/internal/platform/constants"
	"github.com/haneulkim/lootforge/internal/platform/middleware"
)

// Handlers bundles every domain handler mounted by the server.
type Handlers struct {
	Auth      *auth.Handler
	Item      *item.Handler
	Character *character.Handler
	Inventory *inventory.Handler
	Equipment *equipment.Handler
}

// Server is the assembled HTTP server.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer builds the full router and wraps it in an http.Server with the
// standard timeouts.
func NewServer(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	guard middleware.Authenticator,
	handlers Handlers,
	pool *pgxpool.Pool,
	cache *redis.Client,
) *Server {
	router := chi.NewRouter()

	// Cross-cutting chain. Order matters: tracing and logging first so every
	// later stage (including auth failures) is correlated.
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(logger))
	router.Use(chimiddleware.Timeout(constants.GlobalRequestTimeout))
	router.Use(middleware.RateLimit(ctx))
	router.Use(middleware.PanicRecovery(logger))
	router.Use(middleware.CORS(cfg))
	router.Use(middleware.AuthenticateDevice(guard, cfg.IsProduction()))

	// Probes stay outside the API version prefix.
	health := newHealthHandler(pool, cache)
	router.Get("/health", health.handleLiveness)
	router.Get("/ready", health.handleReadiness)

	router.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", handlers.Auth.Routes())
		api.Mount("/items", handlers.Item.Routes())

		api.Group(func(protected chi.Router) {
			protected.Use(middleware.RequireAuth)
			protected.Mount("/characters", handlers.Character.Routes())
			protected.Mount("/inventory", handlers.Inventory.Routes())
			protected.Mount("/equipment", handlers.Equipment.Routes())
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           router,
			ReadTimeout:       constants.DefaultReadTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
		},
		logger: logger,
	}
}

// Start begins serving. It blocks until the listener fails or is shut down.
func (s *Server) Start() error {
	s.logger.Info("http_server_started", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests within the standard shutdown window.
func (s *Server) Shutdown(ctx context.Context) error {
	drainCtx, cancel := context.WithTimeout(ctx, constants.ShutdownTimeout)
	defer cancel()

	start := time.Now()
	err := s.httpServer.Shutdown(drainCtx)
	s.logger.Info("http_server_stopped", slog.Int64("drain_ms", time.Since(start).Milliseconds()))
	return err
}
