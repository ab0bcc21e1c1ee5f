// Copyright (c) 2026 Lootforge. All rights reserved.
// Author: contact@lootforge.dev

package api

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/haneulkim/lootforge/internal/platform/constants"
	"github.com/haneulkim/lootforge/internal/platform/postgres"
	"github.com/haneulkim/lootforge/internal/platform/redis"
	"github.com/haneulkim/lootforge/internal/platform/respond"
)

// healthHandler serves the liveness and readiness probes.
type healthHandler struct {
	pool  *pgxpool.Pool
	cache *goredis.Client
}

func newHealthHandler(pool *pgxpool.Pool, cache *goredis.Client) *healthHandler {
	return &healthHandler{pool: pool, cache: cache}
}

// handleLiveness reports that the process is up. It touches no dependencies
// so a dying database never causes a restart loop.
func (h *healthHandler) handleLiveness(writer http.ResponseWriter, request *http.Request) {
	respond.JSON(writer, http.StatusOK, map[string]string{
		constants.FieldStatus:  "ok",
		constants.FieldApp:     constants.AppName,
		constants.FieldVersion: constants.AppVersion,
	})
}

// handleReadiness reports whether the server can do useful work: both the
// primary database and the cache must answer a ping.
func (h *healthHandler) handleReadiness(writer http.ResponseWriter, request *http.Request) {
	checks := map[string]string{
		"postgres": "ok",
		"redis":    "ok",
	}
	healthy := true

	if err := postgres.Ping(request.Context(), h.pool); err != nil {
		checks["postgres"] = err.Error()
		healthy = false
	}

	if err := redis.Ping(request.Context(), h.cache); err != nil {
		checks["redis"] = err.Error()
		healthy = false
	}

	status := http.StatusOK
	overall := "ok"
	if !healthy {
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}

	respond.JSON(writer, status, map[string]any{
		constants.FieldStatus: overall,
		constants.FieldChecks: checks,
	})
}
