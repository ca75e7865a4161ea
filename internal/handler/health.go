package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/workout-api/internal/repository"
	"github.com/maxviazov/workout-api/internal/router"
)

const readinessTimeout = 2 * time.Second

// HealthHandler exposes liveness and readiness endpoints.
type HealthHandler struct {
	repo repository.Pinger
}

// NewHealthHandler wires a health handler with its only dependency: something that can Ping.
func NewHealthHandler(repo repository.Pinger) *HealthHandler {
	return &HealthHandler{repo: repo}
}

// healthStatus picks its own HTTP status so a failed probe still renders as a body.
type healthStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	code   int
}

func (s healthStatus) StatusCode() int { return s.code }

func (h *HealthHandler) Routes() []router.Endpoint {
	return []router.Endpoint{
		router.Single(http.MethodGet, "/live", "health.live", h.liveness),
		router.Single(http.MethodGet, "/ready", "health.ready", h.readiness),
	}
}

// liveness responds OK if the process is up; it doesn't check dependencies.
func (h *HealthHandler) liveness(*gin.Context) (any, error) {
	return healthStatus{Status: "alive", code: http.StatusOK}, nil
}

// readiness verifies the storage backend answers within readinessTimeout.
func (h *HealthHandler) readiness(c *gin.Context) (any, error) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()
	if err := h.repo.Ping(ctx); err != nil {
		return healthStatus{Status: "unavailable", Error: err.Error(), code: http.StatusServiceUnavailable}, nil
	}
	return healthStatus{Status: "ready", code: http.StatusOK}, nil
}
