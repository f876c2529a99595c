package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/forgo/madoka/api/internal/middleware"
	"github.com/labstack/echo/v4"
)

const healthCheckTimeout = 5 * time.Second

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports whether the API and its database are usable
type HealthHandler struct {
	db          Pinger
	environment string
}

// HealthHandlerConfig holds configuration for the health handler
type HealthHandlerConfig struct {
	DB          Pinger
	Environment string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(cfg HealthHandlerConfig) *HealthHandler {
	return &HealthHandler{
		db:          cfg.DB,
		environment: cfg.Environment,
	}
}

// CheckHealth handles GET /health.
// 200 when every check passes, 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	logger := middleware.GetLogger(c).With().Str("operation", "health_check").Logger()

	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	start := time.Now()
	database := map[string]interface{}{"status": "healthy"}
	status, code := "healthy", http.StatusOK

	if err := h.db.Ping(ctx); err != nil {
		database["status"] = "unhealthy"
		status, code = "unhealthy", http.StatusServiceUnavailable
		logger.Warn().Err(err).Dur("response_time", time.Since(start)).Msg("database health check failed")
	}
	database["response_time"] = time.Since(start).String()

	return WriteJSON(c, code, map[string]interface{}{
		"status":      status,
		"timestamp":   time.Now().UTC(),
		"environment": h.environment,
		"checks":      map[string]interface{}{"database": database},
	})
}
