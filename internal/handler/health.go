package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/opsboard/internal/middleware"
	"github.com/deppfellow/opsboard/internal/server"
	"github.com/labstack/echo/v4"
)

const defaultHealthCheckTimeout = 5 * time.Second

// HealthCheck probes one dependency. Required checks turn the whole status
// unhealthy; optional ones only mark it degraded.
type HealthCheck struct {
	Name     string
	Required bool
	Ping     func(ctx context.Context) error
}

type HealthHandler struct {
	Handler
	checks  []HealthCheck
	timeout time.Duration
}

// NewHealthHandler probes the given checks, or the ones named in
// observability.health_checks when none are given.
func NewHealthHandler(s *server.Server, checks ...HealthCheck) *HealthHandler {
	timeout := defaultHealthCheckTimeout
	if obs := s.Config.Observability; obs != nil && obs.HealthChecks.Timeout > 0 {
		timeout = obs.HealthChecks.Timeout
	}
	if len(checks) == 0 {
		checks = configuredHealthChecks(s)
	}
	return &HealthHandler{
		Handler: NewHandler(s),
		checks:  checks,
		timeout: timeout,
	}
}

// configuredHealthChecks requires postgres. Redis only backs the digest
// queue.
func configuredHealthChecks(s *server.Server) []HealthCheck {
	names := []string{"database", "redis"}
	if obs := s.Config.Observability; obs != nil {
		if !obs.HealthChecks.Enabled {
			return nil
		}
		if len(obs.HealthChecks.Checks) > 0 {
			names = obs.HealthChecks.Checks
		}
	}

	var checks []HealthCheck
	for _, name := range names {
		switch {
		case name == "database" && s.DB != nil:
			checks = append(checks, HealthCheck{Name: name, Required: true, Ping: s.DB.Ping})
		case name == "redis" && s.Redis != nil:
			checks = append(checks, HealthCheck{Name: name, Ping: func(ctx context.Context) error {
				return s.Redis.Ping(ctx).Err()
			}})
		}
	}
	return checks
}

type CheckResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type HealthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]CheckResult `json:"checks"`
}

// CheckHealth answers 200 when every required dependency responds and 503
// otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := HealthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]CheckResult, len(h.checks)),
	}

	for _, check := range h.checks {
		ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
		checkStart := time.Now()
		err := check.Ping(ctx)
		cancel()

		result := CheckResult{
			Status:       "healthy",
			ResponseTime: time.Since(checkStart).String(),
		}

		if err != nil {
			result.Status = "unhealthy"
			result.Error = err.Error()

			if check.Required {
				response.Status = "unhealthy"
			} else if response.Status == "healthy" {
				response.Status = "degraded"
			}

			logger.Error().
				Err(err).
				Str("check", check.Name).
				Dur("response_time", time.Since(checkStart)).
				Msg("health check failed")

			h.recordFailure(check.Name, err, time.Since(checkStart))
		}

		response.Checks[check.Name] = result
	}

	logger.Debug().
		Str("status", response.Status).
		Dur("total_duration", time.Since(start)).
		Msg("health check completed")

	if response.Status == "unhealthy" {
		return c.JSON(http.StatusServiceUnavailable, response)
	}
	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) recordFailure(check string, err error, elapsed time.Duration) {
	if h.server.LoggerService == nil || h.server.LoggerService.GetApplication() == nil {
		return
	}
	h.server.LoggerService.GetApplication().RecordCustomEvent("HealthCheckError", map[string]any{
		"check_type":       check,
		"operation":        "health_check",
		"error_type":       check + "_unhealthy",
		"response_time_ms": elapsed.Milliseconds(),
		"error_message":    err.Error(),
	})
}
