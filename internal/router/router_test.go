package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/opsboard/internal/config"
	"github.com/deppfellow/opsboard/internal/handler"
	"github.com/deppfellow/opsboard/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(env string) *echo.Echo {
	logger := zerolog.Nop()
	s := &server.Server{
		Config: &config.Config{
			Primary:   config.Primary{Env: env},
			Server:    config.ServerConfig{CORSAllowedOrigins: []string{"*"}},
			RateLimit: config.DefaultRateLimitConfig(),
		},
		Logger: &logger,
	}

	h := &handler.Handlers{
		Health:  handler.NewHealthHandler(s),
		OpenAPI: handler.NewOpenAPIHandler(s),
		Clients: handler.NewClientHandler(s, nil),
		Stats:   handler.NewStatsHandler(s, nil, nil, nil),
		Digests: handler.NewDigestHandler(s, nil),
		Emails:  handler.NewEmailHandler(s, nil),
	}
	return NewRouter(s, h)
}

func routeSet(e *echo.Echo) map[string]bool {
	set := map[string]bool{}
	for _, r := range e.Routes() {
		set[r.Method+" "+r.Path] = true
	}
	return set
}

func TestRoutesRegistered(t *testing.T) {
	routes := routeSet(newTestRouter("development"))

	for _, want := range []string{
		"GET /status",
		"GET /docs",
		"GET /api/v1/clients",
		"GET /api/v1/clients/options",
		"GET /api/v1/clients/export",
		"GET /api/v1/stats/csm",
		"GET /api/v1/stats/sales",
		"GET /api/v1/stats/va",
		"POST /api/v1/digests",
		"GET /emails/preview/:template",
	} {
		assert.True(t, routes[want], want)
	}
}

func TestEmailPreviewHiddenInProduction(t *testing.T) {
	routes := routeSet(newTestRouter(ProductionEnv))

	assert.False(t, routes["GET /emails/preview/:template"])
	assert.True(t, routes["GET /status"])
}

func TestAPIRequiresAuth(t *testing.T) {
	e := newTestRouter("development")

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestStatusWithoutDependencies(t *testing.T) {
	e := newTestRouter("development")

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}
