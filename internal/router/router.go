// Package router builds the echo instance: global middleware, the system
// routes and the authenticated /api/v1 group.
package router

import (
	"net/http"

	"github.com/deppfellow/opsboard/internal/handler"
	"github.com/deppfellow/opsboard/internal/middleware"
	"github.com/deppfellow/opsboard/internal/server"
	"github.com/deppfellow/opsboard/internal/validation"
	"github.com/labstack/echo/v4"
)

const ProductionEnv = "production"

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.Recover(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
	)

	registerSystemRoutes(router, s, h)

	v1 := router.Group("/api/v1",
		middlewares.RateLimit.Limit(),
		middlewares.Auth.RequireAuth,
		middlewares.ContextEnhancer.EnhanceContext(),
	)
	registerV1Routes(v1, h)

	return router
}

func registerV1Routes(g *echo.Group, h *handler.Handlers) {
	clients := g.Group("/clients")
	clients.GET("", handler.Handle(h.Clients.Handler, h.Clients.ListClients, http.StatusOK, handler.NewClientListQuery))
	clients.GET("/options", handler.Handle(h.Clients.Handler, h.Clients.GetFilterOptions, http.StatusOK, newNoParams))
	clients.GET("/export", handler.HandleFile(h.Clients.Handler, h.Clients.ExportClients, http.StatusOK,
		handler.NewClientListQuery, handler.ClientsExportFilename, handler.ClientsExportContentType))

	stats := g.Group("/stats")
	stats.GET("/csm", handler.Handle(h.Stats.Handler, h.Stats.GetCSMStats, http.StatusOK, handler.NewStatsQuery))
	stats.GET("/sales", handler.Handle(h.Stats.Handler, h.Stats.GetSalesStats, http.StatusOK, handler.NewStatsQuery))
	stats.GET("/va", handler.Handle(h.Stats.Handler, h.Stats.GetVAStats, http.StatusOK, handler.NewStatsQuery))

	g.POST("/digests", handler.Handle(h.Digests.Handler, h.Digests.CreateDigest, http.StatusAccepted, handler.NewDigestRequest))
}

func newNoParams() *validation.NoParams {
	return &validation.NoParams{}
}
