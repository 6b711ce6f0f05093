package router

import (
	"net/http"

	"github.com/deppfellow/opsboard/internal/handler"
	"github.com/deppfellow/opsboard/internal/server"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes mounts health, docs and static assets. Email
// previews are left out in production.
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
	r.Static("/static", handler.StaticDir)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)

	if s.Config.Primary.Env != ProductionEnv {
		r.GET("/emails/preview/:template", handler.HandleHTML(h.Emails.Handler, h.Emails.PreviewEmail, http.StatusOK, handler.NewEmailPreviewRequest))
	}
}
