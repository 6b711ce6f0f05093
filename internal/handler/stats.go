package handler

import (
	"context"

	"github.com/deppfellow/opsboard/internal/server"
	"github.com/deppfellow/opsboard/internal/service"
	"github.com/deppfellow/opsboard/internal/validation"
	"github.com/labstack/echo/v4"
)

type CSMReporter interface {
	Report(ctx context.Context, q *validation.StatsQuery) (*service.CSMStatsResponse, error)
}

type SalesReporter interface {
	Report(ctx context.Context, q *validation.StatsQuery) (*service.SalesStatsResponse, error)
}

type VAReporter interface {
	Report(ctx context.Context, q *validation.StatsQuery) (*service.VAStatsResponse, error)
}

type StatsHandler struct {
	Handler
	csm   CSMReporter
	sales SalesReporter
	va    VAReporter
}

func NewStatsHandler(s *server.Server, csm CSMReporter, sales SalesReporter, va VAReporter) *StatsHandler {
	return &StatsHandler{
		Handler: NewHandler(s),
		csm:     csm,
		sales:   sales,
		va:      va,
	}
}

func NewStatsQuery() *validation.StatsQuery {
	return &validation.StatsQuery{}
}

func (h *StatsHandler) GetCSMStats(c echo.Context, q *validation.StatsQuery) (*service.CSMStatsResponse, error) {
	return h.csm.Report(c.Request().Context(), q)
}

func (h *StatsHandler) GetSalesStats(c echo.Context, q *validation.StatsQuery) (*service.SalesStatsResponse, error) {
	return h.sales.Report(c.Request().Context(), q)
}

func (h *StatsHandler) GetVAStats(c echo.Context, q *validation.StatsQuery) (*service.VAStatsResponse, error) {
	return h.va.Report(c.Request().Context(), q)
}
