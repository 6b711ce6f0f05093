package handler

import (
	"context"

	"github.com/deppfellow/opsboard/internal/server"
	"github.com/deppfellow/opsboard/internal/service"
	"github.com/deppfellow/opsboard/internal/table"
	"github.com/deppfellow/opsboard/internal/validation"
	"github.com/labstack/echo/v4"
)

const (
	ClientsExportFilename    = "clients.csv"
	ClientsExportContentType = "text/csv; charset=utf-8"
)

// ClientLister is implemented by *service.ClientService.
type ClientLister interface {
	List(ctx context.Context, q *validation.ClientListQuery) (*table.View, error)
	FilterOptions(ctx context.Context) (*service.ClientFilterOptions, error)
	ExportCSV(ctx context.Context, q *validation.ClientListQuery) ([]byte, error)
}

type ClientHandler struct {
	Handler
	clients ClientLister
}

func NewClientHandler(s *server.Server, clients ClientLister) *ClientHandler {
	return &ClientHandler{
		Handler: NewHandler(s),
		clients: clients,
	}
}

func NewClientListQuery() *validation.ClientListQuery {
	return &validation.ClientListQuery{}
}

func (h *ClientHandler) ListClients(c echo.Context, q *validation.ClientListQuery) (*table.View, error) {
	return h.clients.List(c.Request().Context(), q)
}

func (h *ClientHandler) GetFilterOptions(c echo.Context, _ *validation.NoParams) (*service.ClientFilterOptions, error) {
	return h.clients.FilterOptions(c.Request().Context())
}

func (h *ClientHandler) ExportClients(c echo.Context, q *validation.ClientListQuery) ([]byte, error) {
	return h.clients.ExportCSV(c.Request().Context(), q)
}
