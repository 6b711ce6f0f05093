// Package handler binds HTTP requests to the services. Every endpoint runs
// through the typed Handle helpers in base.go, which bind and validate the
// request, log and trace it, and leave error rendering to the global error
// handler.
package handler

import (
	"github.com/deppfellow/opsboard/internal/lib/email"
	"github.com/deppfellow/opsboard/internal/server"
	"github.com/deppfellow/opsboard/internal/service"
)

type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Clients *ClientHandler
	Stats   *StatsHandler
	Digests *DigestHandler
	Emails  *EmailHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	var digests DigestEnqueuer
	if services.Digest != nil {
		digests = services.Digest
	}

	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Clients: NewClientHandler(s, services.Clients),
		Stats:   NewStatsHandler(s, services.CSM, services.Sales, services.VA),
		Digests: NewDigestHandler(s, digests),
		Emails:  NewEmailHandler(s, email.NewClient(s.Config, s.Logger)),
	}
}
