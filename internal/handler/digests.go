package handler

import (
	"context"

	"github.com/deppfellow/opsboard/internal/errs"
	"github.com/deppfellow/opsboard/internal/middleware"
	"github.com/deppfellow/opsboard/internal/server"
	"github.com/deppfellow/opsboard/internal/service"
	"github.com/deppfellow/opsboard/internal/validation"
	"github.com/labstack/echo/v4"
)

type DigestEnqueuer interface {
	Enqueue(ctx context.Context, req *validation.DigestRequest) (*service.DigestEnqueued, error)
}

type DigestHandler struct {
	Handler
	digests DigestEnqueuer
}

// NewDigestHandler accepts a nil enqueuer when the job service is disabled;
// requests then fail with 503.
func NewDigestHandler(s *server.Server, digests DigestEnqueuer) *DigestHandler {
	return &DigestHandler{
		Handler: NewHandler(s),
		digests: digests,
	}
}

func NewDigestRequest() *validation.DigestRequest {
	return &validation.DigestRequest{}
}

func (h *DigestHandler) CreateDigest(c echo.Context, req *validation.DigestRequest) (*service.DigestEnqueued, error) {
	if h.digests == nil {
		return nil, errs.NewDataSourceError("background jobs are not available")
	}

	queued, err := h.digests.Enqueue(c.Request().Context(), req)
	if err != nil {
		return nil, err
	}

	middleware.GetLogger(c).Info().
		Str("task_id", queued.TaskID).
		Int("recipients", len(queued.Recipients)).
		Msg("stats digest enqueued")

	return queued, nil
}
