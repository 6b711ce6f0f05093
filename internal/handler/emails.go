package handler

import (
	"github.com/deppfellow/opsboard/internal/lib/email"
	"github.com/deppfellow/opsboard/internal/server"
	"github.com/deppfellow/opsboard/internal/validation"
	"github.com/labstack/echo/v4"
)

type EmailPreviewer interface {
	Preview(name email.Template) (string, error)
}

// EmailHandler renders email templates with sample data. The router only
// mounts it outside production.
type EmailHandler struct {
	Handler
	emails EmailPreviewer
}

func NewEmailHandler(s *server.Server, emails EmailPreviewer) *EmailHandler {
	return &EmailHandler{
		Handler: NewHandler(s),
		emails:  emails,
	}
}

func NewEmailPreviewRequest() *validation.EmailPreviewRequest {
	return &validation.EmailPreviewRequest{}
}

func (h *EmailHandler) PreviewEmail(c echo.Context, req *validation.EmailPreviewRequest) (string, error) {
	return h.emails.Preview(email.Template(req.Template))
}
