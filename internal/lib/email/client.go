// Package email renders HTML templates and sends them through Resend.
package email

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/deppfellow/opsboard/internal/config"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

const (
	fromName    = "Opsboard"
	fromAddress = "reports@resend.dev"
)

// sender is the part of the Resend emails service we use.
type sender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type Client struct {
	emails    sender
	templates fs.FS
	logger    *zerolog.Logger
}

func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	return &Client{
		emails:    resend.NewClient(cfg.Integration.ResendAPIKey).Emails,
		templates: defaultTemplates(),
		logger:    logger,
	}
}

// Render executes a template without sending it.
func (c *Client) Render(name Template, data any) (string, error) {
	return render(c.templates, name, data)
}

// SendEmail renders templateName with data and sends it to every recipient
// in one message.
func (c *Client) SendEmail(ctx context.Context, to []string, subject string, templateName Template, data any) error {
	html, err := c.Render(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", fromName, fromAddress),
		To:      to,
		Subject: subject,
		Html:    html,
	}

	sent, err := c.emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	c.logger.Debug().
		Str("template", string(templateName)).
		Str("email_id", sent.Id).
		Int("recipients", len(to)).
		Msg("email sent")

	return nil
}
