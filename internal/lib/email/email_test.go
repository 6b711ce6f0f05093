package email

import (
	"context"
	"errors"
	"os"
	"testing"
	"testing/fstest"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []*resend.SendEmailRequest
	err  error
}

func (f *fakeSender) SendWithContext(_ context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, params)
	return &resend.SendEmailResponse{Id: "email-1"}, nil
}

func newTestClient(fsys fstest.MapFS, s sender) *Client {
	logger := zerolog.Nop()
	return &Client{emails: s, templates: fsys, logger: &logger}
}

func TestSendStatsDigest(t *testing.T) {
	fsys := fstest.MapFS{
		"stats_digest.html": {Data: []byte(`<p>{{.Range}}</p>{{range .Sales.Setters}}<b>{{.Setter}} {{pct .ShowRate}}</b>{{end}}`)},
	}
	s := &fakeSender{}
	c := newTestClient(fsys, s)

	digest := previewDigest()
	require.NoError(t, c.SendStatsDigest(context.Background(), []string{"ops@example.com", "lead@example.com"}, digest))

	require.Len(t, s.sent, 1)
	sent := s.sent[0]
	assert.Equal(t, []string{"ops@example.com", "lead@example.com"}, sent.To)
	assert.Equal(t, "Ops digest 2024-03-04 to 2024-03-10", sent.Subject)
	assert.Equal(t, "<p>2024-03-04..2024-03-10</p><b>Juan Parada 75.00%</b>", sent.Html)
	assert.Contains(t, sent.From, fromAddress)
}

func TestSendEmailErrors(t *testing.T) {
	t.Run("missing template", func(t *testing.T) {
		c := newTestClient(fstest.MapFS{}, &fakeSender{})
		err := c.SendEmail(context.Background(), []string{"a@example.com"}, "s", TemplateStatsDigest, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse email template stats_digest")
	})

	t.Run("provider failure", func(t *testing.T) {
		fsys := fstest.MapFS{"stats_digest.html": {Data: []byte("hi")}}
		c := newTestClient(fsys, &fakeSender{err: errors.New("rate limited")})
		err := c.SendEmail(context.Background(), []string{"a@example.com"}, "s", TemplateStatsDigest, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rate limited")
	})
}

func TestPreviewRendersShippedTemplates(t *testing.T) {
	c := newTestClient(nil, &fakeSender{})
	c.templates = os.DirFS("../../../templates/emails")

	for _, name := range Templates {
		t.Run(string(name), func(t *testing.T) {
			assert.True(t, name.Valid())

			html, err := c.Preview(name)
			require.NoError(t, err)
			assert.Contains(t, html, "Dale Kelley")
			assert.Contains(t, html, "$891.00")
			assert.Contains(t, html, "5d 0h 0m")
		})
	}

	assert.False(t, Template("welcome").Valid())
}
