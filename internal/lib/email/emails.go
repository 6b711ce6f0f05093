package email

import (
	"context"
	"time"

	"github.com/deppfellow/opsboard/internal/model"
	"github.com/deppfellow/opsboard/internal/stats"
)

// StatsDigest is the data behind the stats_digest template.
type StatsDigest struct {
	Range       model.DateRange
	GeneratedAt time.Time
	CSM         stats.CSMReport
	Sales       stats.SalesReport
	VA          stats.VAReport
}

func (d *StatsDigest) Subject() string {
	return "Ops digest " + d.Range.StartDate() + " to " + d.Range.EndDate()
}

func (c *Client) SendStatsDigest(ctx context.Context, to []string, digest *StatsDigest) error {
	return c.SendEmail(ctx, to, digest.Subject(), TemplateStatsDigest, digest)
}
