package email

import (
	"fmt"
	"time"

	"github.com/deppfellow/opsboard/internal/model"
	"github.com/deppfellow/opsboard/internal/stats"
	"github.com/shopspring/decimal"
)

// PreviewData is sample data per template for the preview endpoint.
var PreviewData = map[Template]any{
	TemplateStatsDigest: previewDigest(),
}

// Preview renders name with its sample data.
func (c *Client) Preview(name Template) (string, error) {
	data, ok := PreviewData[name]
	if !ok {
		return "", fmt.Errorf("no preview data for template %s", name)
	}
	return c.Render(name, data)
}

func previewDigest() *StatsDigest {
	start := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)

	return &StatsDigest{
		Range:       model.NewDateRange(start, start.AddDate(0, 0, 6)),
		GeneratedAt: start.AddDate(0, 0, 7).Add(8 * time.Hour),
		CSM: stats.CSMReport{
			Onboarding: []stats.OnboardingRow{
				{CSM: "Ryan Grant", NewClients: 4, FormsMissing: 1, FormCompletePct: 75, OnboardCallShow: 3, OnboardCallShowPct: 75, TTFV: 2880},
			},
			OnboardingTotals: stats.OnboardingRow{CSM: stats.TotalsLabel, NewClients: 4, FormsMissing: 1, FormCompletePct: 75, OnboardCallShow: 3, OnboardCallShowPct: 75, TTFV: 2880},
			Retention: []stats.RetentionRow{
				{CSM: "Ryan Grant", ClientsManaging: 32, InactiveClientsPct: 12.5, Churned: 1, ChurnRate: 3.13},
			},
			RetentionTotals: stats.RetentionRow{CSM: stats.TotalsLabel, ClientsManaging: 32, InactiveClientsPct: 12.5, Churned: 1, ChurnRate: 3.13},
		},
		Sales: stats.SalesReport{
			Setters: []stats.SetterRow{
				{Setter: "Juan Parada", ApptsBooked: 12, ApptsShowed: 9, ShowRate: 75, ApptsClosed: 3, CloseRate: 33.33},
			},
			SetterTotals: stats.SetterRow{Setter: stats.TotalsLabel, ApptsBooked: 12, ApptsShowed: 9, ShowRate: 75, ApptsClosed: 3, CloseRate: 33.33},
			Closers: []stats.CloserRow{
				{Closer: "Dale Kelley", ApptsTaken: 9, TotalAppts: 12, ShowRate: 75, ClosedPaid: 3, CloseRate: 33.33, RevenueClosed: decimal.RequireFromString("891")},
			},
			CloserTotals: stats.CloserRow{Closer: stats.TotalsLabel, ApptsTaken: 9, TotalAppts: 12, ShowRate: 75, ClosedPaid: 3, CloseRate: 33.33, RevenueClosed: decimal.RequireFromString("891")},
		},
		VA: stats.VAReport{
			Rows: []stats.VARow{
				{VA: "Maria", SitesCompleted: 2, SitesAvgCompletion: 7200, OpenProjects: 1, RevisionsCompleted: 5, RevisionsAvgCompletion: 95},
			},
			Totals: stats.VARow{VA: stats.VATotalsLabel, SitesCompleted: 2, SitesAvgCompletion: 7200, OpenProjects: 1, RevisionsCompleted: 5, RevisionsAvgCompletion: 95},
		},
	}
}
