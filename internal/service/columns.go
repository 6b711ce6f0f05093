package service

import (
	"github.com/deppfellow/opsboard/internal/model"
	"github.com/deppfellow/opsboard/internal/stats"
	"github.com/deppfellow/opsboard/internal/table"
)

// ClientColumns is the clients table. Text weights rank search hits: a
// match on the company counts most, one on the website least.
var ClientColumns = []table.Column[model.Client]{
	{Key: "company_name", Label: "Company", Type: table.Text, Weight: 3, Value: func(c model.Client) any { return table.Str(c.CompanyName) }},
	{Key: "name", Label: "Name", Type: table.Text, Weight: 2, Value: func(c model.Client) any { return table.Str(c.Name) }},
	{Key: "status", Label: "Status", Type: table.Text, Weight: 1.5, Value: func(c model.Client) any { return table.Str(c.Status) }},
	{Key: "csm_name", Label: "CSM", Type: table.Text, Weight: 1.25, Value: func(c model.Client) any { return table.Str(c.CSMName) }},
	{Key: "referrer", Label: "Referrer", Type: table.Text, Value: func(c model.Client) any { return table.Str(c.Referrer) }},
	{Key: "email", Label: "Email", Type: table.Text, Value: func(c model.Client) any { return table.Str(c.Email) }},
	{Key: "phone", Label: "Phone", Type: table.Text, Weight: 0.75, Value: func(c model.Client) any { return table.Str(c.Phone) }},
	{Key: "website", Label: "Website", Type: table.Text, Weight: 0.5, Value: func(c model.Client) any { return table.Str(c.Website) }},
	{Key: "started_on", Label: "Started", Type: table.Date, Value: func(c model.Client) any { return table.Time(c.StartedOn) }},
	{Key: "last_meaningful_activity_time", Label: "Last Activity", Type: table.Timestamp, Description: "Last meaningful activity in the product", Value: func(c model.Client) any { return table.Time(c.LastMeaningfulActivityTime) }},
	{Key: "total_usage", Label: "Usage", Type: table.Number, Value: func(c model.Client) any { return table.Float(c.TotalUsage) }},
	{Key: "inbound_calls", Label: "Inbound Calls", Type: table.Integer, Value: func(c model.Client) any { return table.Float(c.InboundCalls) }},
	{Key: "new_reviews", Label: "New Reviews", Type: table.Integer, Value: func(c model.Client) any { return table.Float(c.NewReviews) }},
	{Key: "new_website_leads", Label: "New Leads", Type: table.Integer, Value: func(c model.Client) any { return table.Float(c.NewWebsiteLeads) }},
	{Key: "churned_on", Label: "Churned", Type: table.Date, Value: func(c model.Client) any { return table.Time(c.ChurnedOn) }},
}

var OnboardingColumns = []table.Column[stats.OnboardingRow]{
	{Key: "csm", Label: "CSM", Type: table.Text, Value: func(r stats.OnboardingRow) any { return r.CSM }},
	{Key: "new_clients", Label: "New Clients", Type: table.Integer, Value: func(r stats.OnboardingRow) any { return r.NewClients }},
	{Key: "forms_missing", Label: "Forms Missing", Type: table.Integer, Value: func(r stats.OnboardingRow) any { return r.FormsMissing }},
	{Key: "form_complete_pct", Label: "Form Complete", Type: table.Percentage, Value: func(r stats.OnboardingRow) any { return r.FormCompletePct }},
	{Key: "form_complete_time_avg", Label: "Avg Time to Form", Type: table.Duration, Value: func(r stats.OnboardingRow) any { return r.FormCompleteTimeAvg }},
	{Key: "onboard_call_show", Label: "Onboard Call Show", Type: table.Integer, Value: func(r stats.OnboardingRow) any { return r.OnboardCallShow }},
	{Key: "onboard_call_show_pct", Label: "Onboard Call Show %", Type: table.Percentage, Value: func(r stats.OnboardingRow) any { return r.OnboardCallShowPct }},
	{Key: "time_to_onboard_call_avg", Label: "Avg Time to Onboard Call", Type: table.Duration, Value: func(r stats.OnboardingRow) any { return r.TimeToOnboardCallAvg }},
	{Key: "launch_call_show", Label: "Launch Call Show", Type: table.Integer, Value: func(r stats.OnboardingRow) any { return r.LaunchCallShow }},
	{Key: "launch_call_show_pct", Label: "Launch Call Show %", Type: table.Percentage, Value: func(r stats.OnboardingRow) any { return r.LaunchCallShowPct }},
	{Key: "time_to_launch_call_avg", Label: "Avg Time to Launch Call", Type: table.Duration, Value: func(r stats.OnboardingRow) any { return r.TimeToLaunchCallAvg }},
	{Key: "ttfv", Label: "TTFV", Type: table.Duration, Description: "Time to first value", Value: func(r stats.OnboardingRow) any { return r.TTFV }},
	{Key: "tta", Label: "TTA", Type: table.Duration, Description: "Time to activation (100% usage)", Value: func(r stats.OnboardingRow) any { return r.TTA }},
	{Key: "activated_under_threshold", Label: "Activated", Type: table.Integer, Description: "Reached 100% usage within the activation threshold", Value: func(r stats.OnboardingRow) any { return r.Activated }},
	{Key: "activated_under_threshold_pct", Label: "Activated %", Type: table.Percentage, Value: func(r stats.OnboardingRow) any { return r.ActivatedPct }},
}

var RetentionColumns = []table.Column[stats.RetentionRow]{
	{Key: "csm", Label: "CSM", Type: table.Text, Value: func(r stats.RetentionRow) any { return r.CSM }},
	{Key: "clients_managing", Label: "Clients Managing", Type: table.Integer, Description: "Clients with status Active", Value: func(r stats.RetentionRow) any { return r.ClientsManaging }},
	{Key: "inactive_clients_pct", Label: "Inactive Clients", Type: table.Percentage, Value: func(r stats.RetentionRow) any { return r.InactiveClientsPct }},
	{Key: "avg_monthly_usage", Label: "Avg Monthly Usage", Type: table.Number, Value: func(r stats.RetentionRow) any { return r.AvgMonthlyUsage }},
	{Key: "avg_monthly_reviews", Label: "Avg Monthly Reviews", Type: table.Number, Value: func(r stats.RetentionRow) any { return r.AvgMonthlyReviews }},
	{Key: "avg_monthly_new_leads", Label: "Avg Monthly New Leads", Type: table.Number, Value: func(r stats.RetentionRow) any { return r.AvgMonthlyNewLeads }},
	{Key: "cc_declined", Label: "CC Declined", Type: table.Integer, Value: func(r stats.RetentionRow) any { return r.CCDeclined }},
	{Key: "cc_declined_rate", Label: "CC Declined Rate", Type: table.Percentage, Value: func(r stats.RetentionRow) any { return r.CCDeclinedRate }},
	{Key: "churned", Label: "Churned", Type: table.Integer, Value: func(r stats.RetentionRow) any { return r.Churned }},
	{Key: "churn_rate", Label: "Churn Rate", Type: table.Percentage, Value: func(r stats.RetentionRow) any { return r.ChurnRate }},
}

var SetterColumns = []table.Column[stats.SetterRow]{
	{Key: "setter", Label: "Setter", Type: table.Text, Value: func(r stats.SetterRow) any { return r.Setter }},
	{Key: "appts_booked", Label: "Appts Booked", Type: table.Integer, Value: func(r stats.SetterRow) any { return r.ApptsBooked }},
	{Key: "appts_showed", Label: "Appts Showed", Type: table.Integer, Value: func(r stats.SetterRow) any { return r.ApptsShowed }},
	{Key: "show_rate", Label: "Show Rate", Type: table.Percentage, Value: func(r stats.SetterRow) any { return r.ShowRate }},
	{Key: "appts_closed", Label: "Appts Closed", Type: table.Integer, Value: func(r stats.SetterRow) any { return r.ApptsClosed }},
	{Key: "close_rate", Label: "Close Rate", Type: table.Percentage, Value: func(r stats.SetterRow) any { return r.CloseRate }},
}

var CloserColumns = []table.Column[stats.CloserRow]{
	{Key: "closer", Label: "Closer", Type: table.Text, Value: func(r stats.CloserRow) any { return r.Closer }},
	{Key: "appts_taken", Label: "Appts Taken", Type: table.Integer, Value: func(r stats.CloserRow) any { return r.ApptsTaken }},
	{Key: "total_appts", Label: "Total Appts", Type: table.Integer, Value: func(r stats.CloserRow) any { return r.TotalAppts }},
	{Key: "show_rate", Label: "Show Rate", Type: table.Percentage, Value: func(r stats.CloserRow) any { return r.ShowRate }},
	{Key: "closed_paid", Label: "Closed Paid", Type: table.Integer, Value: func(r stats.CloserRow) any { return r.ClosedPaid }},
	{Key: "closed_trial", Label: "Closed Trial", Type: table.Integer, Value: func(r stats.CloserRow) any { return r.ClosedTrial }},
	{Key: "close_rate", Label: "Close Rate", Type: table.Percentage, Value: func(r stats.CloserRow) any { return r.CloseRate }},
	{Key: "upgrades", Label: "Upgrades", Type: table.Integer, Value: func(r stats.CloserRow) any { return r.Upgrades }},
	{Key: "upgrade_rate", Label: "Upgrade Rate", Type: table.Percentage, Value: func(r stats.CloserRow) any { return r.UpgradeRate }},
	{Key: "revenue_closed", Label: "Revenue Closed", Type: table.Number, Value: func(r stats.CloserRow) any { return r.RevenueClosed.InexactFloat64() }},
}

var VAColumns = []table.Column[stats.VARow]{
	{Key: "va", Label: "VA", Type: table.Text, Value: func(r stats.VARow) any { return r.VA }},
	{Key: "sites_completed", Label: "Sites Completed", Type: table.Integer, Value: func(r stats.VARow) any { return r.SitesCompleted }},
	{Key: "sites_avg_completion", Label: "Avg Site Completion", Type: table.Duration, Value: func(r stats.VARow) any { return r.SitesAvgCompletion }},
	{Key: "open_projects", Label: "Open Projects", Type: table.Integer, Value: func(r stats.VARow) any { return r.OpenProjects }},
	{Key: "revisions_completed", Label: "Revisions Completed", Type: table.Integer, Value: func(r stats.VARow) any { return r.RevisionsCompleted }},
	{Key: "revisions_avg_completion", Label: "Avg Revision Completion", Type: table.Duration, Value: func(r stats.VARow) any { return r.RevisionsAvgCompletion }},
	{Key: "open_revisions", Label: "Open Revisions", Type: table.Integer, Value: func(r stats.VARow) any { return r.OpenRevisions }},
}

// StatsTable is one stats table as served to the dashboard.
type StatsTable[T any] struct {
	Title   string             `json:"title"`
	Columns []table.ColumnMeta `json:"columns"`
	Rows    []T                `json:"rows"`
	Totals  T                  `json:"totals"`
}

func newStatsTable[T any](title string, cols []table.Column[T], rows []T, totals T, q table.Query) StatsTable[T] {
	return StatsTable[T]{
		Title:   title,
		Columns: table.Metas(cols),
		Rows:    table.Sort(rows, cols, q.SortKey, q.Direction),
		Totals:  totals,
	}
}
