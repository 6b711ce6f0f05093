package stats

import (
	"strings"
	"time"

	"github.com/deppfellow/opsboard/internal/model"
)

const (
	// TotalsLabel names the totals row of the CSM and sales tables.
	TotalsLabel = "Totals"

	statusActive     = "Active"
	statusCCDeclined = "CC Declined"
)

// CSMOptions holds the thresholds used by CSMStats, in days.
type CSMOptions struct {
	ActivationThresholdDays int
	InactivityWindowDays    int
}

// OnboardingRow is one CSM's onboarding funnel for clients started in the
// range. Durations are averages over the clients that reached each step.
type OnboardingRow struct {
	CSM                  string  `json:"csm"`
	NewClients           int     `json:"new_clients"`
	FormsMissing         int     `json:"forms_missing"`
	FormCompletePct      float64 `json:"form_complete_pct"`
	FormCompleteTimeAvg  Minutes `json:"form_complete_time_avg"`
	OnboardCallShow      int     `json:"onboard_call_show"`
	OnboardCallShowPct   float64 `json:"onboard_call_show_pct"`
	TimeToOnboardCallAvg Minutes `json:"time_to_onboard_call_avg"`
	LaunchCallShow       int     `json:"launch_call_show"`
	LaunchCallShowPct    float64 `json:"launch_call_show_pct"`
	TimeToLaunchCallAvg  Minutes `json:"time_to_launch_call_avg"`
	TTFV                 Minutes `json:"ttfv"`
	TTA                  Minutes `json:"tta"`
	Activated            int     `json:"activated_under_threshold"`
	ActivatedPct         float64 `json:"activated_under_threshold_pct"`
}

// RetentionRow is one CSM's book of business: size, inactivity, monthly
// averages, declined cards and churn.
type RetentionRow struct {
	CSM                string  `json:"csm"`
	ClientsManaging    int     `json:"clients_managing"`
	InactiveClientsPct float64 `json:"inactive_clients_pct"`
	AvgMonthlyUsage    float64 `json:"avg_monthly_usage"`
	AvgMonthlyReviews  float64 `json:"avg_monthly_reviews"`
	AvgMonthlyNewLeads float64 `json:"avg_monthly_new_leads"`
	CCDeclined         int     `json:"cc_declined"`
	CCDeclinedRate     float64 `json:"cc_declined_rate"`
	Churned            int     `json:"churned"`
	ChurnRate          float64 `json:"churn_rate"`
}

// CSMReport holds both CSM tables with their totals rows.
type CSMReport struct {
	Onboarding       []OnboardingRow `json:"onboarding"`
	OnboardingTotals OnboardingRow   `json:"onboarding_totals"`
	Retention        []RetentionRow  `json:"retention"`
	RetentionTotals  RetentionRow    `json:"retention_totals"`
}

// CSMStats builds one onboarding and one retention row per roster name, in
// roster order, plus a totals row for each table.
//
// Onboarding only looks at clients whose started_on falls in r. Retention
// looks at every client of the CSM; churn is counted inside r and
// inactivity is measured against now.
func CSMStats(clients []model.Client, roster []string, r model.DateRange, opts CSMOptions, now time.Time) CSMReport {
	byCSM := make(map[string][]model.Client, len(roster))
	for _, c := range clients {
		if c.CSMName == nil {
			continue
		}
		byCSM[*c.CSMName] = append(byCSM[*c.CSMName], c)
	}

	report := CSMReport{
		Onboarding: make([]OnboardingRow, 0, len(roster)),
		Retention:  make([]RetentionRow, 0, len(roster)),
	}

	for _, name := range roster {
		own := byCSM[name]

		started := make([]model.Client, 0, len(own))
		for _, c := range own {
			if r.ContainsPtr(c.StartedOn) {
				started = append(started, c)
			}
		}

		report.Onboarding = append(report.Onboarding, onboardingRow(name, started, opts))
		report.Retention = append(report.Retention, retentionRow(name, own, r, opts, now))
	}

	report.OnboardingTotals = onboardingTotals(report.Onboarding)
	report.RetentionTotals = retentionTotals(report.Retention)

	return report
}

func onboardingRow(csm string, clients []model.Client, opts CSMOptions) OnboardingRow {
	var (
		formTimes, onboardTimes, launchTimes []Minutes
		ttfv, tta                            []float64
		activated                            int
	)

	threshold := float64(opts.ActivationThresholdDays * minutesPerDay)

	for _, c := range clients {
		if c.FormCompleteTime != nil {
			formTimes = append(formTimes, MinutesBetween(c.StartedOn, c.FormCompleteTime))
		}
		if c.OnboardingCallTime != nil {
			onboardTimes = append(onboardTimes, MinutesBetween(c.StartedOn, c.OnboardingCallTime))
		}
		if c.LaunchCallTime != nil {
			launchTimes = append(launchTimes, MinutesBetween(c.StartedOn, c.LaunchCallTime))
		}
		if v := valueOr0(c.MinutesToFirstValue); v > 0 {
			ttfv = append(ttfv, v)
		}
		if v := valueOr0(c.MinutesTo100Usage); v > 0 {
			tta = append(tta, v)
		}
		if c.MinutesTo100Usage != nil && *c.MinutesTo100Usage <= threshold {
			activated++
		}
	}

	newClients := len(clients)

	return OnboardingRow{
		CSM:                  csm,
		NewClients:           newClients,
		FormsMissing:         newClients - len(formTimes),
		FormCompletePct:      Percent(len(formTimes), newClients),
		FormCompleteTimeAvg:  AverageMinutes(formTimes),
		OnboardCallShow:      len(onboardTimes),
		OnboardCallShowPct:   Percent(len(onboardTimes), newClients),
		TimeToOnboardCallAvg: AverageMinutes(onboardTimes),
		LaunchCallShow:       len(launchTimes),
		LaunchCallShowPct:    Percent(len(launchTimes), newClients),
		TimeToLaunchCallAvg:  AverageMinutes(launchTimes),
		TTFV:                 AverageMinutes(ttfv),
		TTA:                  AverageMinutes(tta),
		Activated:            activated,
		ActivatedPct:         Percent(activated, newClients),
	}
}

func onboardingTotals(rows []OnboardingRow) OnboardingRow {
	t := OnboardingRow{CSM: TotalsLabel}

	formPct := make([]Weighted, 0, len(rows))
	var formTime, onboardTime, launchTime, ttfv, tta []WeightedMinutes

	for _, r := range rows {
		t.NewClients += r.NewClients
		t.FormsMissing += r.FormsMissing
		t.OnboardCallShow += r.OnboardCallShow
		t.LaunchCallShow += r.LaunchCallShow
		t.Activated += r.Activated

		formPct = append(formPct, Weighted{Value: r.FormCompletePct, Weight: r.NewClients})
		formTime = append(formTime, WeightedMinutes{Minutes: r.FormCompleteTimeAvg, Weight: r.NewClients})
		onboardTime = append(onboardTime, WeightedMinutes{Minutes: r.TimeToOnboardCallAvg, Weight: r.OnboardCallShow})
		launchTime = append(launchTime, WeightedMinutes{Minutes: r.TimeToLaunchCallAvg, Weight: r.LaunchCallShow})
		ttfv = append(ttfv, WeightedMinutes{Minutes: r.TTFV, Weight: r.NewClients})
		tta = append(tta, WeightedMinutes{Minutes: r.TTA, Weight: r.NewClients})
	}

	t.FormCompletePct = WeightedAverage(formPct)
	t.OnboardCallShowPct = Percent(t.OnboardCallShow, t.NewClients)
	t.LaunchCallShowPct = Percent(t.LaunchCallShow, t.NewClients)
	t.ActivatedPct = Percent(t.Activated, t.NewClients)
	t.FormCompleteTimeAvg = WeightedAverageMinutes(formTime)
	t.TimeToOnboardCallAvg = WeightedAverageMinutes(onboardTime)
	t.TimeToLaunchCallAvg = WeightedAverageMinutes(launchTime)
	t.TTFV = WeightedAverageMinutes(ttfv)
	t.TTA = WeightedAverageMinutes(tta)

	return t
}

func retentionRow(csm string, clients []model.Client, r model.DateRange, opts CSMOptions, now time.Time) RetentionRow {
	cutoff := now.AddDate(0, 0, -opts.InactivityWindowDays)

	var (
		managing, inactive, declined, churned int
		usage, reviews, leads                 float64
	)

	for _, c := range clients {
		status := model.Deref(c.Status)

		if strings.EqualFold(status, statusActive) {
			managing++
			if c.LastMeaningfulActivityTime == nil || c.LastMeaningfulActivityTime.Before(cutoff) {
				inactive++
			}
		}
		if strings.EqualFold(status, statusCCDeclined) {
			declined++
		}
		if r.ContainsPtr(c.ChurnedOn) {
			churned++
		}

		usage += valueOr0(c.TotalUsage)
		reviews += valueOr0(c.NewReviews)
		leads += valueOr0(c.NewWebsiteLeads)
	}

	return RetentionRow{
		CSM:                csm,
		ClientsManaging:    managing,
		InactiveClientsPct: Percent(inactive, managing),
		AvgMonthlyUsage:    Ratio(usage, managing),
		AvgMonthlyReviews:  Ratio(reviews, managing),
		AvgMonthlyNewLeads: Ratio(leads, managing),
		CCDeclined:         declined,
		CCDeclinedRate:     Percent(declined, managing),
		Churned:            churned,
		ChurnRate:          Percent(churned, managing),
	}
}

func retentionTotals(rows []RetentionRow) RetentionRow {
	t := RetentionRow{CSM: TotalsLabel}

	var inactive, usage, reviews, leads []Weighted
	for _, r := range rows {
		t.ClientsManaging += r.ClientsManaging
		t.CCDeclined += r.CCDeclined
		t.Churned += r.Churned

		inactive = append(inactive, Weighted{Value: r.InactiveClientsPct, Weight: r.ClientsManaging})
		usage = append(usage, Weighted{Value: r.AvgMonthlyUsage, Weight: r.ClientsManaging})
		reviews = append(reviews, Weighted{Value: r.AvgMonthlyReviews, Weight: r.ClientsManaging})
		leads = append(leads, Weighted{Value: r.AvgMonthlyNewLeads, Weight: r.ClientsManaging})
	}

	t.InactiveClientsPct = WeightedAverage(inactive)
	t.AvgMonthlyUsage = WeightedAverage(usage)
	t.AvgMonthlyReviews = WeightedAverage(reviews)
	t.AvgMonthlyNewLeads = WeightedAverage(leads)
	t.CCDeclinedRate = Percent(t.CCDeclined, t.ClientsManaging)
	t.ChurnRate = Percent(t.Churned, t.ClientsManaging)

	return t
}
