package stats

import (
	"slices"
	"strings"

	"github.com/deppfellow/opsboard/internal/model"
)

// VATotalsLabel names the totals row of the VA table.
const VATotalsLabel = "TOTAL"

// VAOptions lists delivery people left out of the VA table.
type VAOptions struct {
	Excluded []string
}

// VARow is one VA's completed and open site builds and website revisions.
type VARow struct {
	VA                     string  `json:"va"`
	SitesCompleted         int     `json:"sites_completed"`
	SitesAvgCompletion     Minutes `json:"sites_avg_completion"`
	OpenProjects           int     `json:"open_projects"`
	RevisionsCompleted     int     `json:"revisions_completed"`
	RevisionsAvgCompletion Minutes `json:"revisions_avg_completion"`
	OpenRevisions          int     `json:"open_revisions"`
}

// VAReport holds the VA rows and the TOTAL row.
type VAReport struct {
	Rows   []VARow `json:"rows"`
	Totals VARow   `json:"totals"`
}

// VAStats reports site delivery (from clients.delivery_person) and website
// revisions (from revision logs) per VA.
func VAStats(clients []model.Client, logs []model.RevisionLog, r model.DateRange, opts VAOptions) VAReport {
	sites := make(map[string][]model.Client)
	for _, c := range clients {
		if name := strings.TrimSpace(model.Deref(c.DeliveryPerson)); name != "" {
			sites[name] = append(sites[name], c)
		}
	}

	revisions := make(map[string][]model.RevisionLog)
	for _, l := range logs {
		if name := strings.TrimSpace(model.Deref(l.Assignee)); name != "" {
			revisions[name] = append(revisions[name], l)
		}
	}

	names := make([]string, 0, len(sites)+len(revisions))
	for n := range sites {
		names = append(names, n)
	}
	for n := range revisions {
		if _, ok := sites[n]; !ok {
			names = append(names, n)
		}
	}
	names = slices.DeleteFunc(names, func(n string) bool {
		return slices.Contains(opts.Excluded, n)
	})
	slices.Sort(names)

	report := VAReport{Rows: make([]VARow, 0, len(names))}
	for _, name := range names {
		report.Rows = append(report.Rows, vaRow(name, sites[name], revisions[name], r))
	}
	report.Totals = vaTotals(report.Rows)

	return report
}

func vaRow(name string, clients []model.Client, logs []model.RevisionLog, r model.DateRange) VARow {
	row := VARow{VA: name}

	var siteTimes []Minutes
	for _, c := range clients {
		if r.ContainsPtr(c.SiteDoneAt) {
			row.SitesCompleted++
			if m := MinutesBetween(c.StartedOn, c.SiteDoneAt); m > 0 {
				siteTimes = append(siteTimes, m)
			}
		}
		if c.StartedOn != nil && c.SiteDoneAt == nil {
			row.OpenProjects++
		}
	}

	var revisionTimes []Minutes
	for _, l := range logs {
		if r.ContainsPtr(l.FinishedAt) {
			row.RevisionsCompleted++
			if m := MinutesBetween(l.CreatedAt, l.FinishedAt); m > 0 {
				revisionTimes = append(revisionTimes, m)
			}
		}
		if l.FinishedAt == nil {
			row.OpenRevisions++
		}
	}

	row.SitesAvgCompletion = AverageMinutes(siteTimes)
	row.RevisionsAvgCompletion = AverageMinutes(revisionTimes)
	return row
}

// vaTotals averages the per-VA averages that were measurable. A VA whose
// completions all lack a start time contributes to the counts only.
func vaTotals(rows []VARow) VARow {
	t := VARow{VA: VATotalsLabel}

	var sites, revisions []Minutes
	for _, r := range rows {
		t.SitesCompleted += r.SitesCompleted
		t.OpenProjects += r.OpenProjects
		t.RevisionsCompleted += r.RevisionsCompleted
		t.OpenRevisions += r.OpenRevisions

		if r.SitesAvgCompletion > 0 {
			sites = append(sites, r.SitesAvgCompletion)
		}
		if r.RevisionsAvgCompletion > 0 {
			revisions = append(revisions, r.RevisionsAvgCompletion)
		}
	}

	t.SitesAvgCompletion = AverageMinutes(sites)
	t.RevisionsAvgCompletion = AverageMinutes(revisions)
	return t
}
