package stats

import (
	"slices"
	"strings"

	"github.com/deppfellow/opsboard/internal/model"
	"github.com/shopspring/decimal"
)

const (
	statusShowed = "showed"
	statusWon    = "won"
	statusTrial  = "trial"
)

// SalesOptions restricts the sales tables. Empty allow-lists keep everyone.
type SalesOptions struct {
	Setters             []string
	Closers             []string
	ExcludedShowClosers []string
}

// SetterRow counts the appointments a setter booked in the range and how
// many of them showed and closed.
type SetterRow struct {
	Setter      string  `json:"setter"`
	ApptsBooked int     `json:"appts_booked"`
	ApptsShowed int     `json:"appts_showed"`
	ShowRate    float64 `json:"show_rate"`
	ApptsClosed int     `json:"appts_closed"`
	CloseRate   float64 `json:"close_rate"`
}

// CloserRow counts a closer's appointments and the deals they closed or
// upgraded in the range. RevenueClosed is the sum of won opportunity values.
type CloserRow struct {
	Closer        string          `json:"closer"`
	ApptsTaken    int             `json:"appts_taken"`
	TotalAppts    int             `json:"total_appts"`
	ShowRate      float64         `json:"show_rate"`
	ClosedPaid    int             `json:"closed_paid"`
	ClosedTrial   int             `json:"closed_trial"`
	CloseRate     float64         `json:"close_rate"`
	Upgrades      int             `json:"upgrades"`
	UpgradeRate   float64         `json:"upgrade_rate"`
	RevenueClosed decimal.Decimal `json:"revenue_closed"`
}

// SalesReport holds the setter and closer tables with their totals rows.
type SalesReport struct {
	Setters      []SetterRow `json:"setters"`
	SetterTotals SetterRow   `json:"setter_totals"`
	Closers      []CloserRow `json:"closers"`
	CloserTotals CloserRow   `json:"closer_totals"`
}

type dealKey struct {
	company string
	name    string
}

// SalesStats builds setter and closer rows for appointments dated in r and
// opportunities updated in r.
func SalesStats(opps []model.Opportunity, appts []model.Appointment, r model.DateRange, opts SalesOptions) SalesReport {
	inRange := make([]model.Appointment, 0, len(appts))
	for _, a := range appts {
		if r.ContainsPtr(a.AppointmentDate) {
			inRange = append(inRange, a)
		}
	}

	won := make(map[dealKey]struct{})
	for _, o := range opps {
		if statusIs(o.Status, statusWon) {
			won[dealKey{model.Deref(o.Company), model.Deref(o.Name)}] = struct{}{}
		}
	}

	setters := rosterFrom(appts, func(a model.Appointment) *string { return a.Setter }, opts.Setters)
	closers := rosterFrom(appts, func(a model.Appointment) *string { return a.Closer }, opts.Closers)

	report := SalesReport{
		Setters: make([]SetterRow, 0, len(setters)),
		Closers: make([]CloserRow, 0, len(closers)),
	}

	for _, name := range setters {
		report.Setters = append(report.Setters, setterRow(name, inRange, won, opts))
	}
	for _, name := range closers {
		report.Closers = append(report.Closers, closerRow(name, opps, inRange, r))
	}

	report.SetterTotals = setterTotals(report.Setters)
	report.CloserTotals = closerTotals(report.Closers, inRange, closers)

	return report
}

func setterRow(name string, appts []model.Appointment, won map[dealKey]struct{}, opts SalesOptions) SetterRow {
	row := SetterRow{Setter: name}

	for _, a := range appts {
		setter := model.Deref(a.Setter)

		if setter == name {
			row.ApptsBooked++
			if _, ok := won[dealKey{model.Deref(a.Company), model.Deref(a.Name)}]; ok {
				row.ApptsClosed++
			}
		}

		if strings.Contains(setter, name) &&
			statusIs(a.Status, statusShowed) &&
			!slices.Contains(opts.ExcludedShowClosers, model.Deref(a.Closer)) {
			row.ApptsShowed++
		}
	}

	row.ShowRate = Percent(row.ApptsShowed, row.ApptsBooked)
	row.CloseRate = Percent(row.ApptsClosed, row.ApptsShowed)
	return row
}

func closerRow(name string, opps []model.Opportunity, appts []model.Appointment, r model.DateRange) CloserRow {
	row := CloserRow{Closer: name, RevenueClosed: decimal.Zero}

	for _, a := range appts {
		if model.Deref(a.Closer) != name {
			continue
		}
		row.TotalAppts++
		if statusIs(a.Status, statusShowed) {
			row.ApptsTaken++
		}
	}

	trimmed := strings.TrimSpace(name)
	for _, o := range opps {
		if !r.ContainsPtr(o.UpdatedAt) {
			continue
		}
		closer := model.Deref(o.Closer)

		if closer == name {
			switch {
			case statusIs(o.Status, statusWon):
				row.ClosedPaid++
				row.RevenueClosed = row.RevenueClosed.Add(ParseRevenue(model.Deref(o.MonthlyRevenue)))
			case statusIs(o.Status, statusTrial):
				row.ClosedTrial++
			}
		}

		if o.Upgrade && strings.TrimSpace(closer) == trimmed {
			row.Upgrades++
		}
	}

	row.ShowRate = Percent(row.ApptsTaken, row.TotalAppts)
	row.CloseRate = Percent(row.ClosedPaid, row.ApptsTaken)
	row.UpgradeRate = Percent(row.Upgrades, row.ClosedPaid)
	return row
}

func setterTotals(rows []SetterRow) SetterRow {
	t := SetterRow{Setter: TotalsLabel}
	for _, r := range rows {
		t.ApptsBooked += r.ApptsBooked
		t.ApptsShowed += r.ApptsShowed
		t.ApptsClosed += r.ApptsClosed
	}
	t.ShowRate = Percent(t.ApptsShowed, t.ApptsBooked)
	t.CloseRate = Percent(t.ApptsClosed, t.ApptsShowed)
	return t
}

// closerTotals recomputes the show rate over every in-range appointment
// held by one of the listed closers.
func closerTotals(rows []CloserRow, appts []model.Appointment, closers []string) CloserRow {
	t := CloserRow{Closer: TotalsLabel, RevenueClosed: decimal.Zero}
	for _, r := range rows {
		t.ApptsTaken += r.ApptsTaken
		t.ClosedPaid += r.ClosedPaid
		t.ClosedTrial += r.ClosedTrial
		t.Upgrades += r.Upgrades
		t.RevenueClosed = t.RevenueClosed.Add(r.RevenueClosed)
	}

	for _, a := range appts {
		if slices.Contains(closers, model.Deref(a.Closer)) {
			t.TotalAppts++
		}
	}

	t.ShowRate = Percent(t.ApptsTaken, t.TotalAppts)
	t.CloseRate = Percent(t.ClosedPaid, t.ApptsTaken)
	t.UpgradeRate = Percent(t.Upgrades, t.ClosedPaid)
	return t
}

// rosterFrom returns the sorted distinct non-blank names picked from appts,
// limited to allow when it is not empty.
func rosterFrom(appts []model.Appointment, pick func(model.Appointment) *string, allow []string) []string {
	seen := make(map[string]struct{})
	for _, a := range appts {
		name := model.Deref(pick(a))
		if strings.TrimSpace(name) == "" {
			continue
		}
		if len(allow) > 0 && !slices.Contains(allow, name) {
			continue
		}
		seen[name] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// ParseRevenue reads a monthly_revenue cell such as "$1,250.00". Values
// that do not parse count as zero.
func ParseRevenue(s string) decimal.Decimal {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func statusIs(status *string, want string) bool {
	return strings.EqualFold(strings.TrimSpace(model.Deref(status)), want)
}
