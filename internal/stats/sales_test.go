package stats

import (
	"testing"

	"github.com/deppfellow/opsboard/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func salesFixture() ([]model.Opportunity, []model.Appointment) {
	appt := func(setter, closer, status, company, name string) model.Appointment {
		return model.Appointment{
			Setter:          ptr(setter),
			Closer:          ptr(closer),
			Status:          ptr(status),
			Company:         ptr(company),
			Name:            ptr(name),
			AppointmentDate: at(2024, 3, 12, 15, 0),
		}
	}

	appts := []model.Appointment{
		appt("Javier", "Dale", "Showed", "Acme", "Ann"),
		appt("Javier", "Melo Moore", "showed", "Beta", "Bob"),
		appt("Javier", "Dale", "no show", "Gamma", "Gus"),
		appt("Juan", "Jay", "showed", "Delta", "Dee"),
		appt("Javier", "Dale", "showed", "Acme", "Ann"),
		appt("Javier & Juan", "Jay", "showed", "Eps", "Eve"),
		appt("", "", "showed", "", ""),
		appt("Stranger", "Rando", "booked", "Omega", "Oz"),
	}
	// Outside the reporting month.
	appts[4].AppointmentDate = at(2024, 4, 2, 10, 0)

	opps := []model.Opportunity{
		{Company: ptr("Acme"), Name: ptr("Ann"), Status: ptr("Won"), Closer: ptr("Dale"), UpdatedAt: at(2024, 3, 5, 0, 0), MonthlyRevenue: ptr("$1,250.50"), Upgrade: true},
		{Company: ptr("Delta"), Name: ptr("Dee"), Status: ptr("trial"), Closer: ptr("Jay"), UpdatedAt: at(2024, 3, 6, 0, 0), MonthlyRevenue: ptr("n/a")},
		{Company: ptr("Beta"), Name: ptr("Bob"), Status: ptr("won"), Closer: ptr(" Dale "), UpdatedAt: at(2024, 3, 7, 0, 0), MonthlyRevenue: ptr("300"), Upgrade: true},
		{Company: ptr("Gamma"), Name: ptr("Gus"), Status: ptr("won"), Closer: ptr("Dale"), UpdatedAt: at(2024, 4, 10, 0, 0)},
		{Company: ptr("Zeta"), Status: ptr("won"), Closer: ptr("Jay"), UpdatedAt: at(2024, 3, 20, 0, 0), MonthlyRevenue: ptr("abc")},
	}

	return opps, appts
}

func TestSalesStats(t *testing.T) {
	opps, appts := salesFixture()
	opts := SalesOptions{
		Setters:             []string{"Javier", "Juan"},
		Closers:             []string{"Dale", "Jay"},
		ExcludedShowClosers: []string{"Melo Moore"},
	}

	report := SalesStats(opps, appts, march2024(), opts)

	t.Run("setters", func(t *testing.T) {
		require.Len(t, report.Setters, 2)
		assert.Equal(t, SetterRow{
			Setter:      "Javier",
			ApptsBooked: 3,
			ApptsShowed: 2,
			ShowRate:    66.67,
			ApptsClosed: 3,
			CloseRate:   150,
		}, report.Setters[0])
		assert.Equal(t, SetterRow{
			Setter:      "Juan",
			ApptsBooked: 1,
			ApptsShowed: 2,
			ShowRate:    200,
			ApptsClosed: 0,
			CloseRate:   0,
		}, report.Setters[1])

		assert.Equal(t, SetterRow{
			Setter:      TotalsLabel,
			ApptsBooked: 4,
			ApptsShowed: 4,
			ShowRate:    100,
			ApptsClosed: 3,
			CloseRate:   75,
		}, report.SetterTotals)
	})

	t.Run("closers", func(t *testing.T) {
		require.Len(t, report.Closers, 2)

		dale := report.Closers[0]
		assert.Equal(t, "Dale", dale.Closer)
		assert.Equal(t, 1, dale.ApptsTaken)
		assert.Equal(t, 2, dale.TotalAppts)
		assert.Equal(t, 50.0, dale.ShowRate)
		assert.Equal(t, 1, dale.ClosedPaid)
		assert.Equal(t, 0, dale.ClosedTrial)
		assert.Equal(t, 100.0, dale.CloseRate)
		assert.Equal(t, 2, dale.Upgrades, "upgrade matching trims the closer name")
		assert.Equal(t, 200.0, dale.UpgradeRate)
		assert.True(t, decimal.RequireFromString("1250.5").Equal(dale.RevenueClosed))

		jay := report.Closers[1]
		assert.Equal(t, 2, jay.ApptsTaken)
		assert.Equal(t, 100.0, jay.ShowRate)
		assert.Equal(t, 1, jay.ClosedPaid)
		assert.Equal(t, 1, jay.ClosedTrial)
		assert.Equal(t, 50.0, jay.CloseRate)
		assert.True(t, jay.RevenueClosed.IsZero(), "unparsable revenue counts as zero")

		tot := report.CloserTotals
		assert.Equal(t, TotalsLabel, tot.Closer)
		assert.Equal(t, 3, tot.ApptsTaken)
		assert.Equal(t, 4, tot.TotalAppts)
		assert.Equal(t, 75.0, tot.ShowRate)
		assert.Equal(t, 2, tot.ClosedPaid)
		assert.Equal(t, 1, tot.ClosedTrial)
		assert.Equal(t, 66.67, tot.CloseRate)
		assert.Equal(t, 2, tot.Upgrades)
		assert.Equal(t, 100.0, tot.UpgradeRate)
		assert.True(t, decimal.RequireFromString("1250.5").Equal(tot.RevenueClosed))
	})
}

func TestSalesStatsWithoutAllowLists(t *testing.T) {
	opps, appts := salesFixture()

	report := SalesStats(opps, appts, march2024(), SalesOptions{})

	setters := make([]string, 0, len(report.Setters))
	for _, r := range report.Setters {
		setters = append(setters, r.Setter)
	}
	assert.Equal(t, []string{"Javier", "Javier & Juan", "Juan", "Stranger"}, setters)

	closers := make([]string, 0, len(report.Closers))
	for _, r := range report.Closers {
		closers = append(closers, r.Closer)
	}
	assert.Equal(t, []string{"Dale", "Jay", "Melo Moore", "Rando"}, closers)
}

func TestParseRevenue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"$1,250.50", "1250.5"},
		{" 99 ", "99"},
		{"", "0"},
		{"TBD", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.True(t, decimal.RequireFromString(tt.want).Equal(ParseRevenue(tt.in)))
		})
	}
}
