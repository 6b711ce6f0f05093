package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/opsboard/internal/config"
	"github.com/deppfellow/opsboard/internal/errs"
	"github.com/deppfellow/opsboard/internal/model"
	"github.com/deppfellow/opsboard/internal/sqlerr"
	"github.com/deppfellow/opsboard/internal/stats"
	"github.com/deppfellow/opsboard/internal/validation"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func at(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
	return &t
}

type fakeClients struct {
	clients  []model.Client
	statuses []string
	csms     []string
	err      error
	filters  []model.ClientFilter
}

func (f *fakeClients) List(_ context.Context, filter model.ClientFilter) ([]model.Client, error) {
	f.filters = append(f.filters, filter)
	return f.clients, f.err
}

func (f *fakeClients) ListWithDeliveryPerson(context.Context) ([]model.Client, error) {
	var out []model.Client
	for _, c := range f.clients {
		if c.DeliveryPerson != nil {
			out = append(out, c)
		}
	}
	return out, f.err
}

func (f *fakeClients) DistinctStatuses(context.Context) ([]string, error) { return f.statuses, f.err }
func (f *fakeClients) DistinctCSMNames(context.Context) ([]string, error) { return f.csms, f.err }

type fakeOpps struct {
	opps []model.Opportunity
	err  error
}

func (f fakeOpps) ListAll(context.Context) ([]model.Opportunity, error) { return f.opps, f.err }

type fakeAppts struct {
	appts []model.Appointment
	err   error
}

func (f fakeAppts) ListAll(context.Context) ([]model.Appointment, error) { return f.appts, f.err }

type fakeLogs struct {
	logs []model.RevisionLog
	err  error
}

func (f fakeLogs) ListAll(context.Context) ([]model.RevisionLog, error) { return f.logs, f.err }

type fakeQueue struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeQueue) Enqueue(_ context.Context, t *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, t)
	return &asynq.TaskInfo{ID: "task-1", Queue: "default", Type: t.Type()}, nil
}

func clientFixture() []model.Client {
	return []model.Client{
		{ID: 1, CompanyName: ptr("Acme Roofing"), Name: ptr("Ann"), Status: ptr("Active"), CSMName: ptr("Ryan Grant"), StartedOn: at(2024, 3, 4), FormCompleteTime: at(2024, 3, 5), TotalUsage: ptr(40.0), LastMeaningfulActivityTime: at(2024, 3, 20), DeliveryPerson: ptr("Maria"), SiteDoneAt: at(2024, 3, 9)},
		{ID: 2, CompanyName: ptr("Roof Masters"), Name: ptr("Rob"), Status: ptr("Active"), CSMName: ptr("Ryan Grant"), StartedOn: at(2024, 2, 1), TotalUsage: ptr(20.0)},
		{ID: 3, CompanyName: ptr("Bolt Plumbing"), Name: ptr("Acme Contact"), Status: ptr("Churned"), CSMName: ptr("Ben Zazueta"), ChurnedOn: at(2024, 3, 15), StartedOn: at(2023, 11, 2)},
	}
}

func dashboardConfig() config.DashboardConfig {
	cfg := config.DefaultDashboardConfig()
	cfg.CSMNames = []string{"Ryan Grant", "Ben Zazueta"}
	return cfg
}

func march(t *testing.T) *validation.StatsQuery {
	t.Helper()
	q := &validation.StatsQuery{DateRangeQuery: validation.DateRangeQuery{StartDate: "2024-03-01", EndDate: "2024-03-31"}}
	require.NoError(t, q.Validate())
	return q
}

func assertUnavailable(t *testing.T, err error, message string) {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %v", err)
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.Status)
	assert.Equal(t, message, httpErr.Message)
}

func TestClientServiceList(t *testing.T) {
	store := &fakeClients{clients: clientFixture()}
	svc := NewClientService(store)

	t.Run("search ranks company matches first", func(t *testing.T) {
		view, err := svc.List(context.Background(), &validation.ClientListQuery{Search: "acme", Status: " Active "})
		require.NoError(t, err)

		assert.Equal(t, model.ClientFilter{Status: "Active"}, store.filters[len(store.filters)-1])
		require.Equal(t, 2, view.Count)
		assert.Equal(t, "Acme Roofing", view.Rows[0]["company_name"])
		assert.Equal(t, "Bolt Plumbing", view.Rows[1]["company_name"])
		assert.Equal(t, "Clients (2)", view.TitleWithCount())
	})

	t.Run("sort by usage descending puts missing last", func(t *testing.T) {
		view, err := svc.List(context.Background(), &validation.ClientListQuery{Sort: "total_usage", Direction: "desc"})
		require.NoError(t, err)

		require.Len(t, view.Rows, 3)
		assert.Equal(t, 40.0, view.Rows[0]["total_usage"])
		assert.Equal(t, 20.0, view.Rows[1]["total_usage"])
		assert.Nil(t, view.Rows[2]["total_usage"])
	})

	t.Run("data source failure", func(t *testing.T) {
		failing := NewClientService(&fakeClients{err: sqlerr.NewFetchError("clients", errors.New("connection refused"))})
		_, err := failing.List(context.Background(), &validation.ClientListQuery{})
		assertUnavailable(t, err, "failed to fetch clients: connection refused")
	})
}

func TestClientServiceFilterOptionsAndExport(t *testing.T) {
	store := &fakeClients{
		clients:  clientFixture()[:1],
		statuses: []string{"Active", "Churned"},
		csms:     []string{"Ben Zazueta", "Ryan Grant"},
	}
	svc := NewClientService(store)

	opts, err := svc.FilterOptions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &ClientFilterOptions{Statuses: store.statuses, CSMNames: store.csms}, opts)

	csv, err := svc.ExportCSV(context.Background(), &validation.ClientListQuery{})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(csv)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Company,Name,Status,CSM,"))
	assert.True(t, strings.HasPrefix(lines[1], "Acme Roofing,Ann,Active,Ryan Grant,N/A,"))
	assert.Contains(t, lines[1], ",3/4/2024,")
}

func TestCSMStatsServiceReport(t *testing.T) {
	now := func() time.Time { return time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC) }
	svc := NewCSMStatsService(&fakeClients{clients: clientFixture()}, dashboardConfig(), now)

	resp, err := svc.Report(context.Background(), march(t))
	require.NoError(t, err)

	assert.Equal(t, RangeEcho{StartDate: "2024-03-01", EndDate: "2024-03-31"}, resp.Range)
	assert.Equal(t, OnboardingColumns[0].Meta(), resp.Onboarding.Columns[0])

	require.Len(t, resp.Onboarding.Rows, 2)
	ryan := resp.Onboarding.Rows[0]
	assert.Equal(t, "Ryan Grant", ryan.CSM)
	assert.Equal(t, 1, ryan.NewClients)
	assert.Equal(t, 100.0, ryan.FormCompletePct)
	assert.Equal(t, stats.Minutes(1440), ryan.FormCompleteTimeAvg)

	assert.Equal(t, stats.TotalsLabel, resp.Retention.Totals.CSM)
	assert.Equal(t, 2, resp.Retention.Rows[0].ClientsManaging)
	assert.Equal(t, 1, resp.Retention.Rows[1].Churned)
}

func TestSalesStatsServiceErrors(t *testing.T) {
	svc := NewSalesStatsService(
		fakeOpps{},
		fakeAppts{err: sqlerr.NewFetchError("appointments", errors.New("timeout"))},
		dashboardConfig(),
	)

	_, err := svc.Report(context.Background(), march(t))
	assertUnavailable(t, err, "failed to fetch appointments: timeout")
}

func TestSalesStatsServiceSortsRows(t *testing.T) {
	appt := func(setter string) model.Appointment {
		return model.Appointment{Setter: ptr(setter), Closer: ptr("Dale Kelley"), Status: ptr("showed"), AppointmentDate: at(2024, 3, 12)}
	}
	appts := []model.Appointment{appt("Juan Parada"), appt("Javier Ulloa"), appt("Javier Ulloa")}

	svc := NewSalesStatsService(fakeOpps{}, fakeAppts{appts: appts}, dashboardConfig())

	q := march(t)
	q.Sort, q.Direction = "appts_booked", "desc"

	resp, err := svc.Report(context.Background(), q)
	require.NoError(t, err)

	require.Len(t, resp.Setters.Rows, 2)
	assert.Equal(t, "Javier Ulloa", resp.Setters.Rows[0].Setter)
	assert.Equal(t, 2, resp.Setters.Rows[0].ApptsBooked)
	assert.Equal(t, 3, resp.Setters.Totals.ApptsBooked)
	assert.Equal(t, 3, resp.Closers.Totals.ApptsTaken)
}

func TestVAStatsService(t *testing.T) {
	logs := []model.RevisionLog{
		{Assignee: ptr("Maria"), CreatedAt: at(2024, 3, 1), FinishedAt: at(2024, 3, 2)},
		{Assignee: ptr("Yennifer"), CreatedAt: at(2024, 3, 1)},
	}
	svc := NewVAStatsService(&fakeClients{clients: clientFixture()}, fakeLogs{logs: logs}, dashboardConfig())

	resp, err := svc.Report(context.Background(), march(t))
	require.NoError(t, err)

	require.Len(t, resp.VAs.Rows, 1)
	maria := resp.VAs.Rows[0]
	assert.Equal(t, "Maria", maria.VA)
	assert.Equal(t, 1, maria.SitesCompleted)
	assert.Equal(t, stats.Minutes(5*1440), maria.SitesAvgCompletion)
	assert.Equal(t, 1, maria.RevisionsCompleted)
	assert.Equal(t, stats.VATotalsLabel, resp.VAs.Totals.VA)
}

func TestDigestService(t *testing.T) {
	cfg := dashboardConfig()
	clients := &fakeClients{clients: clientFixture()}
	queue := &fakeQueue{}

	svc := NewDigestService(
		NewCSMStatsService(clients, cfg, time.Now),
		NewSalesStatsService(fakeOpps{}, fakeAppts{}, cfg),
		NewVAStatsService(clients, fakeLogs{}, cfg),
		queue,
	)

	t.Run("build", func(t *testing.T) {
		r := model.NewDateRange(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC))

		digest, err := svc.Build(context.Background(), r)
		require.NoError(t, err)
		assert.Equal(t, r, digest.Range)
		assert.Len(t, digest.CSM.Onboarding, 2)
		assert.Len(t, digest.VA.Rows, 1)
	})

	t.Run("enqueue", func(t *testing.T) {
		req := &validation.DigestRequest{
			Recipients:     []string{"ops@example.com"},
			DateRangeQuery: validation.DateRangeQuery{StartDate: "2024-03-01", EndDate: "2024-03-07"},
		}
		require.NoError(t, req.Validate())

		out, err := svc.Enqueue(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, &DigestEnqueued{
			TaskID:     "task-1",
			Queue:      "default",
			Recipients: []string{"ops@example.com"},
			StartDate:  "2024-03-01",
			EndDate:    "2024-03-07",
		}, out)

		require.Len(t, queue.tasks, 1)
		assert.JSONEq(t, `{"recipients":["ops@example.com"],"start_date":"2024-03-01","end_date":"2024-03-07"}`, string(queue.tasks[0].Payload()))
	})

	t.Run("enqueue failure", func(t *testing.T) {
		failing := NewDigestService(nil, nil, nil, &fakeQueue{err: errors.New("redis down")})
		req := &validation.DigestRequest{Recipients: []string{"ops@example.com"}}
		require.NoError(t, req.Validate())

		_, err := failing.Enqueue(context.Background(), req)
		assertUnavailable(t, err, "failed to enqueue digest: redis down")
	})
}
