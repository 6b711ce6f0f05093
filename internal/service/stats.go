package service

import (
	"context"
	"time"

	"github.com/deppfellow/opsboard/internal/config"
	"github.com/deppfellow/opsboard/internal/model"
	"github.com/deppfellow/opsboard/internal/sqlerr"
	"github.com/deppfellow/opsboard/internal/stats"
	"github.com/deppfellow/opsboard/internal/validation"
	"golang.org/x/sync/errgroup"
)

// RangeEcho is the resolved range returned with every stats response.
type RangeEcho struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func echoRange(r model.DateRange) RangeEcho {
	return RangeEcho{StartDate: r.StartDate(), EndDate: r.EndDate()}
}

type CSMStatsService struct {
	clients ClientReader
	cfg     config.DashboardConfig
	now     func() time.Time
}

func NewCSMStatsService(clients ClientReader, cfg config.DashboardConfig, now func() time.Time) *CSMStatsService {
	return &CSMStatsService{clients: clients, cfg: cfg, now: now}
}

type CSMStatsResponse struct {
	Range      RangeEcho                       `json:"range"`
	Onboarding StatsTable[stats.OnboardingRow] `json:"onboarding"`
	Retention  StatsTable[stats.RetentionRow]  `json:"retention"`
}

func (s *CSMStatsService) Get(ctx context.Context, r model.DateRange) (*stats.CSMReport, error) {
	clients, err := s.clients.List(ctx, model.ClientFilter{})
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}

	report := stats.CSMStats(clients, s.cfg.CSMNames, r, stats.CSMOptions{
		ActivationThresholdDays: s.cfg.ActivationThresholdDays,
		InactivityWindowDays:    s.cfg.InactivityWindowDays,
	}, s.now())
	return &report, nil
}

func (s *CSMStatsService) Report(ctx context.Context, q *validation.StatsQuery) (*CSMStatsResponse, error) {
	report, err := s.Get(ctx, q.Range())
	if err != nil {
		return nil, err
	}

	tq := q.TableQuery()
	return &CSMStatsResponse{
		Range:      echoRange(q.Range()),
		Onboarding: newStatsTable("Onboarding", OnboardingColumns, report.Onboarding, report.OnboardingTotals, tq),
		Retention:  newStatsTable("Retention", RetentionColumns, report.Retention, report.RetentionTotals, tq),
	}, nil
}

type SalesStatsService struct {
	opps  OpportunityReader
	appts AppointmentReader
	cfg   config.DashboardConfig
}

func NewSalesStatsService(opps OpportunityReader, appts AppointmentReader, cfg config.DashboardConfig) *SalesStatsService {
	return &SalesStatsService{opps: opps, appts: appts, cfg: cfg}
}

type SalesStatsResponse struct {
	Range   RangeEcho                   `json:"range"`
	Setters StatsTable[stats.SetterRow] `json:"setters"`
	Closers StatsTable[stats.CloserRow] `json:"closers"`
}

// Get loads both sales tables concurrently; the first failure cancels the
// other read.
func (s *SalesStatsService) Get(ctx context.Context, r model.DateRange) (*stats.SalesReport, error) {
	var (
		opps  []model.Opportunity
		appts []model.Appointment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		opps, err = s.opps.ListAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		appts, err = s.appts.ListAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, sqlerr.HandleError(err)
	}

	report := stats.SalesStats(opps, appts, r, stats.SalesOptions{
		Setters:             s.cfg.Setters,
		Closers:             s.cfg.Closers,
		ExcludedShowClosers: s.cfg.ExcludedShowClosers,
	})
	return &report, nil
}

func (s *SalesStatsService) Report(ctx context.Context, q *validation.StatsQuery) (*SalesStatsResponse, error) {
	report, err := s.Get(ctx, q.Range())
	if err != nil {
		return nil, err
	}

	tq := q.TableQuery()
	return &SalesStatsResponse{
		Range:   echoRange(q.Range()),
		Setters: newStatsTable("Setters", SetterColumns, report.Setters, report.SetterTotals, tq),
		Closers: newStatsTable("Closers", CloserColumns, report.Closers, report.CloserTotals, tq),
	}, nil
}

type VAStatsService struct {
	clients ClientReader
	logs    RevisionLogReader
	cfg     config.DashboardConfig
}

func NewVAStatsService(clients ClientReader, logs RevisionLogReader, cfg config.DashboardConfig) *VAStatsService {
	return &VAStatsService{clients: clients, logs: logs, cfg: cfg}
}

type VAStatsResponse struct {
	Range RangeEcho               `json:"range"`
	VAs   StatsTable[stats.VARow] `json:"vas"`
}

func (s *VAStatsService) Get(ctx context.Context, r model.DateRange) (*stats.VAReport, error) {
	var (
		clients []model.Client
		logs    []model.RevisionLog
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		clients, err = s.clients.ListWithDeliveryPerson(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		logs, err = s.logs.ListAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, sqlerr.HandleError(err)
	}

	report := stats.VAStats(clients, logs, r, stats.VAOptions{Excluded: s.cfg.ExcludedVAs})
	return &report, nil
}

func (s *VAStatsService) Report(ctx context.Context, q *validation.StatsQuery) (*VAStatsResponse, error) {
	report, err := s.Get(ctx, q.Range())
	if err != nil {
		return nil, err
	}

	return &VAStatsResponse{
		Range: echoRange(q.Range()),
		VAs:   newStatsTable("VA Stats", VAColumns, report.Rows, report.Totals, q.TableQuery()),
	}, nil
}
