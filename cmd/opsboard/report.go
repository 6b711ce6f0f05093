package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/deppfellow/opsboard/internal/config"
	"github.com/deppfellow/opsboard/internal/database"
	"github.com/deppfellow/opsboard/internal/lib/utils"
	"github.com/deppfellow/opsboard/internal/logger"
	"github.com/deppfellow/opsboard/internal/repository"
	"github.com/deppfellow/opsboard/internal/service"
	"github.com/deppfellow/opsboard/internal/validation"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var reportFlags struct {
	startDate string
	endDate   string
	sort      string
	direction string
}

var reportCmd = &cobra.Command{
	Use:   "report csm|sales|va",
	Short: "Print a stats report as JSON",
	Long: `Compute one of the dashboard stats reports straight from the database
and print it as JSON. Dates are YYYY-MM-DD and default to the current month.`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"csm", "sales", "va"},
	RunE:      runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportFlags.startDate, "start-date", "", "first day of the range (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportFlags.endDate, "end-date", "", "last day of the range (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportFlags.sort, "sort", "", "column key to sort every table by")
	reportCmd.Flags().StringVar(&reportFlags.direction, "direction", "", "asc or desc")
}

func runReport(cmd *cobra.Command, args []string) error {
	q := &validation.StatsQuery{
		DateRangeQuery: validation.DateRangeQuery{
			StartDate: reportFlags.startDate,
			EndDate:   reportFlags.endDate,
		},
		Sort:      reportFlags.sort,
		Direction: reportFlags.direction,
	}
	if err := q.Validate(); err != nil {
		return fmt.Errorf("invalid report flags: %w", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// stdout carries the report.
	log := logger.NewLogger(cfg.Observability).Output(zerolog.ConsoleWriter{Out: os.Stderr})

	db, err := database.New(cfg, &log, nil)
	if err != nil {
		return err
	}
	defer db.Close()

	repos := repository.New(db.Pool, cfg.Dashboard.PageSize)

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	report, err := buildReport(ctx, args[0], cfg, repos, q)
	if err != nil {
		return err
	}

	return utils.WriteJSON(cmd.OutOrStdout(), report)
}

func buildReport(ctx context.Context, kind string, cfg *config.Config, repos *repository.Repositories, q *validation.StatsQuery) (any, error) {
	switch kind {
	case "csm":
		return service.NewCSMStatsService(repos.Clients, cfg.Dashboard, time.Now).Report(ctx, q)
	case "sales":
		return service.NewSalesStatsService(repos.Opportunities, repos.Appointments, cfg.Dashboard).Report(ctx, q)
	case "va":
		return service.NewVAStatsService(repos.Clients, repos.RevisionLogs, cfg.Dashboard).Report(ctx, q)
	}
	return nil, fmt.Errorf("unknown report %q", kind)
}
