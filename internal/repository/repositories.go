// Package repository holds the SQL reads behind the dashboard.
//
// Every repository reads whole tables (optionally filtered) and wraps
// failures in sqlerr.FetchError so callers can report which table failed.
package repository

import (
	"context"

	"github.com/deppfellow/opsboard/internal/config"
	"github.com/deppfellow/opsboard/internal/server"
	"github.com/jackc/pgx/v5"
)

// DBTX is the part of *pgxpool.Pool the repositories use.
type DBTX interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type Repositories struct {
	Clients       *ClientRepository
	Opportunities *OpportunityRepository
	Appointments  *AppointmentRepository
	RevisionLogs  *RevisionLogRepository
}

func NewRepositories(s *server.Server) *Repositories {
	return New(s.DB.Pool, s.Config.Dashboard.PageSize)
}

// New builds the repositories over db. pageSize applies to the paginated
// sales tables; values <= 0 use the default.
func New(db DBTX, pageSize int) *Repositories {
	if pageSize <= 0 {
		pageSize = config.DefaultDashboardConfig().PageSize
	}

	return &Repositories{
		Clients:       NewClientRepository(db),
		Opportunities: NewOpportunityRepository(db, pageSize),
		Appointments:  NewAppointmentRepository(db, pageSize),
		RevisionLogs:  NewRevisionLogRepository(db),
	}
}
