// Package service holds the read-side business logic: it loads rows through
// the repositories, runs the stats and table engines over them and maps
// data-source failures to API errors.
package service

import (
	"context"
	"time"

	"github.com/deppfellow/opsboard/internal/lib/job"
	"github.com/deppfellow/opsboard/internal/model"
	"github.com/deppfellow/opsboard/internal/repository"
	"github.com/deppfellow/opsboard/internal/server"
	"github.com/hibiken/asynq"
)

type ClientReader interface {
	List(ctx context.Context, filter model.ClientFilter) ([]model.Client, error)
	ListWithDeliveryPerson(ctx context.Context) ([]model.Client, error)
	DistinctStatuses(ctx context.Context) ([]string, error)
	DistinctCSMNames(ctx context.Context) ([]string, error)
}

type OpportunityReader interface {
	ListAll(ctx context.Context) ([]model.Opportunity, error)
}

type AppointmentReader interface {
	ListAll(ctx context.Context) ([]model.Appointment, error)
}

type RevisionLogReader interface {
	ListAll(ctx context.Context) ([]model.RevisionLog, error)
}

// TaskEnqueuer is satisfied by *job.JobService.
type TaskEnqueuer interface {
	Enqueue(ctx context.Context, t *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type Services struct {
	Auth    *AuthService
	Job     *job.JobService
	Clients *ClientService
	CSM     *CSMStatsService
	Sales   *SalesStatsService
	VA      *VAStatsService
	Digest  *DigestService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	dashboard := s.Config.Dashboard

	csm := NewCSMStatsService(repos.Clients, dashboard, time.Now)
	sales := NewSalesStatsService(repos.Opportunities, repos.Appointments, dashboard)
	va := NewVAStatsService(repos.Clients, repos.RevisionLogs, dashboard)

	services := &Services{
		Auth:    NewAuthService(s),
		Job:     s.Job,
		Clients: NewClientService(repos.Clients),
		CSM:     csm,
		Sales:   sales,
		VA:      va,
	}

	if s.Job != nil {
		services.Digest = NewDigestService(csm, sales, va, s.Job)
		s.Job.SetDigestSource(services.Digest)
	}

	return services, nil
}
