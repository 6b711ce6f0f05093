package service

import (
	"context"
	"time"

	"github.com/deppfellow/opsboard/internal/errs"
	"github.com/deppfellow/opsboard/internal/lib/email"
	"github.com/deppfellow/opsboard/internal/lib/job"
	"github.com/deppfellow/opsboard/internal/model"
	"github.com/deppfellow/opsboard/internal/validation"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"
)

type DigestService struct {
	csm   *CSMStatsService
	sales *SalesStatsService
	va    *VAStatsService
	queue TaskEnqueuer
}

func NewDigestService(csm *CSMStatsService, sales *SalesStatsService, va *VAStatsService, queue TaskEnqueuer) *DigestService {
	return &DigestService{csm: csm, sales: sales, va: va, queue: queue}
}

// DigestEnqueued is the 202 body of POST /digests.
type DigestEnqueued struct {
	TaskID     string   `json:"task_id"`
	Queue      string   `json:"queue"`
	Recipients []string `json:"recipients"`
	StartDate  string   `json:"start_date"`
	EndDate    string   `json:"end_date"`
}

// Build computes the three stats reports for r concurrently.
func (s *DigestService) Build(ctx context.Context, r model.DateRange) (*email.StatsDigest, error) {
	digest := &email.StatsDigest{Range: r, GeneratedAt: time.Now().UTC()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		report, err := s.csm.Get(gctx, r)
		if err == nil {
			digest.CSM = *report
		}
		return err
	})
	g.Go(func() error {
		report, err := s.sales.Get(gctx, r)
		if err == nil {
			digest.Sales = *report
		}
		return err
	})
	g.Go(func() error {
		report, err := s.va.Get(gctx, r)
		if err == nil {
			digest.VA = *report
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return digest, nil
}

// Enqueue schedules an immediate digest for the request's range.
func (s *DigestService) Enqueue(ctx context.Context, req *validation.DigestRequest) (*DigestEnqueued, error) {
	r := req.Range()

	task, err := job.NewStatsDigestTask(job.StatsDigestPayload{
		Recipients: req.Recipients,
		StartDate:  r.StartDate(),
		EndDate:    r.EndDate(),
	})
	if err != nil {
		return nil, err
	}

	info, err := s.queue.Enqueue(ctx, task, asynq.TaskID(uuid.NewString()))
	if err != nil {
		return nil, errs.NewDataSourceError("failed to enqueue digest: " + err.Error())
	}

	return &DigestEnqueued{
		TaskID:     info.ID,
		Queue:      info.Queue,
		Recipients: req.Recipients,
		StartDate:  r.StartDate(),
		EndDate:    r.EndDate(),
	}, nil
}
