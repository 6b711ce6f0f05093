// Package job runs background work on asynq: the stats digest task and the
// scheduler that enqueues it periodically.
package job

import (
	"context"
	"time"

	"github.com/deppfellow/opsboard/internal/config"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

type JobService struct {
	Client *asynq.Client

	server    *asynq.Server
	scheduler *asynq.Scheduler
	digestCfg *config.DigestConfig
	logger    *zerolog.Logger

	digests DigestSource
	mailer  DigestMailer
	clock   func() time.Time
}

func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	j := &JobService{
		Client:    asynq.NewClient(redisOpt),
		server:    server,
		digestCfg: cfg.Digest,
		logger:    logger,
	}

	if cfg.Digest != nil && cfg.Digest.Enabled {
		j.scheduler = asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
			Location: time.UTC,
			PostEnqueueFunc: func(info *asynq.TaskInfo, err error) {
				if err != nil {
					logger.Error().Err(err).Msg("failed to enqueue scheduled stats digest")
					return
				}
				logger.Info().Str("task_id", info.ID).Msg("enqueued scheduled stats digest")
			},
		})
	}

	return j
}

// Enqueue pushes t onto its queue.
func (j *JobService) Enqueue(ctx context.Context, t *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	return j.Client.EnqueueContext(ctx, t, opts...)
}

// Start registers the handlers, starts the workers and, when the periodic
// digest is enabled, the scheduler. Neither call blocks.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskStatsDigest, j.handleStatsDigestTask)

	j.logger.Info().Msg("starting background job server")
	if err := j.server.Start(mux); err != nil {
		return err
	}

	if j.scheduler == nil {
		return nil
	}

	task, err := NewStatsDigestTask(StatsDigestPayload{
		Recipients:   j.digestCfg.Recipients,
		LookbackDays: j.digestCfg.LookbackDays,
	})
	if err != nil {
		return err
	}

	entryID, err := j.scheduler.Register(j.digestCfg.Cron, task)
	if err != nil {
		return err
	}

	j.logger.Info().
		Str("cron", j.digestCfg.Cron).
		Str("entry_id", entryID).
		Msg("scheduled periodic stats digest")

	return j.scheduler.Start()
}

func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	if j.scheduler != nil {
		j.scheduler.Shutdown()
	}
	j.server.Shutdown()
	j.Client.Close()
}
