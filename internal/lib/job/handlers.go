package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/deppfellow/opsboard/internal/config"
	"github.com/deppfellow/opsboard/internal/lib/email"
	"github.com/deppfellow/opsboard/internal/model"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// DigestSource builds the digest data for a range.
type DigestSource interface {
	Build(ctx context.Context, r model.DateRange) (*email.StatsDigest, error)
}

// DigestMailer delivers a built digest.
type DigestMailer interface {
	SendStatsDigest(ctx context.Context, to []string, digest *email.StatsDigest) error
}

// InitHandlers sets up the email client used by the task handlers.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	j.mailer = email.NewClient(cfg, logger)
}

// SetDigestSource must be called before Start; the services that build the
// digest are created after the job service.
func (j *JobService) SetDigestSource(src DigestSource) {
	j.digests = src
}

func (j *JobService) handleStatsDigestTask(ctx context.Context, t *asynq.Task) error {
	var p StatsDigestPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal stats digest payload: %v: %w", err, asynq.SkipRetry)
	}

	r, err := p.Range(j.now())
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().
		Str("type", TaskStatsDigest).
		Str("range", r.String()).
		Int("recipients", len(p.Recipients)).
		Logger()

	if j.digests == nil || j.mailer == nil {
		return fmt.Errorf("stats digest handler is not initialized: %w", asynq.SkipRetry)
	}

	log.Info().Msg("processing stats digest task")

	digest, err := j.digests.Build(ctx, r)
	if err != nil {
		log.Error().Err(err).Msg("failed to build stats digest")
		return err
	}
	digest.GeneratedAt = j.now()

	if err := j.mailer.SendStatsDigest(ctx, p.Recipients, digest); err != nil {
		log.Error().Err(err).Msg("failed to send stats digest")
		return err
	}

	log.Info().Msg("sent stats digest")
	return nil
}

func (j *JobService) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now()
}
