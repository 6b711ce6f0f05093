package job

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/deppfellow/opsboard/internal/model"
	"github.com/hibiken/asynq"
)

// TaskStatsDigest renders the CSM, sales and VA stats for a range and emails
// them.
const TaskStatsDigest = "report:stats_digest"

// StatsDigestPayload carries either an explicit range or, for the periodic
// digest, a number of trailing days resolved when the task runs.
type StatsDigestPayload struct {
	Recipients   []string `json:"recipients"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	LookbackDays int      `json:"lookback_days,omitempty"`
}

// Range resolves the payload against now.
func (p StatsDigestPayload) Range(now time.Time) (model.DateRange, error) {
	if p.StartDate == "" && p.EndDate == "" {
		if p.LookbackDays <= 0 {
			return model.DateRange{}, fmt.Errorf("digest payload has neither dates nor lookback_days")
		}
		return model.TrailingDays(now, p.LookbackDays), nil
	}
	return model.ParseDateRange(p.StartDate, p.EndDate)
}

// NewStatsDigestTask builds the task. Callers that need an id pass
// asynq.TaskID when enqueueing; scheduled digests reuse one task value.
func NewStatsDigestTask(p StatsDigestPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskStatsDigest,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
