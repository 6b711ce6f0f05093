package stats

import (
	"time"

	"github.com/deppfellow/opsboard/internal/model"
)

func ptr[T any](v T) *T { return &v }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, h, min int) *time.Time {
	t := time.Date(y, m, d, h, min, 0, 0, time.UTC)
	return &t
}

func march2024() model.DateRange {
	return model.NewDateRange(day(2024, 3, 1), day(2024, 3, 31))
}
