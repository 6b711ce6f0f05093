package model

import (
	"fmt"
	"time"
)

// DateLayout is the wire format of calendar days.
const DateLayout = "2006-01-02"

// DateRange is an inclusive range of calendar days in UTC.
//
// Contains treats it as the instant interval [Start 00:00, End+1d 00:00),
// so every timestamp on the end day is included.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange truncates both bounds to midnight UTC.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: startOfDay(start), End: startOfDay(end)}
}

// ParseDateRange parses two YYYY-MM-DD strings.
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	if e.Before(s) {
		return DateRange{}, fmt.Errorf("start date %s is after end date %s", start, end)
	}
	return DateRange{Start: s, End: e}, nil
}

// CurrentMonth is the range from the first to the last day of now's month.
func CurrentMonth(now time.Time) DateRange {
	now = now.UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return DateRange{Start: first, End: last}
}

// TrailingDays is the n days ending the day before now.
func TrailingDays(now time.Time, n int) DateRange {
	end := startOfDay(now).AddDate(0, 0, -1)
	return DateRange{Start: end.AddDate(0, 0, -(n - 1)), End: end}
}

// Contains reports whether t, taken in UTC, falls on a day of r.
func (r DateRange) Contains(t time.Time) bool {
	t = t.UTC()
	return !t.Before(r.Start) && t.Before(r.End.AddDate(0, 0, 1))
}

// ContainsPtr is Contains for nullable columns; nil is never contained.
func (r DateRange) ContainsPtr(t *time.Time) bool {
	return t != nil && r.Contains(*t)
}

// StartDate and EndDate render the bounds as YYYY-MM-DD.
func (r DateRange) StartDate() string { return r.Start.Format(DateLayout) }
func (r DateRange) EndDate() string   { return r.End.Format(DateLayout) }

// String renders r as "2024-03-01..2024-03-31" for logs.
func (r DateRange) String() string {
	return r.StartDate() + ".." + r.EndDate()
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
