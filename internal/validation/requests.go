package validation

import (
	"strings"
	"time"

	"github.com/deppfellow/opsboard/internal/model"
	"github.com/deppfellow/opsboard/internal/table"
)

// DateRangeQuery is the start_date/end_date pair accepted by every stats
// endpoint. A missing bound defaults to the matching end of the current
// calendar month.
type DateRangeQuery struct {
	StartDate string `query:"start_date" json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"end_date" json:"end_date" validate:"omitempty,datetime=2006-01-02"`

	resolved model.DateRange
}

func (q *DateRangeQuery) Validate() error {
	if err := Struct(q); err != nil {
		return err
	}
	return q.resolve(time.Now())
}

// Range is the resolved range. Only meaningful after Validate.
func (q *DateRangeQuery) Range() model.DateRange {
	return q.resolved
}

func (q *DateRangeQuery) resolve(now time.Time) error {
	month := model.CurrentMonth(now)

	start, end := q.StartDate, q.EndDate
	if start == "" {
		start = month.StartDate()
	}
	if end == "" {
		end = month.EndDate()
	}

	r, err := model.ParseDateRange(start, end)
	if err != nil {
		return CustomValidationErrors{{Field: "start_date", Message: "must not be after end_date"}}
	}

	q.StartDate, q.EndDate = start, end
	q.resolved = r
	return nil
}

// ClientListQuery drives GET /clients and its CSV export.
type ClientListQuery struct {
	Status    string `query:"status" validate:"max=100"`
	CSMName   string `query:"csm_name" validate:"max=100"`
	Search    string `query:"search" validate:"max=200"`
	Sort      string `query:"sort" validate:"max=64"`
	Direction string `query:"direction" validate:"omitempty,oneof=asc desc"`
}

func (q *ClientListQuery) Validate() error {
	return Struct(q)
}

func (q *ClientListQuery) Filter() model.ClientFilter {
	return model.ClientFilter{
		Status:  strings.TrimSpace(q.Status),
		CSMName: strings.TrimSpace(q.CSMName),
	}
}

func (q *ClientListQuery) TableQuery() table.Query {
	return tableQuery(q.Search, q.Sort, q.Direction)
}

// StatsQuery is a date range plus an optional sort applied to every table
// of a stats response.
type StatsQuery struct {
	DateRangeQuery
	Sort      string `query:"sort" validate:"max=64"`
	Direction string `query:"direction" validate:"omitempty,oneof=asc desc"`
}

func (q *StatsQuery) Validate() error {
	if err := Struct(q); err != nil {
		return err
	}
	return q.resolve(time.Now())
}

func (q *StatsQuery) TableQuery() table.Query {
	return tableQuery("", q.Sort, q.Direction)
}

// tableQuery defaults the direction to ascending.
func tableQuery(search, sort, direction string) table.Query {
	dir := table.Asc
	if direction == string(table.Desc) {
		dir = table.Desc
	}
	return table.Query{
		Search:    search,
		SortKey:   sort,
		Direction: dir,
	}
}

// DigestRequest asks for an immediate stats digest email.
type DigestRequest struct {
	Recipients []string `json:"recipients" validate:"required,min=1,max=20,dive,email"`
	DateRangeQuery
}

func (r *DigestRequest) Validate() error {
	if err := Struct(r); err != nil {
		return err
	}
	return r.resolve(time.Now())
}

// EmailPreviewRequest names a template under templates/emails.
type EmailPreviewRequest struct {
	Template string `param:"template" validate:"required,oneof=stats_digest"`
}

func (r *EmailPreviewRequest) Validate() error {
	return Struct(r)
}

// NoParams is the request of endpoints that take no input.
type NoParams struct{}

func (NoParams) Validate() error {
	return nil
}
