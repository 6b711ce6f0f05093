package table

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type account struct {
	Company string
	Owner   *string
	Usage   *float64
	Started *time.Time
	Note    string
}

func ptr[T any](v T) *T { return &v }

var accountColumns = []Column[account]{
	{Key: "company", Label: "Company", Type: Text, Weight: 3, Value: func(a account) any { return a.Company }},
	{Key: "owner", Label: "Owner", Type: Text, Value: func(a account) any { return Str(a.Owner) }},
	{Key: "usage", Label: "Usage", Type: Number, Value: func(a account) any { return Float(a.Usage) }},
	{Key: "started", Label: "Started", Type: Timestamp, Value: func(a account) any { return Time(a.Started) }},
	{Key: "note", Label: "Note", Type: Duration, Value: func(a account) any { return a.Note }},
}

func accounts() []account {
	return []account{
		{Company: "Acme Roofing", Owner: ptr("Ana"), Usage: ptr(12.0), Started: ptr(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))},
		{Company: "Roof Pros", Usage: nil, Started: ptr(time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC))},
		{Company: "roof", Owner: ptr("Ben"), Usage: ptr(3.5)},
		{Company: "Plumbing Co", Owner: ptr("Roofus"), Usage: ptr(40.0), Started: ptr(time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC))},
	}
}

func companies(rows []account) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Company
	}
	return out
}

func TestSort(t *testing.T) {
	rows := accounts()

	t.Run("number ascending puts missing last", func(t *testing.T) {
		got := Sort(rows, accountColumns, "usage", Asc)
		assert.Equal(t, []string{"roof", "Acme Roofing", "Plumbing Co", "Roof Pros"}, companies(got))
	})

	t.Run("number descending still puts missing last", func(t *testing.T) {
		got := Sort(rows, accountColumns, "usage", Desc)
		assert.Equal(t, []string{"Plumbing Co", "Acme Roofing", "roof", "Roof Pros"}, companies(got))
	})

	t.Run("timestamp", func(t *testing.T) {
		got := Sort(rows, accountColumns, "started", Asc)
		assert.Equal(t, []string{"Plumbing Co", "Roof Pros", "Acme Roofing", "roof"}, companies(got))
	})

	t.Run("text and unknown keys are no-ops", func(t *testing.T) {
		assert.Equal(t, companies(rows), companies(Sort(rows, accountColumns, "company", Asc)))
		assert.Equal(t, companies(rows), companies(Sort(rows, accountColumns, "missing", Desc)))
	})

	t.Run("does not mutate input", func(t *testing.T) {
		before := companies(rows)
		_ = Sort(rows, accountColumns, "usage", Desc)
		assert.Equal(t, before, companies(rows))
	})
}

func TestScore(t *testing.T) {
	rows := accounts()

	// "Acme Roofing": contains only -> 3 × 1
	assert.Equal(t, 3.0, Score(rows[0], accountColumns, "roof"))
	// "Roof Pros": prefix -> 3 × 1.5
	assert.Equal(t, 4.5, Score(rows[1], accountColumns, "roof"))
	// "roof": prefix and exact -> 3 × 2.5
	assert.Equal(t, 7.5, Score(rows[2], accountColumns, "  ROOF "))
	// owner "Roofus": default weight, prefix -> 1 × 1.5
	assert.Equal(t, 1.5, Score(rows[3], accountColumns, "roof"))
	assert.Equal(t, 0.0, Score(rows[0], accountColumns, ""))
}

func TestSearchAndApply(t *testing.T) {
	rows := accounts()

	t.Run("ranked by score without a sort key", func(t *testing.T) {
		got := Apply(rows, accountColumns, Query{Search: "roof"})
		assert.Equal(t, []string{"roof", "Roof Pros", "Acme Roofing", "Plumbing Co"}, companies(got))
	})

	t.Run("drops zero scores", func(t *testing.T) {
		got := Apply(rows, accountColumns, Query{Search: "ana"})
		assert.Equal(t, []string{"Acme Roofing"}, companies(got))
	})

	t.Run("sort key wins over score", func(t *testing.T) {
		got := Apply(rows, accountColumns, Query{Search: "roof", SortKey: "usage", Direction: Desc})
		assert.Equal(t, []string{"Plumbing Co", "Acme Roofing", "roof", "Roof Pros"}, companies(got))
	})

	t.Run("blank term keeps everything", func(t *testing.T) {
		assert.Len(t, Search(rows, accountColumns, "   ", true), 4)
	})
}

func TestDisplay(t *testing.T) {
	ts := time.Date(2024, 3, 5, 23, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		v    any
		t    ColumnType
		want string
	}{
		{"nil", nil, Number, "N/A"},
		{"nil pointer", (*float64)(nil), Integer, "N/A"},
		{"timestamp", ts, Timestamp, "3/5/2024"},
		{"date string", "2024-12-25", Date, "12/25/2024"},
		{"bad date", "soon", Date, "Invalid Date"},
		{"number", 3.14159, Number, "3.1"},
		{"integer", 2.5, Integer, "3"},
		{"integer from int", 7, Integer, "7"},
		{"percentage", 66.666, Percentage, "66.67%"},
		{"duration text", "1d 2h 3m", Duration, "1d 2h 3m"},
		{"text", "hello", Text, "hello"},
		{"number as string stays", "12.345", Number, "12.345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Display(tt.v, tt.t))
		})
	}
}

func TestViewAndCSV(t *testing.T) {
	v := NewView("Accounts", accountColumns[:3], accounts()[:2])

	assert.Equal(t, 2, v.Count)
	assert.Equal(t, "Accounts (2)", v.TitleWithCount())
	require.Len(t, v.Columns, 3)
	assert.True(t, v.Columns[2].Sortable)
	assert.False(t, v.Columns[0].Sortable)
	assert.Nil(t, v.Rows[1]["owner"])
	assert.Equal(t, 12.0, v.Rows[0]["usage"])

	var buf bytes.Buffer
	require.NoError(t, v.WriteCSV(&buf))
	assert.Equal(t,
		"Company,Owner,Usage\n"+
			"Acme Roofing,Ana,12.0\n"+
			"Roof Pros,N/A,N/A\n",
		buf.String())
}
