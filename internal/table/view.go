package table

import (
	"encoding/csv"
	"fmt"
	"io"
)

// View is a rendered table: metadata plus one map per row keyed by column.
type View struct {
	Title   string           `json:"title"`
	Count   int              `json:"count"`
	Columns []ColumnMeta     `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

// NewView reads every column of every row. Missing values are nil.
func NewView[T any](title string, cols []Column[T], rows []T) View {
	out := make([]map[string]any, len(rows))
	for i, r := range rows {
		m := make(map[string]any, len(cols))
		for _, c := range cols {
			m[c.Key] = value(c, r)
		}
		out[i] = m
	}

	return View{
		Title:   title,
		Count:   len(rows),
		Columns: Metas(cols),
		Rows:    out,
	}
}

// TitleWithCount renders "Title (n)".
func (v View) TitleWithCount() string {
	return fmt.Sprintf("%s (%d)", v.Title, v.Count)
}

// WriteCSV writes a header of column labels followed by display values.
func (v View) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := make([]string, len(v.Columns))
	for i, c := range v.Columns {
		header[i] = c.Label
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	record := make([]string, len(v.Columns))
	for _, row := range v.Rows {
		for i, c := range v.Columns {
			record[i] = Display(row[c.Key], c.Type)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
