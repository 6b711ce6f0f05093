// Package table is the data-table engine behind every list endpoint: column
// metadata, stable sorting with missing values last, weighted text search,
// display formatting and CSV rendering.
package table

import (
	"reflect"
	"time"
)

type ColumnType string

const (
	Text       ColumnType = "text"
	Number     ColumnType = "number"
	Integer    ColumnType = "integer"
	Percentage ColumnType = "percentage"
	Duration   ColumnType = "duration"
	Timestamp  ColumnType = "timestamp"
	Date       ColumnType = "date"
)

// Sortable reports whether rows can be ordered by a column of this type.
func (t ColumnType) Sortable() bool {
	switch t {
	case Number, Integer, Timestamp, Date:
		return true
	}
	return false
}

// Column describes one field of T.
//
// Weight only matters for Text columns; zero means the default weight of 1.
type Column[T any] struct {
	Key         string
	Label       string
	Type        ColumnType
	Description string
	Weight      float64
	Value       func(T) any
}

// ColumnMeta is the serializable part of a Column.
type ColumnMeta struct {
	Key         string     `json:"key"`
	Label       string     `json:"label"`
	Type        ColumnType `json:"type"`
	Description string     `json:"description,omitempty"`
	Sortable    bool       `json:"sortable"`
}

func (c Column[T]) Meta() ColumnMeta {
	return ColumnMeta{
		Key:         c.Key,
		Label:       c.Label,
		Type:        c.Type,
		Description: c.Description,
		Sortable:    c.Type.Sortable(),
	}
}

func (c Column[T]) weight() float64 {
	if c.Weight == 0 {
		return 1
	}
	return c.Weight
}

// Metas returns the metadata of cols in order.
func Metas[T any](cols []Column[T]) []ColumnMeta {
	out := make([]ColumnMeta, len(cols))
	for i, c := range cols {
		out[i] = c.Meta()
	}
	return out
}

func find[T any](cols []Column[T], key string) (Column[T], bool) {
	for _, c := range cols {
		if c.Key == key {
			return c, true
		}
	}
	return Column[T]{}, false
}

// value reads a cell and collapses nil pointers to an untyped nil.
func value[T any](c Column[T], row T) any {
	if c.Value == nil {
		return nil
	}
	return normalize(c.Value(row))
}

func normalize(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		return rv.Elem().Interface()
	}
	return v
}

// Cell helpers for Value funcs over nullable columns.

func Str(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func Float(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func Time(p *time.Time) any {
	if p == nil {
		return nil
	}
	return *p
}
