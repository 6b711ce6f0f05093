package table

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/deppfellow/opsboard/internal/model"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sort returns a stably sorted copy of rows. An unknown key or a column that
// is not sortable leaves the order untouched. Missing or unparsable values go
// last in both directions.
func Sort[T any](rows []T, cols []Column[T], key string, dir Direction) []T {
	out := slices.Clone(rows)

	col, ok := find(cols, key)
	if !ok || !col.Type.Sortable() {
		return out
	}

	slices.SortStableFunc(out, func(a, b T) int {
		av, aok := orderKey(value(col, a), col.Type)
		bv, bok := orderKey(value(col, b), col.Type)

		switch {
		case !aok && !bok:
			return 0
		case !aok:
			return 1
		case !bok:
			return -1
		}

		c := cmp.Compare(av, bv)
		if dir == Desc {
			return -c
		}
		return c
	})

	return out
}

// orderKey turns a cell into a float64 ordering key.
func orderKey(v any, t ColumnType) (float64, bool) {
	if v == nil {
		return 0, false
	}

	switch t {
	case Number, Integer:
		f, ok := toFloat(v)
		if !ok || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	case Timestamp, Date:
		tm, ok := toTime(v)
		if !ok {
			return 0, false
		}
		return float64(tm.UnixMilli()), true
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	case fmt.Stringer:
		f, err := strconv.ParseFloat(n.String(), 64)
		return f, err == nil
	}
	return 0, false
}

func toTime(v any) (time.Time, bool) {
	switch tv := v.(type) {
	case time.Time:
		return tv, !tv.IsZero()
	case string:
		for _, layout := range []string{time.RFC3339Nano, model.DateLayout} {
			if t, err := time.Parse(layout, tv); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
