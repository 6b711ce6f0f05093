package table

import (
	"fmt"
	"math"
	"strconv"
)

// NotAvailable is shown for missing values.
const NotAvailable = "N/A"

// Display formats a cell for humans.
//
//	nil                  N/A
//	timestamp, date      M/D/YYYY (UTC)
//	number               one decimal
//	integer              rounded
//	percentage           two decimals and a % sign
//	anything else        fmt.Sprint, so durations keep their "Xd Yh Zm" text
func Display(v any, t ColumnType) string {
	v = normalize(v)
	if v == nil {
		return NotAvailable
	}

	switch t {
	case Timestamp, Date:
		tm, ok := toTime(v)
		if !ok {
			return "Invalid Date"
		}
		tm = tm.UTC()
		return fmt.Sprintf("%d/%d/%d", int(tm.Month()), tm.Day(), tm.Year())
	case Number:
		if f, ok := numeric(v); ok {
			return strconv.FormatFloat(f, 'f', 1, 64)
		}
	case Integer:
		if f, ok := numeric(v); ok {
			return strconv.FormatFloat(math.Round(f), 'f', 0, 64)
		}
	case Percentage:
		if f, ok := numeric(v); ok {
			return strconv.FormatFloat(f, 'f', 2, 64) + "%"
		}
	}

	return fmt.Sprint(v)
}

// numeric accepts only real numbers; numeric-looking strings are shown as is.
func numeric(v any) (float64, bool) {
	switch v.(type) {
	case string, fmt.Stringer:
		return 0, false
	}
	return toFloat(v)
}
