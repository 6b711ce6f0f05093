package table

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Score is the weighted match score of row for term over the Text columns.
//
// Every column containing the term adds weight × (1 + 0.5 for a prefix match
// + 1 for an exact match). Matching is case-insensitive.
func Score[T any](row T, cols []Column[T], term string) float64 {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return 0
	}

	var score float64
	for _, c := range cols {
		if c.Type != Text {
			continue
		}
		v := value(c, row)
		if v == nil {
			continue
		}
		s := strings.ToLower(fmt.Sprint(v))
		if s == "" || !strings.Contains(s, term) {
			continue
		}

		boost := 1.0
		if strings.HasPrefix(s, term) {
			boost += 0.5
		}
		if s == term {
			boost++
		}
		score += c.weight() * boost
	}
	return score
}

type scored[T any] struct {
	row   T
	score float64
}

// Search keeps rows scoring above zero. When byScore is set they are ordered
// by descending score; otherwise the input order is kept. A blank term
// returns rows unchanged.
func Search[T any](rows []T, cols []Column[T], term string, byScore bool) []T {
	if strings.TrimSpace(term) == "" {
		return rows
	}

	hits := make([]scored[T], 0, len(rows))
	for _, r := range rows {
		if s := Score(r, cols, term); s > 0 {
			hits = append(hits, scored[T]{row: r, score: s})
		}
	}

	if byScore {
		slices.SortStableFunc(hits, func(a, b scored[T]) int {
			return cmp.Compare(b.score, a.score)
		})
	}

	out := make([]T, len(hits))
	for i, h := range hits {
		out[i] = h.row
	}
	return out
}

// Query is the search and sort state of a table request.
type Query struct {
	Search    string
	SortKey   string
	Direction Direction
}

// Apply searches then sorts. Without a sort key, search hits are ranked by
// score.
func Apply[T any](rows []T, cols []Column[T], q Query) []T {
	out := Search(rows, cols, q.Search, q.SortKey == "")
	if q.SortKey == "" {
		return out
	}
	return Sort(out, cols, q.SortKey, q.Direction)
}
