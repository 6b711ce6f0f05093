package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/opsboard/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// fetchAll runs query and maps every row onto T by db tag.
func fetchAll[T any](ctx context.Context, db DBTX, table, query string, args ...any) ([]T, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, sqlerr.NewFetchError(table, err)
	}

	out, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, sqlerr.NewFetchError(table, err)
	}
	return out, nil
}

// fetchPaged reads query page by page with LIMIT/OFFSET until a page comes
// back empty or short. query must have a stable ORDER BY and no LIMIT.
func fetchPaged[T any](ctx context.Context, db DBTX, table, query string, pageSize int) ([]T, error) {
	paged := fmt.Sprintf("%s LIMIT $1 OFFSET $2", query)

	var out []T
	pages := 0
	for from := 0; ; from += pageSize {
		page, err := fetchAll[T](ctx, db, table, paged, pageSize, from)
		if err != nil {
			return nil, err
		}
		pages++

		out = append(out, page...)
		if len(page) < pageSize {
			break
		}
	}

	zerolog.Ctx(ctx).Debug().
		Str("table", table).
		Int("rows", len(out)).
		Int("pages", pages).
		Msg("fetched table")

	if out == nil {
		out = []T{}
	}
	return out, nil
}

func fetchStrings(ctx context.Context, db DBTX, table, query string) ([]string, error) {
	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, sqlerr.NewFetchError(table, err)
	}

	out, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, sqlerr.NewFetchError(table, err)
	}
	return out, nil
}
