package sqlerr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/opsboard/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asHTTP(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestMapCode(t *testing.T) {
	tests := map[string]Code{
		"23505": Other,
		"40P01": DeadlockDetected,
		"08006": ConnectionFailure,
		"08001": ConnectionFailure,
		"42P01": UndefinedTable,
		"57014": QueryCanceled,
		"53300": TooManyConnections,
		"22P02": Other,
	}

	for state, want := range tests {
		assert.Equal(t, want, MapCode(state), state)
	}

	assert.True(t, ConnectionFailure.Unavailable())
	assert.False(t, Other.Unavailable())
}

func TestMapSeverity(t *testing.T) {
	assert.Equal(t, SeverityFatal, MapSeverity("fatal"))
	assert.Equal(t, SeverityError, MapSeverity("ERROR"))
	assert.Equal(t, SeverityError, MapSeverity("unknown"))
}

func TestHandleError(t *testing.T) {
	t.Run("http errors pass through", func(t *testing.T) {
		in := errs.NewForbiddenError("nope", true)
		assert.Same(t, in, HandleError(in))
	})

	t.Run("fetch failure keeps message", func(t *testing.T) {
		err := NewFetchError("clients", errors.New("dial tcp: connection refused"))

		got := asHTTP(t, HandleError(err))
		assert.Equal(t, http.StatusServiceUnavailable, got.Status)
		assert.Equal(t, errs.CodeDataSourceUnavailable, got.Code)
		assert.Equal(t, "failed to fetch clients: dial tcp: connection refused", got.Message)
	})

	t.Run("missing table is unavailable", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "42P01", Severity: "ERROR", Message: `relation "appointments" does not exist`}
		err := NewFetchError("appointments", pgErr)

		got := asHTTP(t, HandleError(err))
		assert.Equal(t, http.StatusServiceUnavailable, got.Status)
		assert.Contains(t, got.Message, "failed to fetch appointments:")
		assert.Equal(t, UndefinedTable, ErrCode(ConvertPgError(pgErr)))
	})

	t.Run("connection failure outside a fetch", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "08006", Message: "connection lost"}

		got := asHTTP(t, HandleError(fmt.Errorf("ping: %w", pgErr)))
		assert.Equal(t, http.StatusServiceUnavailable, got.Status)
		assert.Equal(t, "connection lost", got.Message)
	})

	t.Run("other driver errors are internal", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "22P02", Message: "invalid input syntax"}

		got := asHTTP(t, HandleError(pgErr))
		assert.Equal(t, http.StatusInternalServerError, got.Status)
	})

	t.Run("no rows", func(t *testing.T) {
		got := asHTTP(t, HandleError(NewFetchError("website_revision_logs", pgx.ErrNoRows)))
		assert.Equal(t, http.StatusNotFound, got.Status)
		assert.Equal(t, "Website Revision Log not found", got.Message)
	})

	t.Run("deadline", func(t *testing.T) {
		got := asHTTP(t, HandleError(context.DeadlineExceeded))
		assert.Equal(t, http.StatusServiceUnavailable, got.Status)
	})

	t.Run("anything else is internal", func(t *testing.T) {
		got := asHTTP(t, HandleError(errors.New("boom")))
		assert.Equal(t, http.StatusInternalServerError, got.Status)
	})
}
