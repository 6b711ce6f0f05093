package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *HTTPError
		code   string
		status int
	}{
		{"unauthorized", NewUnauthorizedError("no", false), "UNAUTHORIZED", http.StatusUnauthorized},
		{"forbidden", NewForbiddenError("no", false), "FORBIDDEN", http.StatusForbidden},
		{"bad request", NewBadRequestError("bad", false, nil, nil, nil), "BAD_REQUEST", http.StatusBadRequest},
		{"not found", NewNotFoundError("gone", false, nil), "NOT_FOUND", http.StatusNotFound},
		{"too many", NewTooManyRequestsError("slow down"), "TOO_MANY_REQUESTS", http.StatusTooManyRequests},
		{"internal", NewInternalServerError(), "INTERNAL_SERVER_ERROR", http.StatusInternalServerError},
		{"data source", NewDataSourceError("failed to fetch clients: timeout"), CodeDataSourceUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.Status)
		})
	}
}

func TestDataSourceErrorKeepsMessage(t *testing.T) {
	err := NewDataSourceError("failed to fetch appointments: connection refused")

	assert.Equal(t, "failed to fetch appointments: connection refused", err.Error())
	assert.True(t, err.Override)
	require.NotNil(t, err.Action)
	assert.Equal(t, ActionTypeRetry, err.Action.Type)
}

func TestHTTPErrorMatching(t *testing.T) {
	code := "CLIENT_MISSING"
	base := NewNotFoundError("missing", false, &code)
	wrapped := fmt.Errorf("loading: %w", base)

	var httpErr *HTTPError
	require.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, "CLIENT_MISSING", httpErr.Code)
	assert.True(t, errors.Is(wrapped, &HTTPError{}))

	copied := base.WithMessage("still missing")
	assert.Equal(t, "still missing", copied.Message)
	assert.Equal(t, "missing", base.Message)
	assert.Equal(t, base.Code, copied.Code)
}
