package sqlerr

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/opsboard/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrCode returns the Code of the first *Error in err's chain, or Other.
func ErrCode(err error) Code {
	var pgerr *Error
	if errors.As(err, &pgerr) {
		return pgerr.Code
	}
	return Other
}

// ConvertPgError keeps the original SQLSTATE and maps it to our enums.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// getEntityName prefers a "<entity>_id" column, then the singular table name.
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		return humanizeText(strings.TrimSuffix(strings.ToLower(columnName), "_id"))
	}

	if tableName != "" {
		entity := tableName
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return humanizeText(entity)
	}

	return "record"
}

func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// HandleError converts a repository error into an *errs.HTTPError.
//
//   - *errs.HTTPError passes through
//   - an unreachable or unusable data source becomes a 503 carrying the
//     "failed to fetch <table>: <cause>" message
//   - no rows becomes 404
//   - everything else is a 500
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var fetchErr *FetchError
	isFetch := errors.As(err, &fetchErr)

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)

		switch {
		case isFetch:
			return errs.NewDataSourceError(fetchErr.Error())
		case sqlErr.Code.Unavailable():
			return errs.NewDataSourceError(sqlErr.Message)
		default:
			return errs.NewInternalServerError()
		}
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		if isFetch {
			return errs.NewNotFoundError(fmt.Sprintf("%s not found", getEntityName(fetchErr.Table, "")), true, nil)
		}
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	if isFetch || errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		msg := err.Error()
		if isFetch {
			msg = fetchErr.Error()
		}
		return errs.NewDataSourceError(msg)
	}

	return errs.NewInternalServerError()
}
