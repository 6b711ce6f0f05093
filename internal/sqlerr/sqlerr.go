// Package sqlerr normalizes PostgreSQL driver errors and maps them to API
// errors.
//
// Every query in this service is a read. Reads that fail because the
// database is unreachable, overloaded or missing a table surface as 503
// DATA_SOURCE_UNAVAILABLE, and pgx.ErrNoRows becomes 404.
package sqlerr

import (
	"fmt"
	"strings"
)

// Code is a coarse category for a SQLSTATE.
type Code string

const (
	Other                 Code = "other"
	DeadlockDetected      Code = "deadlock_detected"
	TooManyConnections    Code = "too_many_connections"
	ConnectionFailure     Code = "connection_failure"
	QueryCanceled         Code = "query_canceled"
	AdminShutdown         Code = "admin_shutdown"
	UndefinedTable        Code = "undefined_table"
	UndefinedColumn       Code = "undefined_column"
	InsufficientPrivilege Code = "insufficient_privilege"
)

// MapCode maps a SQLSTATE to a Code.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html.
func MapCode(sqlState string) Code {
	switch sqlState {
	case "40P01":
		return DeadlockDetected
	case "53300":
		return TooManyConnections
	case "57014":
		return QueryCanceled
	case "57P01", "57P02", "57P03":
		return AdminShutdown
	case "42P01":
		return UndefinedTable
	case "42703":
		return UndefinedColumn
	case "42501":
		return InsufficientPrivilege
	}

	// Class 08 is "Connection Exception".
	if strings.HasPrefix(sqlState, "08") {
		return ConnectionFailure
	}
	return Other
}

// Unavailable reports whether the code means the data source cannot serve
// reads right now, as opposed to a bad request.
func (c Code) Unavailable() bool {
	switch c {
	case TooManyConnections, ConnectionFailure, QueryCanceled, AdminShutdown,
		UndefinedTable, UndefinedColumn, InsufficientPrivilege, DeadlockDetected:
		return true
	}
	return false
}

type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

func MapSeverity(severity string) Severity {
	switch strings.ToUpper(severity) {
	case "FATAL":
		return SeverityFatal
	case "PANIC":
		return SeverityPanic
	case "WARNING":
		return SeverityWarning
	case "NOTICE":
		return SeverityNotice
	case "DEBUG":
		return SeverityDebug
	case "INFO":
		return SeverityInfo
	case "LOG":
		return SeverityLog
	default:
		return SeverityError
	}
}

// Error is a driver error reduced to the fields the API cares about.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
	driverErr      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Severity, e.DatabaseCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// FetchError is a failed read of a whole table. Its message is the one shown
// to dashboard users: "failed to fetch <table>: <cause>".
type FetchError struct {
	Table string
	Err   error
}

func NewFetchError(table string, err error) *FetchError {
	return &FetchError{Table: table, Err: err}
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.Table, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
