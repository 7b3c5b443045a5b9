package errors

// ClickHouse helpers, the counterpart of pg.go

import (
	"context"
	stderrs "errors"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// server exception codes seen on the read path
const (
	chErrUnknownIdentifier  int32 = 47
	chErrUnknownTable       int32 = 60
	chErrUnknownDatabase    int32 = 81
	chErrTimeoutExceeded    int32 = 159
	chErrTooManyQueries     int32 = 202
	chErrCannotParseText    int32 = 6
	chErrAuthenticateFailed int32 = 516
)

// ExtractCHException returns the server exception at the root of err
func ExtractCHException(err error) (*clickhouse.Exception, bool) {
	var ex *clickhouse.Exception
	if stderrs.As(err, &ex) {
		return ex, true
	}
	return nil, false
}

// CHErrorCode maps a ClickHouse error to an ErrorCode
// ok is false when err carries no server exception
func CHErrorCode(err error) (ErrorCode, bool) {
	if stderrs.Is(err, context.DeadlineExceeded) {
		return ErrorCodeUnavailable, true
	}
	ex, ok := ExtractCHException(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	switch ex.Code {
	case chErrUnknownTable, chErrUnknownDatabase:
		return ErrorCodeNotFound, true
	case chErrUnknownIdentifier, chErrCannotParseText:
		return ErrorCodeInvalidArgument, true
	case chErrTimeoutExceeded, chErrTooManyQueries, chErrAuthenticateFailed:
		return ErrorCodeUnavailable, true
	}
	return ErrorCodeDB, true
}

// FromClickHouse wraps err with its mapped code, nil stays nil
func FromClickHouse(err error, msg string) error {
	if err == nil {
		return nil
	}
	code, ok := CHErrorCode(err)
	if !ok {
		code = ErrorCodeDB
	}
	return &Error{code: code, msg: msg, orig: err}
}

// FromClickHousef is FromClickHouse with formatting
func FromClickHousef(err error, format string, a ...any) error {
	return FromClickHouse(err, fmt.Sprintf(format, a...))
}
