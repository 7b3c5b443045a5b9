package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestDBErrorCode(t *testing.T) {
	cases := []struct {
		code string
		want ErrorCode
	}{
		{"42P01", ErrorCodeNotFound},
		{"42703", ErrorCodeInvalidArgument},
		{"22P02", ErrorCodeInvalidArgument},
		{"22032", ErrorCodeInvalidArgument},
		{"57014", ErrorCodeUnavailable},
		{"57P01", ErrorCodeUnavailable},
		{"57P03", ErrorCodeUnavailable},
		{"42501", ErrorCodeUnavailable},
		{"XXXXX", ErrorCodeDB},
	}
	for _, c := range cases {
		got, ok := DBErrorCode(fmt.Errorf("query: %w", &pgconn.PgError{Code: c.code}))
		if !ok || got != c.want {
			t.Fatalf("DBErrorCode(%s) = %v %v, want %v", c.code, got, ok, c.want)
		}
	}

	if got, ok := DBErrorCode(pgx.ErrNoRows); !ok || got != ErrorCodeNotFound {
		t.Fatalf("ErrNoRows = %v %v", got, ok)
	}
	if got, ok := DBErrorCode(context.DeadlineExceeded); !ok || got != ErrorCodeUnavailable {
		t.Fatalf("deadline = %v %v", got, ok)
	}
	if _, ok := DBErrorCode(stderrs.New("nope")); ok {
		t.Fatalf("non-pg error should not map")
	}
}

func TestFromPostgres(t *testing.T) {
	if FromPostgres(nil, "x") != nil {
		t.Fatalf("nil should stay nil")
	}

	err := FromPostgresf(&pgconn.PgError{Code: "42703", ColumnName: "doc"}, "load %s", "experiments")
	e, ok := As(err)
	if !ok || e.Code() != ErrorCodeInvalidArgument || e.Field() != "doc" {
		t.Fatalf("FromPostgres = %+v", e)
	}
	if !IsUndefinedTable(&pgconn.PgError{Code: "42P01"}) {
		t.Fatalf("IsUndefinedTable false")
	}
	if got := CodeOf(FromPostgres(stderrs.New("conn reset"), "load")); got != ErrorCodeDB {
		t.Fatalf("foreign error code = %v", got)
	}
}

func TestCHErrorCode(t *testing.T) {
	cases := []struct {
		code int32
		want ErrorCode
	}{
		{60, ErrorCodeNotFound},
		{81, ErrorCodeNotFound},
		{47, ErrorCodeInvalidArgument},
		{6, ErrorCodeInvalidArgument},
		{159, ErrorCodeUnavailable},
		{202, ErrorCodeUnavailable},
		{516, ErrorCodeUnavailable},
		{1, ErrorCodeDB},
	}
	for _, c := range cases {
		err := fmt.Errorf("query: %w", &clickhouse.Exception{Code: c.code, Message: "boom"})
		got, ok := CHErrorCode(err)
		if !ok || got != c.want {
			t.Fatalf("CHErrorCode(%d) = %v %v, want %v", c.code, got, ok, c.want)
		}
	}
	if _, ok := CHErrorCode(stderrs.New("nope")); ok {
		t.Fatalf("non-ch error should not map")
	}
	if got := CodeOf(FromClickHousef(&clickhouse.Exception{Code: 60}, "load %s", "t")); got != ErrorCodeNotFound {
		t.Fatalf("FromClickHouse code = %v", got)
	}
	if FromClickHouse(nil, "x") != nil {
		t.Fatalf("nil should stay nil")
	}
}
