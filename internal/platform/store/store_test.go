package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"confmatrix/internal/platform/config"
	"confmatrix/internal/platform/store/ch"
	"confmatrix/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRows is an in-memory Rows over string columns
type fakeRows struct {
	cols   []string
	data   [][]any
	idx    int
	err    error
	closed bool
}

func newFakeRows(cols []string, data ...[]any) *fakeRows {
	return &fakeRows{cols: cols, data: data, idx: -1}
}

func (r *fakeRows) Next() bool {
	r.idx++
	return r.idx < len(r.data)
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.idx]
	if len(dest) != len(row) {
		return errors.New("scan arity")
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = row[i].(string)
		case *int:
			*p = row[i].(int)
		case *any:
			*p = row[i]
		default:
			return errors.New("unsupported dest")
		}
	}
	return nil
}

func (r *fakeRows) Err() error        { return r.err }
func (r *fakeRows) Close()            { r.closed = true }
func (r *fakeRows) Columns() []string { return r.cols }

type fakeQuerier struct {
	rows *fakeRows
	err  error
	sql  string
}

func (q *fakeQuerier) Query(_ context.Context, sql string, _ ...any) (Rows, error) {
	q.sql = sql
	if q.err != nil {
		return nil, q.err
	}
	return q.rows, nil
}

func (q *fakeQuerier) QueryRow(_ context.Context, sql string, _ ...any) Row {
	q.sql = sql
	return q.rows
}

func scanString(r Row) (string, error) {
	var s string
	err := r.Scan(&s)
	return s, err
}

func TestMany(t *testing.T) {
	t.Parallel()

	q := &fakeQuerier{rows: newFakeRows([]string{"doc"}, []any{"a"}, []any{"b"})}
	got, err := Many(context.Background(), q, scanString, "SELECT doc FROM t")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
	assert.True(t, q.rows.closed)
	assert.Equal(t, "SELECT doc FROM t", q.sql)

	q = &fakeQuerier{err: errors.New("boom")}
	_, err = Many(context.Background(), q, scanString, "SELECT 1")
	assert.EqualError(t, err, "boom")

	q = &fakeQuerier{rows: newFakeRows([]string{"doc"})}
	q.rows.err = errors.New("late")
	_, err = Many(context.Background(), q, scanString, "SELECT 1")
	assert.EqualError(t, err, "late")
}

func TestOne(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	q := &fakeQuerier{rows: newFakeRows([]string{"doc"}, []any{"a"})}
	got, err := One(ctx, q, scanString, "SELECT doc")
	require.NoError(t, err)
	assert.Equal(t, "a", got)

	q = &fakeQuerier{rows: newFakeRows([]string{"doc"})}
	_, err = One(ctx, q, scanString, "SELECT doc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no rows")

	q = &fakeQuerier{rows: newFakeRows([]string{"doc"}, []any{"a"}, []any{"b"})}
	_, err = One(ctx, q, scanString, "SELECT doc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "got more")
}

func TestScalarAndMaps(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	rs := newFakeRows([]string{"n"}, []any{7})
	rs.Next()
	n, err := Scalar[int](ctx, &fakeQuerier{rows: rs}, "SELECT 7")
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	q := &fakeQuerier{rows: newFakeRows([]string{"id", "doc"}, []any{1, "x"}, []any{2, "y"})}
	maps, err := Maps(ctx, q, "SELECT id, doc")
	require.NoError(t, err)
	assert.Equal(t, []map[string]any{{"id": 1, "doc": "x"}, {"id": 2, "doc": "y"}}, maps)
}

// pgx fakes for the traced querier

type pgxRow struct{ err error }

func (r pgxRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if p, ok := dest[0].(*int); ok {
		*p = 1
	}
	return nil
}

type pgxRows struct {
	pgx.Rows
	fields []pgconn.FieldDescription
}

func (r pgxRows) FieldDescriptions() []pgconn.FieldDescription { return r.fields }

type pgxFake struct {
	queryErr error
	rowErr   error
}

func (f pgxFake) Query(context.Context, string, ...any) (pgx.Rows, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return pgxRows{fields: []pgconn.FieldDescription{{Name: "id"}, {Name: "doc"}}}, nil
}

func (f pgxFake) QueryRow(context.Context, string, ...any) pgx.Row { return pgxRow{err: f.rowErr} }

type recTracer struct{ events []pg.QueryEvent }

func (r *recTracer) OnQuery(_ context.Context, ev pg.QueryEvent) { r.events = append(r.events, ev) }

func TestTraced_EmitsEvents(t *testing.T) {
	t.Parallel()

	tr := &recTracer{}
	q := traced{r: pgxFake{}, tracer: tr, slowUS: int64(time.Hour / time.Microsecond)}

	rs, err := q.Query(context.Background(), "SELECT id, doc FROM exps", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "doc"}, rs.Columns())

	var one int
	require.NoError(t, q.QueryRow(context.Background(), "SELECT 1").Scan(&one))
	assert.Equal(t, 1, one)

	require.Len(t, tr.events, 2)
	assert.Equal(t, "SELECT id, doc FROM exps", tr.events[0].SQL)
	assert.Equal(t, []any{1}, tr.events[0].Args)
	assert.False(t, tr.events[0].Slow)
	assert.NoError(t, tr.events[1].Err)
}

func TestTraced_ErrorsAreTraced(t *testing.T) {
	t.Parallel()

	tr := &recTracer{}
	q := traced{r: pgxFake{queryErr: errors.New("q"), rowErr: errors.New("r")}, tracer: tr}

	_, err := q.Query(context.Background(), "SELECT 1")
	assert.EqualError(t, err, "q")
	var x int
	assert.EqualError(t, q.QueryRow(context.Background(), "SELECT 1").Scan(&x), "r")

	require.Len(t, tr.events, 2)
	assert.EqualError(t, tr.events[0].Err, "q")
	assert.EqualError(t, tr.events[1].Err, "r")
}

func TestTraced_NoTracer(t *testing.T) {
	t.Parallel()

	q := traced{r: pgxFake{}}
	_, err := q.Query(context.Background(), "SELECT 1")
	assert.NoError(t, err)
}

type chFake struct {
	rows    *fakeRows
	pingErr error
	closed  bool
}

type chFakeRows struct{ *fakeRows }

func (r chFakeRows) Close() error { r.fakeRows.Close(); return nil }

func (c *chFake) Query(context.Context, string, ...any) (ch.Rows, error) {
	return chFakeRows{c.rows}, nil
}
func (c *chFake) Ping(context.Context) error { return c.pingErr }
func (c *chFake) Close() error               { c.closed = true; return nil }

func TestClickhouseAdapter(t *testing.T) {
	t.Parallel()

	f := &chFake{rows: newFakeRows([]string{"doc"}, []any{"{}"})}
	a := &clickhouseAdapter{inner: f}

	docs, err := Many(context.Background(), a, scanString, "SELECT doc FROM exps")
	require.NoError(t, err)
	assert.Equal(t, []string{"{}"}, docs)
	assert.True(t, f.rows.closed)

	s := &Store{CH: a}
	assert.NoError(t, s.Guard(context.Background()))
	f.pingErr = errors.New("down")
	assert.ErrorContains(t, s.Guard(context.Background()), "ch: down")

	assert.NoError(t, s.Close())
	assert.True(t, f.closed)
}

func TestClickhouseAdapter_Nil(t *testing.T) {
	t.Parallel()

	var a *clickhouseAdapter
	_, err := a.Query(context.Background(), "SELECT 1")
	assert.Error(t, err)
	assert.Error(t, a.Ping(context.Background()))
	assert.NoError(t, a.Close())
}

func TestOpen_NothingEnabled(t *testing.T) {
	t.Parallel()

	s, err := Open(context.Background(), Config{})
	require.NoError(t, err)
	assert.Nil(t, s.PG)
	assert.Nil(t, s.CH)
	assert.NoError(t, s.Guard(context.Background()))
	assert.NoError(t, s.Close())
}

func TestOpen_BadURLs(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), Config{PG: PGConfig{Enabled: true, URL: "postgres://localhost:notaport/exps"}})
	assert.Error(t, err)

	_, err = Open(context.Background(), Config{CH: CHConfig{Enabled: true}})
	assert.Error(t, err)
}

func TestOptions(t *testing.T) {
	t.Parallel()

	boom := func(*settings) error { return errors.New("opt") }
	_, err := Open(context.Background(), Config{}, boom)
	assert.EqualError(t, err, "opt")

	_, err = Open(context.Background(), Config{}, WithClient(" ", "cli", "dev"))
	assert.ErrorContains(t, err, "app name is empty")

	cfg, _, err := apply(Config{}, []Option{WithClient("confmatrix", "cli", "v1")})
	require.NoError(t, err)
	assert.Equal(t, "confmatrix", cfg.AppName)
	assert.Equal(t, "cli", cfg.Role)
	assert.Equal(t, "v1", cfg.Version)

	cfg, _, err = apply(Config{AppName: "fixed", Role: "api"}, []Option{WithClient("confmatrix", "cli", "v1")})
	require.NoError(t, err)
	assert.Equal(t, "fixed", cfg.AppName)
	assert.Equal(t, "api", cfg.Role)
	assert.Equal(t, "v1", cfg.Version)
}

func TestNilStore(t *testing.T) {
	t.Parallel()

	var s *Store
	assert.Error(t, s.Guard(context.Background()))
	assert.NoError(t, s.Close())
}

func TestFromEnv(t *testing.T) {
	t.Setenv("SERVICE_PGSQL_DBURL", "postgres://u:p@localhost:5432/exps")
	t.Setenv("SERVICE_PGSQL_MAX_CONNS", "9")
	t.Setenv("SERVICE_PGSQL_LOG_SQL", "true")
	t.Setenv("SERVICE_CLICKHOUSE_DBURL", "")

	cfg := FromEnv(config.New())
	assert.True(t, cfg.PG.Enabled)
	assert.Equal(t, int32(9), cfg.PG.MaxConns)
	assert.True(t, cfg.PG.LogSQL)
	assert.Equal(t, 500, cfg.PG.SlowQueryMs)
	assert.Equal(t, 3*time.Second, cfg.PG.PingTimeout)
	assert.False(t, cfg.CH.Enabled)
	assert.Equal(t, 5*time.Second, cfg.CH.DialTimeout)
}
