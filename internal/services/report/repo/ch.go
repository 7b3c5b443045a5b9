package repo

import (
	"context"
	"strings"

	perr "confmatrix/internal/platform/errors"
	"confmatrix/internal/platform/store"
	"confmatrix/internal/services/report/domain"
)

// CHSource loads experiments from a clickhouse table with a String doc column
type CHSource struct {
	db    store.Queryable
	table string
}

var _ domain.SourcePort = (*CHSource)(nil)

// NewCHSource constructs a clickhouse source over table
func NewCHSource(db store.Queryable, table string) *CHSource {
	if db == nil {
		panic("report.CHSource requires a non nil clickhouse handle")
	}
	return &CHSource{db: db, table: table}
}

// Load reads every document in id order
func (s *CHSource) Load(ctx context.Context) ([]domain.Experiment, error) {
	if err := checkTable(s.table); err != nil {
		return nil, err
	}
	sql := `SELECT doc FROM ` + chIdent(s.table) + ` ORDER BY id`
	raw, err := store.Many(ctx, s.db, scanCHDoc, sql)
	if err != nil {
		return nil, perr.FromClickHousef(err, "load experiments from %s", s.table)
	}
	return decodeDocs(raw)
}

func chIdent(table string) string {
	parts := splitTable(table)
	for i, p := range parts {
		parts[i] = "`" + p + "`"
	}
	return strings.Join(parts, ".")
}

func scanCHDoc(r store.Row) ([]byte, error) {
	var s string
	if err := r.Scan(&s); err != nil {
		return nil, err
	}
	return []byte(s), nil
}
