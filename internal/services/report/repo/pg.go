package repo

import (
	"context"
	"time"

	"confmatrix/internal/modkit/repokit"
	perr "confmatrix/internal/platform/errors"
	pnet "confmatrix/internal/platform/net"
	"confmatrix/internal/platform/store"
	"confmatrix/internal/platform/store/pg"
	"confmatrix/internal/services/report/domain"

	"github.com/jackc/pgx/v5"
)

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{ Table string }
	// queries implements the Repo interface
	queries struct {
		q     repokit.Queryer
		table string
	}
)

// NewPG returns a binder for table, which must hold a doc column of jsonb or text and an id column
func NewPG(table string) repokit.Binder[Repo] { return PG{Table: table} }

// Bind wires a Queryer to the repo
func (p PG) Bind(q repokit.Queryer) Repo { return &queries{q: q, table: p.Table} }

func (r *queries) Docs(ctx context.Context) ([][]byte, error) {
	if err := checkTable(r.table); err != nil {
		return nil, err
	}
	sql := `select doc::text from ` + pgIdent(r.table) + ` order by id`
	docs, err := store.Many(ctx, r.q, scanDoc, sql)
	if err != nil {
		return nil, perr.FromPostgresf(err, "load experiments from %s", r.table)
	}
	return docs, nil
}

func pgIdent(table string) string {
	return pgx.Identifier(splitTable(table)).Sanitize()
}

// PGSource loads experiments through a read only transaction with a statement timeout
type PGSource struct {
	db     repokit.TxRunner
	binder repokit.Binder[Repo]
}

var _ domain.SourcePort = (*PGSource)(nil)

// NewPGSource constructs a postgres source; timeout <= 0 keeps the server default
func NewPGSource(db repokit.TxRunner, binder repokit.Binder[Repo], timeout time.Duration) *PGSource {
	if db == nil {
		panic("report.PGSource requires a non nil TxRunner")
	}
	if binder == nil {
		panic("report.PGSource requires a non nil Repo binder")
	}
	return &PGSource{db: repokit.WithBeginHooks(db, repokit.StatementTimeout(timeout)), binder: binder}
}

// Load reads every document in id order
func (s *PGSource) Load(ctx context.Context) ([]domain.Experiment, error) {
	ctx = pg.WithRequestID(ctx, pnet.RequestID(ctx))

	var raw [][]byte
	err := repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		var err error
		raw, err = repokit.MustBind(s.binder, q).Docs(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return decodeDocs(raw)
}
