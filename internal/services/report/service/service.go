// Package service filters and groups experiment documents into chart series
package service

import (
	"context"
	"strconv"
	"strings"

	perr "confmatrix/internal/platform/errors"
	"confmatrix/internal/platform/logger"
	"confmatrix/internal/platform/net/http/bind"
	"confmatrix/internal/services/report/domain"

	"github.com/google/cel-go/cel"
	"github.com/ohler55/ojg/jp"
)

// Service defines the report contract
type Service interface {
	domain.ReporterPort
}

// Svc implements the report service over one source
type Svc struct {
	src domain.SourcePort
	env *cel.Env
}

// New constructs a report service
func New(src domain.SourcePort) *Svc {
	if src == nil {
		panic("report.Service requires a non nil SourcePort")
	}
	env, err := newEnv()
	if err != nil {
		panic("report.Service: cel environment: " + err.Error())
	}
	return &Svc{src: src, env: env}
}

// Build loads every experiment from the source and runs q over them
func (s *Svc) Build(ctx context.Context, q domain.Query) (domain.Report, error) {
	if err := bind.Struct(q); err != nil {
		return domain.Report{}, err
	}
	pl, err := s.plan(q)
	if err != nil {
		return domain.Report{}, err
	}
	exps, err := s.src.Load(ctx)
	if err != nil {
		return domain.Report{}, err
	}
	return s.run(ctx, q, pl, exps)
}

// Run runs q over exps without touching the source
func (s *Svc) Run(ctx context.Context, q domain.Query, exps []domain.Experiment) (domain.Report, error) {
	if err := bind.Struct(q); err != nil {
		return domain.Report{}, err
	}
	pl, err := s.plan(q)
	if err != nil {
		return domain.Report{}, err
	}
	return s.run(ctx, q, pl, exps)
}

// compiled is a query with its paths parsed and filters compiled
type compiled struct {
	x, y, group jp.Expr
	preds       []predicate
}

func (s *Svc) plan(q domain.Query) (compiled, error) {
	var (
		c   compiled
		err error
	)
	if c.x, err = parsePath("x_axis", q.XAxis); err != nil {
		return c, err
	}
	if c.y, err = parsePath("y_axis", q.YAxis); err != nil {
		return c, err
	}
	group := q.GroupBy
	if strings.TrimSpace(group) == "" {
		group = domain.DefaultGroupBy
	}
	if c.group, err = parsePath("group_by", group); err != nil {
		return c, err
	}
	c.preds, err = compile(s.env, q.Filters)
	return c, err
}

func (s *Svc) run(ctx context.Context, q domain.Query, pl compiled, exps []domain.Experiment) (domain.Report, error) {
	log := logger.C(ctx).With().Str("component", "report").Logger()
	if err := ctx.Err(); err != nil {
		return domain.Report{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "canceled")
	}

	kept := exps
	for i, p := range pl.preds {
		next := kept[:0:0]
		failed := 0
		for _, e := range kept {
			ok, err := p(e)
			if err != nil {
				failed++
				continue
			}
			if ok {
				next = append(next, e)
			}
		}
		if failed > 0 {
			log.Warn().Int("filter", i).Int("experiments", failed).Msg("filter expression failed, experiments dropped")
		}
		kept = next
	}

	rep := domain.Report{Loaded: len(exps), Matched: len(kept), Legend: []domain.LegendEntry{}, Series: []domain.Series{}}
	var (
		cur     *domain.Series
		curKey  any
		started bool
	)
	for _, e := range kept {
		x, okX := first(pl.x, e)
		y, okY := first(pl.y, e)
		if !okX || !okY {
			rep.Skipped++
			continue
		}
		key := selected(pl.group, without(e, pl.x))
		if !started || !equal(key, curKey) {
			label := strconv.Itoa(len(rep.Series))
			rep.Legend = append(rep.Legend, domain.LegendEntry{Label: label, Params: key})
			rep.Series = append(rep.Series, domain.Series{Label: label})
			cur = &rep.Series[len(rep.Series)-1]
			curKey, started = key, true
		}
		cur.X = append(cur.X, x)
		cur.Y = append(cur.Y, y)
	}
	if rep.Skipped > 0 {
		log.Warn().Int("experiments", rep.Skipped).Str("x_axis", q.XAxis).Str("y_axis", q.YAxis).Msg("experiments without x or y skipped")
	}

	log.Info().Int("loaded", rep.Loaded).Int("matched", rep.Matched).Int("series", len(rep.Series)).Msg("report built")
	return rep, nil
}
