// Package service runs the matrix core for callers: build, exclude, batch, render
package service

import (
	"context"
	"errors"

	"confmatrix/internal/adapters/dvc"
	"confmatrix/internal/core/batch"
	"confmatrix/internal/core/matrix"
	perr "confmatrix/internal/platform/errors"
	"confmatrix/internal/platform/logger"
	"confmatrix/internal/platform/net/http/bind"
	"confmatrix/internal/services/matrix/domain"
)

// Service defines the planner contract
type Service interface {
	domain.PlannerPort
}

// Config bounds what one call may ask for
type Config struct {
	MaxSpace     int // largest accepted product of axis cardinalities
	DefaultBound int // bound used when the input leaves it at 0
}

// DefaultConfig is used for zero fields
func DefaultConfig() Config { return Config{MaxSpace: 1_000_000, DefaultBound: 1} }

// Svc implements the planner
type Svc struct {
	cfg Config
}

// New constructs a planner, zero fields take DefaultConfig values
func New(cfg Config) *Svc {
	def := DefaultConfig()
	if cfg.MaxSpace <= 0 {
		cfg.MaxSpace = def.MaxSpace
	}
	if cfg.DefaultBound <= 0 {
		cfg.DefaultBound = def.DefaultBound
	}
	return &Svc{cfg: cfg}
}

// Config returns the effective configuration
func (s *Svc) Config() Config { return s.cfg }

type built struct {
	space  *matrix.Space
	filter *matrix.Filter
	bound  int
}

func (s *Svc) build(ctx context.Context, in domain.PlanInput) (built, error) {
	if err := bind.Struct(in); err != nil {
		return built{}, err
	}
	if err := ctx.Err(); err != nil {
		return built{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "canceled")
	}

	space, err := matrix.BuildAxisSpace(in.Axes, in.Variants)
	if err != nil {
		return built{}, configError(err)
	}
	if space.Size() > s.cfg.MaxSpace {
		return built{}, perr.WithField(perr.TooLargef("configuration space has %d configurations, limit is %d", space.Size(), s.cfg.MaxSpace), "variants")
	}

	rules := make([]matrix.Rule, len(in.Excludes))
	for i, ex := range in.Excludes {
		rules[i] = matrix.Rule(ex)
	}
	filter, err := matrix.BuildExcludeFilter(space, rules)
	if err != nil {
		return built{}, configError(err)
	}

	bound := in.Bound
	if bound == 0 {
		bound = s.cfg.DefaultBound
	}
	return built{space: space, filter: filter, bound: bound}, nil
}

// Plan builds the batch list for in
func (s *Svc) Plan(ctx context.Context, in domain.PlanInput) (domain.Plan, error) {
	b, err := s.build(ctx, in)
	if err != nil {
		return domain.Plan{}, err
	}

	batches, err := batch.GenerateBatches(b.space, b.filter, b.bound)
	if err != nil {
		return domain.Plan{}, configError(err)
	}

	out := domain.Plan{Test: in.Test, Batches: make([]domain.BatchView, len(batches))}
	for i, bt := range batches {
		d := batch.Serialize(bt, b.space)
		out.Batches[i] = domain.BatchView{
			Index:  i,
			Weight: bt.Weight(),
			Size:   bt.Len(),
			Axes:   d.Axes,
			DVC:    dvc.String(d),
		}
	}
	out.Stats = stats(b, len(batches))

	log := logger.C(logger.WithTest(ctx, in.Test)).With().Str("component", "matrix").Logger()
	log.Info().
		Int("configs", out.Stats.Space).
		Int("excluded", out.Stats.Excluded).
		Int("batches", out.Stats.Batches).
		Int("bound", b.bound).
		Msg("plan built")
	return out, nil
}

// Configurations lists every configuration of in, excluded ones flagged
func (s *Svc) Configurations(ctx context.Context, in domain.PlanInput) (domain.Listing, error) {
	b, err := s.build(ctx, in)
	if err != nil {
		return domain.Listing{}, err
	}

	out := domain.Listing{Test: in.Test, Axes: b.space.Names(), Rows: make([]domain.ConfigurationRow, 0, b.space.Size())}
	for e := range matrix.Listing(b.space, b.filter) {
		out.Rows = append(out.Rows, domain.ConfigurationRow{
			Ordinal:  b.space.Ordinal(e.Index),
			Values:   e.Values,
			Excluded: e.Excluded,
		})
	}
	out.Stats = stats(b, 0)
	return out, nil
}

// Descriptors returns the serialised batches of a plan, for writers that want the core form
func Descriptors(p domain.Plan) []batch.Descriptor {
	out := make([]batch.Descriptor, len(p.Batches))
	for i, bv := range p.Batches {
		out[i] = batch.Descriptor{Axes: bv.Axes}
	}
	return out
}

func stats(b built, batches int) domain.Stats {
	excluded := b.filter.Len()
	return domain.Stats{
		Space:    b.space.Size(),
		Excluded: excluded,
		Valid:    b.space.Size() - excluded,
		Batches:  batches,
		Bound:    b.bound,
	}
}

// configError maps a core ConfigurationError onto the platform error, keeping the axis as field
func configError(err error) error {
	var ce *matrix.ConfigurationError
	if !errors.As(err, &ce) {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "matrix")
	}
	code := perr.ErrorCodeConfiguration
	if errors.Is(err, matrix.ErrSpaceTooLarge) {
		code = perr.ErrorCodeTooLarge
	}
	return perr.WithOp(perr.WithField(perr.Wrap(err, code, "invalid configuration"), ce.Axis), ce.Op)
}
