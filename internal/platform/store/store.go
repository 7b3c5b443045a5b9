// Package store opens the optional read-only backends experiment documents are loaded from
package store

import (
	"context"
	"errors"
	"fmt"

	"confmatrix/internal/platform/logger"
)

// Store holds the backends enabled in Config
// the zero value is usable and has none
type Store struct {
	Log logger.Logger

	// PG is nil unless Postgres is enabled
	PG TxRunner

	// CH is nil unless ClickHouse is enabled
	CH Clickhouse
}

// Row is a single row result
type Row interface {
	Scan(dest ...any) error
}

// Rows is a result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// Queryable runs statements that return rows
type Queryable interface {
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
}

// Querier is the SQL read surface repos use
type Querier interface {
	Queryable
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner runs fn inside a read only transaction so every statement sees one snapshot
type TxRunner interface {
	Querier
	Tx(ctx context.Context, fn func(q Querier) error) error
}

// Clickhouse is the columnar read surface
type Clickhouse interface {
	Queryable
	Ping(ctx context.Context) error
	Close() error
}

// Pinger reports readiness
type Pinger interface{ Ping(context.Context) error }

// Open builds a Store with the backends cfg enables
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	cfg, set, err := apply(cfg, opts)
	if err != nil {
		return nil, err
	}
	s := &Store{Log: set.log.With().Str("app", cfg.AppName).Logger()}

	if cfg.PG.Enabled {
		p, err := openPG(ctx, cfg, s)
		if err != nil {
			return nil, err
		}
		s.PG = p
	}
	if cfg.CH.Enabled {
		c, err := openCH(ctx, cfg)
		if err != nil {
			_ = s.Close()
			return nil, err
		}
		s.CH = c
	}
	return s, nil
}

// Guard pings every enabled backend
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	var errs []error
	if p, ok := s.PG.(Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("pg: %w", err))
		}
	}
	if s.CH != nil {
		if err := s.CH.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("ch: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Close closes every enabled backend
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.CH != nil {
		if err := s.CH.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if c, ok := s.PG.(interface{ Close() error }); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
