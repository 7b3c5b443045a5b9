// Package module wires the report service to its configured source and exposes its ports
package module

import (
	"confmatrix/internal/modkit"
	"confmatrix/internal/modkit/httpkit"
	perr "confmatrix/internal/platform/errors"

	"confmatrix/internal/services/report/domain"
	"confmatrix/internal/services/report/repo"
	"confmatrix/internal/services/report/service"
)

// Module defines the report module
type Module struct {
	deps  modkit.Deps
	opts  Options
	ports Ports
}

// New constructs the report module; non-zero overrides win over config
// pg and ch sources need the matching store handle in deps
func New(deps modkit.Deps, overrides Options) (*Module, error) {
	opts := FromConfig(deps.Cfg)
	if overrides.Source != "" {
		opts.Source = overrides.Source
	}
	if overrides.File != "" {
		opts.File = overrides.File
	}
	if overrides.Table != "" {
		opts.Table = overrides.Table
	}
	if overrides.Timeout != 0 {
		opts.Timeout = overrides.Timeout
	}

	src, err := source(deps, opts)
	if err != nil {
		return nil, err
	}

	deps.Log.Debug().Str("source", opts.Source).Msg("report module ready")
	return &Module{deps: deps, opts: opts, ports: Ports{Reporter: service.New(src)}}, nil
}

func source(deps modkit.Deps, opts Options) (domain.SourcePort, error) {
	switch opts.Source {
	case SourceFile, "":
		return repo.File{Path: opts.File}, nil
	case SourcePG:
		if deps.PG == nil {
			return nil, perr.New(perr.ErrorCodeConfiguration, "report source pg needs SERVICE_PGSQL_DBURL")
		}
		return repo.NewPGSource(deps.PG, repo.NewPG(opts.Table), opts.Timeout), nil
	case SourceCH:
		if deps.CH == nil {
			return nil, perr.New(perr.ErrorCodeConfiguration, "report source ch needs SERVICE_CLICKHOUSE_DBURL")
		}
		return repo.NewCHSource(deps.CH, opts.Table), nil
	default:
		return nil, perr.WithField(perr.InvalidArgf("unknown report source %q", opts.Source), "source")
	}
}

// Name returns the module name
func (m *Module) Name() string { return "report" }

// Ports returns the module ports (Reporter)
func (m *Module) Ports() any { return m.ports }

// Options returns the effective options
func (m *Module) Options() Options { return m.opts }

// Prefix returns the module route prefix (none, routes live in the api module)
func (m *Module) Prefix() string { return "" }

// MountRoutes returns no HTTP routes for report
func (m *Module) MountRoutes(_ httpkit.Router) {}
