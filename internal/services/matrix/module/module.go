// Package module wires the matrix planner and exposes its ports
package module

import (
	"confmatrix/internal/modkit"
	"confmatrix/internal/modkit/httpkit"

	"confmatrix/internal/services/matrix/service"
)

// Module defines the matrix module
type Module struct {
	deps  modkit.Deps
	opts  Options
	ports Ports
}

// New constructs the matrix module; non-zero overrides win over config
func New(deps modkit.Deps, overrides Options) *Module {
	opts := FromConfig(deps.Cfg)
	if overrides.MaxSpace != 0 {
		opts.MaxSpace = overrides.MaxSpace
	}
	if overrides.DefaultBound != 0 {
		opts.DefaultBound = overrides.DefaultBound
	}

	svc := service.New(service.Config{MaxSpace: opts.MaxSpace, DefaultBound: opts.DefaultBound})

	deps.Log.Debug().Int("max_space", opts.MaxSpace).Int("default_bound", opts.DefaultBound).Msg("matrix module ready")
	return &Module{deps: deps, opts: opts, ports: Ports{Planner: svc}}
}

// Name returns the module name
func (m *Module) Name() string { return "matrix" }

// Ports returns the module ports (Planner)
func (m *Module) Ports() any { return m.ports }

// Options returns the effective options
func (m *Module) Options() Options { return m.opts }

// Prefix returns the module route prefix (none, routes live in the api module)
func (m *Module) Prefix() string { return "" }

// MountRoutes returns no HTTP routes for matrix
func (m *Module) MountRoutes(_ httpkit.Router) {}
