// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	modkit "confmatrix/internal/modkit"
	"confmatrix/internal/modkit/httpkit"
	str "confmatrix/internal/platform/strings"

	metahttp "confmatrix/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	deps  modkit.Deps
	built modkit.Built
	http  metahttp.Deps
}

// New constructs a meta module; modules lists the registered module names for /service
func New(deps modkit.Deps, service string, modules func() []string, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	m := &Module{deps: deps, built: b}
	m.http = metahttp.Deps{
		ServiceName: service,
		StartedAt:   time.Now(),
		Modules:     modules,
	}
	// typed nils would defeat the skipped check
	if deps.PG != nil {
		m.http.PG = deps.PG
	}
	if deps.CH != nil {
		m.http.CH = deps.CH
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(sub httpkit.Router) { metahttp.Register(sub, m.http) })
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.built.Name, "meta") }

// Prefix implements the modkit.Module interface
func (m *Module) Prefix() string { return str.MustPrefix(m.built.Prefix) }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
