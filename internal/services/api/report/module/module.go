// Package module wires the report endpoints into the API using modkit
package module

import (
	modkit "confmatrix/internal/modkit"
	"confmatrix/internal/modkit/httpkit"
	str "confmatrix/internal/platform/strings"

	reporthttp "confmatrix/internal/services/api/report/http"
	reportmod "confmatrix/internal/services/report/module"
)

// Module implements the report api module
type Module struct {
	deps  modkit.Deps
	built modkit.Built
	ports reportmod.Ports
}

// New constructs the report api module
// the reporter comes from the report module via modkit.WithPorts(reportmod.Ports{...})
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("api.report"), modkit.WithPrefix("/report")}, opts...)...)

	ports, ok := b.Ports.(reportmod.Ports)
	if !ok || ports.Reporter == nil {
		panic("api report module requires report Ports with a Reporter")
	}
	return &Module{deps: deps, built: b, ports: ports}
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(sub httpkit.Router) { reporthttp.Register(sub, m.ports.Reporter) })
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.built.Name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.built.Prefix) }

// Ports returns nil, the reporter is owned by the report module
func (m *Module) Ports() any { return nil }
