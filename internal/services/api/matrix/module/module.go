// Package module wires the matrix endpoints into the API using modkit
package module

import (
	modkit "confmatrix/internal/modkit"
	"confmatrix/internal/modkit/httpkit"
	str "confmatrix/internal/platform/strings"

	matrixhttp "confmatrix/internal/services/api/matrix/http"
	matrixmod "confmatrix/internal/services/matrix/module"
)

// Module implements the matrix api module
type Module struct {
	deps  modkit.Deps
	built modkit.Built
	ports matrixmod.Ports
}

// New constructs the matrix api module
// the planner comes from the matrix module via modkit.WithPorts(matrixmod.Ports{...})
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("api.matrix"), modkit.WithPrefix("/matrix")}, opts...)...)

	ports, ok := b.Ports.(matrixmod.Ports)
	if !ok || ports.Planner == nil {
		panic("api matrix module requires matrix Ports with a Planner")
	}
	return &Module{deps: deps, built: b, ports: ports}
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(sub httpkit.Router) { matrixhttp.Register(sub, m.ports.Planner) })
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.built.Name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.built.Prefix) }

// Ports returns nil, the planner is owned by the matrix module
func (m *Module) Ports() any { return nil }
