// Package module defines the contract API modules satisfy and how their ports are found
package module

import (
	phttp "confmatrix/internal/platform/net/http"
)

// Module mounts routes and exposes a port set for other modules
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
