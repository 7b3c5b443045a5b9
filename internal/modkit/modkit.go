// Package modkit wires API modules from shared deps and build options
package modkit

import "confmatrix/internal/modkit/module"

// Module is what every API module exposes, see module.Module
type Module = module.Module

// Builder constructs a Module from shared deps and options
type Builder func(Deps, ...Option) Module
