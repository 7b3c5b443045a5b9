package module

import (
	"slices"
	"sync"
)

// Registry maps module names to their port sets during bootstrap
type Registry struct {
	mu    sync.RWMutex
	ports map[string]any
}

// NewRegistry returns an empty Registry
func NewRegistry() *Registry { return &Registry{ports: map[string]any{}} }

// Add registers m's ports under m.Name(), replacing any previous entry
func (r *Registry) Add(m Module) {
	r.mu.Lock()
	r.ports[m.Name()] = m.Ports()
	r.mu.Unlock()
}

// Names returns the registered module names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.ports))
	for n := range r.ports {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// PortsAs fetches name's port set as T
func PortsAs[T any](r *Registry, name string) (T, bool) {
	r.mu.RLock()
	v, ok := r.ports[name]
	r.mu.RUnlock()
	out, ok2 := v.(T)
	return out, ok && ok2
}
