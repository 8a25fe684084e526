package tool

import "errors"

// ErrToolNotFound is returned by Lookup for an unregistered name.
var ErrToolNotFound = errors.New("tool not found")

type entry struct {
	desc    Descriptor
	invoker Invoker
}

// Registry maps tool names to their declaration and implementation.  It is
// filled once at startup and read-only afterwards.
type Registry struct {
	entries map[string]entry
	order   []string
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds a tool.  Registering the same name twice replaces the
// earlier entry but keeps its position.
func (r *Registry) Register(desc Descriptor, inv Invoker) {
	if _, ok := r.entries[desc.Name]; !ok {
		r.order = append(r.order, desc.Name)
	}
	r.entries[desc.Name] = entry{desc: desc, invoker: inv}
}

// Lookup returns the invoker registered under name.
func (r *Registry) Lookup(name string) (Invoker, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, ErrToolNotFound
	}
	return e.invoker, nil
}

// Descriptors lists the registered tools in registration order.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.entries[name].desc)
	}
	return out
}
