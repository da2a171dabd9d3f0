package nodedef

import "sort"

// Registry is the node definition table. It is populated by the loader (or
// by tests via NewRegistry) and read-only afterwards, so it may be shared
// across concurrent compilations without synchronization.
type Registry struct {
	definitions map[string]*Definition
}

// NewRegistry builds a registry from pre-constructed definitions.
func NewRegistry(defs ...*Definition) *Registry {
	r := &Registry{definitions: make(map[string]*Definition, len(defs))}
	for _, def := range defs {
		r.definitions[def.Type] = def
	}
	return r
}

// Get returns the definition for a node type.
func (r *Registry) Get(nodeType string) (*Definition, bool) {
	def, ok := r.definitions[nodeType]
	return def, ok
}

// Len returns the number of registered node types.
func (r *Registry) Len() int {
	return len(r.definitions)
}

// Types returns all registered node type names, sorted.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.definitions))
	for t := range r.definitions {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
