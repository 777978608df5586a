// Package sources collects the release sources packages can name.
package sources

import (
	"sort"

	"go.trai.ch/lift/internal/core/ports"
)

// Registry implements ports.SourceRegistry.
type Registry struct {
	sources map[string]ports.ReleaseSource
}

var _ ports.SourceRegistry = (*Registry)(nil)

// NewRegistry registers each source under its Name. Later sources replace
// earlier ones with the same name.
func NewRegistry(sources ...ports.ReleaseSource) *Registry {
	r := &Registry{sources: make(map[string]ports.ReleaseSource, len(sources))}
	for _, s := range sources {
		r.sources[s.Name()] = s
	}
	return r
}

// Lookup returns the source registered as name.
func (r *Registry) Lookup(name string) (ports.ReleaseSource, bool) {
	s, ok := r.sources[name]
	return s, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
