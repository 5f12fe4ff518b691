// Package loader reads social-media datasets from disk.
//
// Each data source is a directory of JSON or JSON Lines files. Raw
// entries are mapped onto records with per-source JMESPath
// expressions, so the same loader serves Twitter, Facebook and media
// dumps with different shapes.
package loader

import (
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/hybra-cli/internal/core/domain"
	"github.com/custodia-labs/hybra-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.LoaderRegistry = (*Registry)(nil)

// Registry maps source names to loaders.
type Registry struct {
	mu      sync.RWMutex
	loaders map[string]driven.Loader
}

// NewRegistry creates an empty loader registry.
func NewRegistry() *Registry {
	return &Registry{loaders: make(map[string]driven.Loader)}
}

// Register adds a loader under its Name, replacing any previous one.
func (r *Registry) Register(loader driven.Loader) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaders[loader.Name()] = loader
}

// Get returns the loader registered under name.
func (r *Registry) Get(name string) (driven.Loader, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	loader, ok := r.loaders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownSource, name)
	}
	return loader, nil
}

// Names returns all registered source names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.loaders))
	for name := range r.loaders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
