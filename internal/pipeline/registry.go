package pipeline

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/hybra-cli/internal/core/domain"
)

// BuilderFunc creates a Stage from generic config.
// Config is a map of stage-specific settings parsed from a recipe.
type BuilderFunc func(cfg map[string]any) (Stage, error)

// Registry maps stage names to their builders.
type Registry struct {
	builders map[string]BuilderFunc
}

// NewRegistry creates a new stage registry.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[string]BuilderFunc),
	}
}

// Register adds a stage builder to the registry, replacing any
// builder already registered under name.
func (r *Registry) Register(name string, builder BuilderFunc) {
	r.builders[name] = builder
}

// Build creates a stage by name with the given config.
func (r *Registry) Build(name string, cfg map[string]any) (Stage, error) {
	builder, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown stage %q", domain.ErrInvalidInput, name)
	}
	stage, err := builder(cfg)
	if err != nil {
		return nil, fmt.Errorf("stage %s: %w", name, err)
	}
	return stage, nil
}

// Has returns true if a stage with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.builders[name]
	return ok
}

// Names returns all registered stage names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
