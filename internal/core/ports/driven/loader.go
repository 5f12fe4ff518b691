package driven

import (
	"context"

	"github.com/custodia-labs/hybra-cli/internal/core/domain"
)

// Loader reads the records of one data source from disk.
type Loader interface {
	// Name returns the source name the loader is registered under.
	Name() string

	// Load reads every record found under dir.
	Load(ctx context.Context, dir string) ([]domain.Record, error)
}

// LoaderRegistry maps source names to loaders.
type LoaderRegistry interface {
	// Register adds a loader under its Name.
	Register(loader Loader)

	// Get returns the loader for a source.
	// Returns ErrUnknownSource if none is registered.
	Get(name string) (Loader, error)

	// Names returns all registered source names, sorted.
	Names() []string
}
