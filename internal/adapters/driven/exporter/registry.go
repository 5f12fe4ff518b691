// Package exporter writes records to files.
//
// Each exporter handles one file extension. The registry is filled once
// at startup and looked up by exact extension, so supporting a new
// format is a matter of registering one more exporter.
package exporter

import (
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/hybra-cli/internal/core/domain"
	"github.com/custodia-labs/hybra-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ExporterRegistry = (*Registry)(nil)

// Registry maps file extensions to exporters.
type Registry struct {
	mu        sync.RWMutex
	exporters map[string]driven.Exporter
}

// NewRegistry creates an empty exporter registry.
func NewRegistry() *Registry {
	return &Registry{exporters: make(map[string]driven.Exporter)}
}

// Register adds an exporter under its Format, replacing any previous one.
func (r *Registry) Register(exporter driven.Exporter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exporters[exporter.Format()] = exporter
}

// Get returns the exporter registered for format.
func (r *Registry) Get(format string) (driven.Exporter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exporter, ok := r.exporters[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
	return exporter, nil
}

// Formats returns all registered formats, sorted.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	formats := make([]string, 0, len(r.exporters))
	for format := range r.exporters {
		formats = append(formats, format)
	}
	sort.Strings(formats)
	return formats
}

// NewDefaultRegistry returns a registry holding every built-in exporter.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}

// RegisterDefaults registers the built-in exporters.
func RegisterDefaults(r driven.ExporterRegistry) {
	r.Register(NewCSVExporter())
	r.Register(NewJSONExporter())
	r.Register(NewJSONLinesExporter())
	r.Register(NewYAMLExporter("yaml"))
	r.Register(NewYAMLExporter("yml"))
	r.Register(NewTOMLExporter())
	r.Register(NewXLSXExporter())
	r.Register(NewSQLiteExporter("sqlite"))
	r.Register(NewSQLiteExporter("db"))
}
