package driving

import (
	"context"

	"github.com/custodia-labs/hybra-cli/internal/core/domain"
)

// DatasetService loads datasets from the data directory.
type DatasetService interface {
	// Sources returns the names of the data sources that can be loaded.
	Sources() []string

	// Load reads the records of a data source.
	Load(ctx context.Context, source string, opts domain.LoadOptions) ([]domain.Record, error)

	// Versions describes the folders of the data directory.
	Versions(ctx context.Context) ([]domain.DataVersion, error)

	// DataDir returns the configured data directory.
	DataDir() string
}
