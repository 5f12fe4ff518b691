package driving

import (
	"context"

	"github.com/custodia-labs/hybra-cli/internal/core/domain"
)

// SampleService draws reproducible random subsets of records.
type SampleService interface {
	// Sample draws opts.Size records without replacement.
	// Returns ErrSampleOutOfRange if the size is negative or too large.
	Sample(ctx context.Context, records []domain.Record, opts domain.SampleOptions) ([]domain.Record, error)
}
