package services

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/custodia-labs/hybra-cli/internal/core/domain"
	"github.com/custodia-labs/hybra-cli/internal/core/ports/driving"
	"github.com/custodia-labs/hybra-cli/internal/logger"
)

// Ensure SampleService implements the interface.
var _ driving.SampleService = (*SampleService)(nil)

// SampleService draws reproducible simple random samples.
type SampleService struct {
	exporter driving.ExportService
}

// NewSampleService creates a sample service. The exporter receives
// samples that name an ExportFile; it may be nil when no sample does.
func NewSampleService(exporter driving.ExportService) *SampleService {
	return &SampleService{exporter: exporter}
}

// Sample draws opts.Size records without replacement. The same records,
// size and seed always produce the same sample in the same order.
func (s *SampleService) Sample(ctx context.Context, records []domain.Record, opts domain.SampleOptions) ([]domain.Record, error) {
	n, k := len(records), opts.Size
	if k < 0 || k > n {
		return nil, fmt.Errorf("%w: size %d of %d records", domain.ErrSampleOutOfRange, k, n)
	}

	rng := rand.New(rand.NewPCG(uint64(opts.Seed), 0))

	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}

	out := make([]domain.Record, k)
	for i := 0; i < k; i++ {
		j := rng.IntN(n - i)
		out[i] = records[pool[j]]
		pool[j] = pool[n-i-1]
	}

	logger.Debug("sampled %d of %d records with seed %d", k, n, opts.Seed)

	if opts.ExportFile != "" {
		if s.exporter == nil {
			return nil, fmt.Errorf("%w: no exporter for %s", domain.ErrUnsupportedFormat, opts.ExportFile)
		}
		s.exporter.Export(ctx, out, opts.ExportFile)
	}

	return out, nil
}
