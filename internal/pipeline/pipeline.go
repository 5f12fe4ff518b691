package pipeline

import (
	"context"
	"fmt"

	"github.com/custodia-labs/hybra-cli/internal/core/domain"
	"github.com/custodia-labs/hybra-cli/internal/logger"
)

// Pipeline chains stages and runs them in order, each receiving the
// output of the one before.
type Pipeline struct {
	stages []Stage
}

// NewPipeline creates a pipeline running stages in the order provided.
func NewPipeline(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

// Run passes records through every stage. An empty pipeline returns
// a copy of its input.
func (p *Pipeline) Run(ctx context.Context, records []domain.Record) ([]domain.Record, error) {
	out := append(make([]domain.Record, 0, len(records)), records...)

	for _, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		before := len(out)
		var err error
		out, err = stage.Run(ctx, out)
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", stage.Name(), err)
		}
		logger.Debug("stage %s: %d -> %d records", stage.Name(), before, len(out))
	}

	return out, nil
}

// Add appends a stage to the pipeline.
func (p *Pipeline) Add(stage Stage) {
	p.stages = append(p.stages, stage)
}

// Len returns the number of stages in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.stages)
}

// Names returns the stage names in run order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name()
	}
	return names
}
