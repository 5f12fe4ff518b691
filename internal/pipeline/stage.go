// Package pipeline chains named record stages into reusable pipelines.
//
// Stages are built by name from generic configuration, which lets a
// recipe file describe a whole filter-sample-export run:
//
//	source: twitter
//	stages:
//	  - name: text
//	    terms: [cat, dog]
//	  - name: sample
//	    size: 100
//	export: sample.csv
package pipeline

import (
	"context"

	"github.com/custodia-labs/hybra-cli/internal/core/domain"
)

// Stage transforms a slice of records into a new slice.
// Stages must not mutate the records they receive.
type Stage interface {
	// Name returns the stage name for logging and errors.
	Name() string

	// Run returns the records that pass the stage.
	Run(ctx context.Context, records []domain.Record) ([]domain.Record, error)
}

// StageFunc adapts a function to the Stage interface.
type StageFunc struct {
	name string
	fn   func(ctx context.Context, records []domain.Record) ([]domain.Record, error)
}

// NewStageFunc creates a named stage from fn.
func NewStageFunc(name string, fn func(ctx context.Context, records []domain.Record) ([]domain.Record, error)) *StageFunc {
	return &StageFunc{name: name, fn: fn}
}

// Name returns the stage name.
func (s *StageFunc) Name() string {
	return s.name
}

// Run calls the wrapped function.
func (s *StageFunc) Run(ctx context.Context, records []domain.Record) ([]domain.Record, error) {
	return s.fn(ctx, records)
}
