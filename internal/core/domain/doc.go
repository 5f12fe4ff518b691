// Package domain defines the core business entities for hybra.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Record: A single dataset entry (a post, a tweet, an article)
//   - TextQuery, FilterCriteria: Selection criteria for the filters
//   - SampleOptions: Parameters for deterministic sampling
//   - DatasetSummary, Count: Descriptive summaries of a dataset
//   - TimelineBucket, Graph: Data behind the visualisations
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
