package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownSource indicates no loader is registered for a data source.
	ErrUnknownSource = errors.New("unknown data source")

	// ErrUnsupportedFormat indicates no exporter is registered for a file extension.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrSampleOutOfRange indicates a sample size below zero or larger than the population.
	ErrSampleOutOfRange = errors.New("sample larger than population or is negative")

	// ErrNoDataDir indicates the data directory is not configured.
	ErrNoDataDir = errors.New("data directory not configured")

	// ErrScriptFailed indicates an external analysis script exited with an error.
	ErrScriptFailed = errors.New("analysis script failed")
)
