package tui

import "errors"

// ErrMissingDatasetService is returned when the dataset service is not provided.
var ErrMissingDatasetService = errors.New("tui: dataset service is required")

// ErrMissingFilterService is returned when the filter service is not provided.
var ErrMissingFilterService = errors.New("tui: filter service is required")
