// Package mcp provides an MCP (Model Context Protocol) server adapter for hybra.
// It lets AI assistants filter and summarise the datasets under the data directory.
package mcp

import "errors"

var (
	// ErrMissingDatasetService is returned when the dataset service is not provided.
	ErrMissingDatasetService = errors.New("mcp: dataset service is required")

	// ErrMissingFilterService is returned when the filter service is not provided.
	ErrMissingFilterService = errors.New("mcp: filter service is required")

	// ErrMissingDescribeService is returned when the describe service is not provided.
	ErrMissingDescribeService = errors.New("mcp: describe service is required")
)
