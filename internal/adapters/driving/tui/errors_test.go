package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	assert.EqualError(t, ErrMissingDatasetService, "tui: dataset service is required")
	assert.EqualError(t, ErrMissingFilterService, "tui: filter service is required")
}
