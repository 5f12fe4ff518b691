package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPreview(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"short", "hello", 10, "hello"},
		{"whitespace", "a\n\tb   c", 10, "a b c"},
		{"cut", "abcdefghij", 8, "abcde..."},
		{"runes", "äöåäöåäöå", 6, "äöå..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, preview(tt.in, tt.n))
		})
	}
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "-", formatTime(time.Time{}))

	helsinki := time.FixedZone("EET", 2*60*60)
	assert.Equal(t, "2020-01-02 08:00", formatTime(time.Date(2020, 1, 2, 10, 0, 0, 0, helsinki)))
}

func TestHead(t *testing.T) {
	items := []int{1, 2, 3}

	assert.Equal(t, []int{1, 2, 3}, head(items, 0))
	assert.Equal(t, []int{1, 2}, head(items, 2))
	assert.Equal(t, []int{1, 2, 3}, head(items, 5))
}

func TestResolveLimit(t *testing.T) {
	assert.Equal(t, defaultLimit, resolveLimit(-1))
	assert.Equal(t, 5, resolveLimit(5))

	cleanup := setupTestServices()
	defer cleanup()
	mocks.settings.settings.Output.Limit = 3

	assert.Equal(t, 3, resolveLimit(-1))
	assert.Equal(t, 0, resolveLimit(0))
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, isTerminal(new(bytes.Buffer)))
}
