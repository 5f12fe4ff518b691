package driven

import (
	"context"

	"github.com/custodia-labs/hybra-cli/internal/core/domain"
)

// DataWatcher reports changes to data files under a directory tree.
type DataWatcher interface {
	// Watch emits changes until ctx is cancelled, then closes the channel.
	Watch(ctx context.Context, dir string) (<-chan domain.DataChange, error)
}
