package loader

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/hybra-cli/internal/core/domain"
	"github.com/custodia-labs/hybra-cli/internal/core/ports/driven"
	"github.com/custodia-labs/hybra-cli/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.DataWatcher = (*Watcher)(nil)

// changeBuffer is the capacity of the change channel.
const changeBuffer = 64

// Watcher reports changes to data files with fsnotify. Directories
// created while watching are watched too.
type Watcher struct{}

// NewWatcher creates a data directory watcher.
func NewWatcher() *Watcher {
	return &Watcher{}
}

// Watch emits changes under dir until ctx is cancelled, then closes
// the returned channel. Hidden files and directories are ignored.
func (w *Watcher) Watch(ctx context.Context, dir string) (<-chan domain.DataChange, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, dir)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := addTree(fw, dir); err != nil {
		fw.Close()
		return nil, err
	}

	changes := make(chan domain.DataChange, changeBuffer)
	go func() {
		defer close(changes)
		defer fw.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-fw.Events:
				if !ok {
					return
				}
				if event.Has(fsnotify.Create) && isDir(event.Name) && !isHidden(relative(dir, event.Name)) {
					if err := addTree(fw, event.Name); err != nil {
						logger.Warn("watch %s: %v", event.Name, err)
					}
				}
				change := handleFsEvent(dir, event)
				if change == nil {
					continue
				}
				select {
				case changes <- *change:
				case <-ctx.Done():
					return
				}
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				logger.Warn("watcher: %v", err)
			}
		}
	}()

	return changes, nil
}

// addTree watches dir and every non-hidden directory below it.
func addTree(fw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// handleFsEvent converts an fsnotify event below root to a data change.
// Returns nil for directories, hidden paths and chmod-only events.
func handleFsEvent(root string, event fsnotify.Event) *domain.DataChange {
	if isHidden(relative(root, event.Name)) {
		return nil
	}

	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return &domain.DataChange{Path: event.Name, Type: domain.ChangeDeleted}
	case event.Has(fsnotify.Create):
		if isDir(event.Name) {
			return nil
		}
		return &domain.DataChange{Path: event.Name, Type: domain.ChangeCreated}
	case event.Has(fsnotify.Write):
		if isDir(event.Name) {
			return nil
		}
		return &domain.DataChange{Path: event.Name, Type: domain.ChangeUpdated}
	}
	return nil
}

// relative returns path relative to root, or path itself when it is
// not below root.
func relative(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// isHidden reports whether any element of path starts with a dot.
// "." and ".." are not hidden.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part != "." && part != ".." && strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
