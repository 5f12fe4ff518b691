package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hybra-cli/internal/core/domain"
)

// waitForChange returns the first change whose path ends with name.
func waitForChange(t *testing.T, changes <-chan domain.DataChange, name string) domain.DataChange {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case change, ok := <-changes:
			require.True(t, ok, "channel closed before %s changed", name)
			if filepath.Base(change.Path) == name {
				return change
			}
		case <-timeout:
			t.Fatalf("timeout waiting for change to %s", name)
		}
	}
}

func TestWatcher_Watch(t *testing.T) {
	t.Run("reports new files", func(t *testing.T) {
		dir := t.TempDir()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := NewWatcher().Watch(ctx, dir)
		require.NoError(t, err)

		go func() {
			time.Sleep(50 * time.Millisecond)
			os.WriteFile(filepath.Join(dir, "tweets.json"), []byte("[]"), 0o644)
		}()

		change := waitForChange(t, changes, "tweets.json")
		assert.Equal(t, domain.ChangeCreated, change.Type)
	})

	t.Run("reports removed files", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "old.json")
		require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := NewWatcher().Watch(ctx, dir)
		require.NoError(t, err)

		go func() {
			time.Sleep(50 * time.Millisecond)
			os.Remove(path)
		}()

		change := waitForChange(t, changes, "old.json")
		assert.Equal(t, domain.ChangeDeleted, change.Type)
	})

	t.Run("watches new sub-folders", func(t *testing.T) {
		dir := t.TempDir()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := NewWatcher().Watch(ctx, dir)
		require.NoError(t, err)

		sub := filepath.Join(dir, "yle")
		require.NoError(t, os.Mkdir(sub, 0o755))
		time.Sleep(100 * time.Millisecond)
		require.NoError(t, os.WriteFile(filepath.Join(sub, "a.jsonl"), []byte("{}\n"), 0o644))

		change := waitForChange(t, changes, "a.jsonl")
		assert.Equal(t, filepath.Join(sub, "a.jsonl"), change.Path)
	})

	t.Run("closes on cancel", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())

		changes, err := NewWatcher().Watch(ctx, t.TempDir())
		require.NoError(t, err)
		cancel()

		select {
		case _, ok := <-changes:
			assert.False(t, ok)
		case <-time.After(time.Second):
			t.Fatal("channel not closed after cancel")
		}
	})
}

func TestWatcher_WatchErrors(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.json")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0o644))

	_, err := NewWatcher().Watch(context.Background(), filepath.Join(dir, "missing"))
	assert.Error(t, err)

	_, err = NewWatcher().Watch(context.Background(), file)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIsHidden(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"tweets.json", false},
		{"yle/articles.json", false},
		{".hidden.json", true},
		{".git/config", true},
		{"yle/.cache/a.json", true},
		{".", false},
		{"../twitter/a.json", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, isHidden(tt.path))
		})
	}
}

func TestHandleFsEvent(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "a.json")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0o644))
	sub := filepath.Join(root, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	hidden := filepath.Join(root, ".tmp.json")
	require.NoError(t, os.WriteFile(hidden, []byte("{}"), 0o644))

	tests := []struct {
		name     string
		path     string
		op       fsnotify.Op
		wantNil  bool
		wantType domain.ChangeType
	}{
		{"create file", file, fsnotify.Create, false, domain.ChangeCreated},
		{"write file", file, fsnotify.Write, false, domain.ChangeUpdated},
		{"remove file", filepath.Join(root, "gone.json"), fsnotify.Remove, false, domain.ChangeDeleted},
		{"rename file", filepath.Join(root, "moved.json"), fsnotify.Rename, false, domain.ChangeDeleted},
		{"chmod only", file, fsnotify.Chmod, true, 0},
		{"create directory", sub, fsnotify.Create, true, 0},
		{"hidden file", hidden, fsnotify.Write, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			change := handleFsEvent(root, fsnotify.Event{Name: tt.path, Op: tt.op})
			if tt.wantNil {
				assert.Nil(t, change)
				return
			}
			require.NotNil(t, change)
			assert.Equal(t, tt.path, change.Path)
			assert.Equal(t, tt.wantType, change.Type)
		})
	}
}

func TestHandleFsEvent_HiddenRootIsWatched(t *testing.T) {
	root := filepath.Join(t.TempDir(), ".hybra", "data")
	require.NoError(t, os.MkdirAll(root, 0o755))
	file := filepath.Join(root, "a.json")

	change := handleFsEvent(root, fsnotify.Event{Name: file, Op: fsnotify.Remove})

	require.NotNil(t, change)
	assert.Equal(t, domain.ChangeDeleted, change.Type)
}
