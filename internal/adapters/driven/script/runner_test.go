package script

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestRunner_Stdout(t *testing.T) {
	requireShell(t)

	out, err := NewRunner("").Run(context.Background(), "sh", "-c", `echo "$1 $2"`, "sh", "records.csv", "--limit=5")

	require.NoError(t, err)
	assert.Equal(t, "records.csv --limit=5\n", out)
}

func TestRunner_WorkingDirectory(t *testing.T) {
	requireShell(t)
	dir := t.TempDir()

	out, err := NewRunner(dir).Run(context.Background(), "sh", "-c", "pwd -P")

	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestRunner_FailureIncludesStderr(t *testing.T) {
	requireShell(t)

	out, err := NewRunner("").Run(context.Background(), "sh", "-c", "echo partial; echo boom >&2; exit 3")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, "partial\n", out)

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.ExitCode())
}

func TestRunner_MissingCommand(t *testing.T) {
	_, err := NewRunner("").Run(context.Background(), "hybra-no-such-command")

	assert.Error(t, err)
}

func TestRunner_EmptyCommand(t *testing.T) {
	_, err := NewRunner("").Run(context.Background(), "")

	assert.Error(t, err)
}

func TestRunner_Cancelled(t *testing.T) {
	requireShell(t)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewRunner("").Run(ctx, "sh", "-c", "sleep 5")

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
