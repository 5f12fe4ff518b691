// Package script runs external analysis scripts, such as R scripts
// executed with Rscript.
package script

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/custodia-labs/hybra-cli/internal/core/ports/driven"
	"github.com/custodia-labs/hybra-cli/internal/logger"
)

// Ensure Runner implements the interface.
var _ driven.ScriptRunner = (*Runner)(nil)

// maxStderr bounds the standard error quoted in a failure.
const maxStderr = 2048

// Runner executes commands with os/exec.
type Runner struct {
	dir string
}

// NewRunner creates a runner. Commands run in dir, or in the current
// directory when dir is empty.
func NewRunner(dir string) *Runner {
	return &Runner{dir: dir}
}

// Run executes command with args and returns its standard output.
// The process is killed when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, command string, args ...string) (string, error) {
	if command == "" {
		return "", errors.New("no command given")
	}

	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = r.dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("running %s %s", command, strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return stdout.String(), fmt.Errorf("%s: %w", command, ctxErr)
		}
		msg := strings.TrimSpace(stderr.String())
		if len(msg) > maxStderr {
			msg = msg[:maxStderr] + "..."
		}
		if msg != "" {
			return stdout.String(), fmt.Errorf("%s: %w: %s", command, err, msg)
		}
		return stdout.String(), fmt.Errorf("%s: %w", command, err)
	}
	return stdout.String(), nil
}
