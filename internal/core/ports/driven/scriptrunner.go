package driven

import "context"

// ScriptRunner executes an external analysis script.
type ScriptRunner interface {
	// Run executes command with args and returns its standard output.
	Run(ctx context.Context, command string, args ...string) (string, error)
}
