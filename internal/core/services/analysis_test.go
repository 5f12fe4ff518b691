package services

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hybra-cli/internal/core/domain"
)

// fileExporter writes one line per record ID so the runner can see it.
type fileExporter struct{}

func (fileExporter) Format() string { return "csv" }

func (fileExporter) Export(_ context.Context, records []domain.Record, path string) error {
	var content string
	for _, r := range records {
		content += r.ID + "\n"
	}
	return os.WriteFile(path, []byte(content), 0o600)
}

func TestAnalysisService_Run(t *testing.T) {
	runner := &mockScriptRunner{output: "mean: 3\n"}
	svc := NewAnalysisService("Rscript", runner, newMockExporterRegistry(fileExporter{}))

	out, err := svc.Run(context.Background(), "stats.R", fixtureRecords()[:2], map[string]string{
		"width": "10",
		"col":   "creator",
	})

	require.NoError(t, err)
	assert.Equal(t, "mean: 3\n", out)
	assert.Equal(t, "Rscript", runner.command)
	require.Len(t, runner.args, 4)
	assert.Equal(t, "stats.R", runner.args[0])
	assert.Equal(t, []string{"--col=creator", "--width=10"}, runner.args[2:])
	assert.Equal(t, "1\n2\n", string(runner.seen))

	_, err = os.Stat(runner.args[1])
	assert.True(t, os.IsNotExist(err), "work dir should be removed")
}

func TestAnalysisService_Run_Errors(t *testing.T) {
	registry := newMockExporterRegistry(fileExporter{})

	tests := []struct {
		name    string
		svc     *AnalysisService
		script  string
		wantErr error
	}{
		{"no runner", NewAnalysisService("Rscript", nil, registry), "a.R", domain.ErrScriptFailed},
		{"no script", NewAnalysisService("Rscript", &mockScriptRunner{}, registry), "", domain.ErrInvalidInput},
		{"no csv exporter", NewAnalysisService("Rscript", &mockScriptRunner{}, newMockExporterRegistry()), "a.R", domain.ErrUnsupportedFormat},
		{"script fails", NewAnalysisService("Rscript", &mockScriptRunner{err: errBoom}, registry), "a.R", domain.ErrScriptFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.svc.Run(context.Background(), tt.script, fixtureRecords(), nil)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
