package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/custodia-labs/hybra-cli/internal/core/domain"
	"github.com/custodia-labs/hybra-cli/internal/core/ports/driven"
	"github.com/custodia-labs/hybra-cli/internal/core/ports/driving"
	"github.com/custodia-labs/hybra-cli/internal/logger"
)

// Ensure AnalysisService implements the interface.
var _ driving.AnalysisService = (*AnalysisService)(nil)

// analysisFormat is the format records are handed to scripts in.
const analysisFormat = "csv"

// AnalysisService runs external statistical scripts over records.
// Records reach the script as a CSV file whose path is the script's
// first argument; params follow as --key=value flags.
type AnalysisService struct {
	command   string
	runner    driven.ScriptRunner
	exporters driven.ExporterRegistry
}

// NewAnalysisService creates an analysis service running scripts with
// command, e.g. "Rscript".
func NewAnalysisService(command string, runner driven.ScriptRunner, exporters driven.ExporterRegistry) *AnalysisService {
	return &AnalysisService{
		command:   command,
		runner:    runner,
		exporters: exporters,
	}
}

// Run executes script over records and returns its standard output.
func (s *AnalysisService) Run(ctx context.Context, script string, records []domain.Record, params map[string]string) (string, error) {
	if s.runner == nil {
		return "", fmt.Errorf("%w: no script runner configured", domain.ErrScriptFailed)
	}
	if script == "" {
		return "", fmt.Errorf("%w: script path is required", domain.ErrInvalidInput)
	}

	exporter, err := s.exporters.Get(analysisFormat)
	if err != nil {
		return "", err
	}

	dir, err := os.MkdirTemp("", "hybra-analysis-*")
	if err != nil {
		return "", fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(dir)

	input := filepath.Join(dir, "records."+analysisFormat)
	if err := exporter.Export(ctx, records, input); err != nil {
		return "", fmt.Errorf("export records for %s: %w", script, err)
	}

	args := append([]string{script, input}, paramFlags(params)...)
	logger.Debug("running %s %v", s.command, args)

	out, err := s.runner.Run(ctx, s.command, args...)
	if err != nil {
		return out, fmt.Errorf("%w: %s: %v", domain.ErrScriptFailed, script, err)
	}
	return out, nil
}

// paramFlags renders params as --key=value flags in key order.
func paramFlags(params map[string]string) []string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	flags := make([]string, len(keys))
	for i, k := range keys {
		flags[i] = "--" + k + "=" + params[k]
	}
	return flags
}
