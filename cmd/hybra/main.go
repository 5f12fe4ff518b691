// Command hybra explores, filters and exports social media datasets.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/hybra-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/hybra-cli/internal/adapters/driven/dateparse"
	"github.com/custodia-labs/hybra-cli/internal/adapters/driven/exporter"
	"github.com/custodia-labs/hybra-cli/internal/adapters/driven/loader"
	"github.com/custodia-labs/hybra-cli/internal/adapters/driven/script"
	"github.com/custodia-labs/hybra-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/hybra-cli/internal/core/services"
	"github.com/custodia-labs/hybra-cli/internal/logger"
	"github.com/custodia-labs/hybra-cli/internal/pipeline"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

// dataDirEnv overrides the configured data directory.
const dataDirEnv = "HYBRA_DATA_DIR"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)
	err := cli.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// bootstrap wires the adapters and services once the global flags are known.
func bootstrap(opts cli.Options) (*cli.Services, error) {
	store, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	settingsService := services.NewSettingsService(store)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}

	dataDir := resolveDataDir(opts.DataDir, os.Getenv(dataDirEnv), settings.Data.Dir)
	logger.Debug("config: %s", store.Path())
	logger.Debug("data dir: %s", dataDir)

	dates := dateparse.New()

	loaders := loader.NewRegistry()
	if err := loader.RegisterDefaults(loaders, dates, settingsService.FieldMapping); err != nil {
		return nil, fmt.Errorf("loaders: %w", err)
	}
	exporters := exporter.NewDefaultRegistry()

	exportService := services.NewExportService(exporters)
	filterService := services.NewFilterService(dates)
	sampleService := services.NewSampleService(exportService)

	stages := pipeline.NewRegistry()
	pipeline.RegisterDefaults(stages, pipeline.Services{
		Filter: filterService,
		Sample: sampleService,
		Seed:   settings.Sample.Seed,
	})

	return &cli.Services{
		Dataset:   services.NewDatasetService(dataDir, loaders),
		Filter:    filterService,
		Sample:    sampleService,
		Export:    exportService,
		Describe:  services.NewDescribeService(),
		Visualise: services.NewVisualiseService(),
		Analysis:  services.NewAnalysisService(settings.Analysis.Command, script.NewRunner(""), exporters),
		Settings:  settingsService,
		Watcher:   loader.NewWatcher(),
		Stages:    stages,
	}, nil
}

// resolveDataDir picks the first non-empty of the flag, the environment
// and the settings.
func resolveDataDir(flag, env, configured string) string {
	for _, dir := range []string{flag, env, configured} {
		if dir != "" {
			return dir
		}
	}
	return ""
}
