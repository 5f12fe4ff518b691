// Package cli provides the hybra command line interface.
// It is a driving adapter: commands parse flags, call the core through
// driving ports and render the results.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hybra-cli/internal/core/ports/driven"
	"github.com/custodia-labs/hybra-cli/internal/core/ports/driving"
	"github.com/custodia-labs/hybra-cli/internal/logger"
	"github.com/custodia-labs/hybra-cli/internal/pipeline"
)

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	verbose   bool
	dataDir   string
	configDir string
)

// Services configured before a command runs.
var (
	datasetService   driving.DatasetService
	filterService    driving.FilterService
	sampleService    driving.SampleService
	exportService    driving.ExportService
	describeService  driving.DescribeService
	visualiseService driving.VisualiseService
	analysisService  driving.AnalysisService
	settingsService  driving.SettingsService
	dataWatcher      driven.DataWatcher
	stageRegistry    *pipeline.Registry
)

// Services are the ports the commands call.
type Services struct {
	Dataset   driving.DatasetService
	Filter    driving.FilterService
	Sample    driving.SampleService
	Export    driving.ExportService
	Describe  driving.DescribeService
	Visualise driving.VisualiseService
	Analysis  driving.AnalysisService
	Settings  driving.SettingsService
	Watcher   driven.DataWatcher
	Stages    *pipeline.Registry
}

// Options are the global flag values handed to the bootstrap function.
type Options struct {
	// DataDir overrides the configured data directory when set.
	DataDir string

	// ConfigDir overrides the default config directory when set.
	ConfigDir string
}

// BootstrapFunc builds the services once the global flags are parsed.
type BootstrapFunc func(opts Options) (*Services, error)

var bootstrap BootstrapFunc

var rootCmd = &cobra.Command{
	Use:   "hybra",
	Short: "Explore and filter social media datasets",
	Long: `hybra loads social media and news datasets from a data directory,
filters them by text, author, domain and time, draws reproducible samples
and exports the results to csv, json, xlsx, sqlite and more.

Each data source lives in a sub-folder of the data directory, e.g.
<data-dir>/twitter. Set the directory with --data-dir, the HYBRA_DATA_DIR
environment variable or 'hybra settings set data.dir <path>'.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (overrides settings)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.hybra)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version printed by 'hybra version'.
func SetVersion(v string) {
	version = v
}

// SetBootstrap registers the function that builds the services after
// flag parsing.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// SetServices configures the ports used by every command.
func SetServices(s *Services) {
	datasetService = s.Dataset
	filterService = s.Filter
	sampleService = s.Sample
	exportService = s.Export
	describeService = s.Describe
	visualiseService = s.Visualise
	analysisService = s.Analysis
	settingsService = s.Settings
	dataWatcher = s.Watcher
	stageRegistry = s.Stages
}

func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if bootstrap == nil {
		return nil
	}

	services, err := bootstrap(Options{DataDir: dataDir, ConfigDir: configDir})
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	SetServices(services)
	return nil
}

// errNotConfigured reports a service that was never wired.
func errNotConfigured(name string) error {
	return errors.New(name + " service not configured")
}

// ExecuteContext runs the root command with ctx, which commands observe
// for cancellation.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
