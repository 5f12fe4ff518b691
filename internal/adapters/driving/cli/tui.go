package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hybra-cli/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dataset explorer",
	Long: `Launch the interactive terminal explorer.

Pick a data source, then type comma separated terms and press enter to
filter its records.

Controls:
  ↑/k, ↓/j   Navigate
  Enter      Open source / apply query
  Tab        Toggle whole words / substrings
  Shift+Tab  Toggle all terms / any term
  Esc        Back
  ?          Help
  q, ctrl+c  Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// tuiPorts collects the ports the explorer needs.
func tuiPorts() *tui.Ports {
	return &tui.Ports{
		Dataset:  datasetService,
		Filter:   filterService,
		Describe: describeService,
	}
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := tui.NewApp(tuiPorts())
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
