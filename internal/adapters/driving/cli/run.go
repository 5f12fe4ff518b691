package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hybra-cli/internal/logger"
	"github.com/custodia-labs/hybra-cli/internal/pipeline"
)

var (
	runExport string
	runLimit  int
	runJSON   bool
)

var runCmd = &cobra.Command{
	Use:   "run <recipe>",
	Short: "Run a recipe of filter and sample stages",
	Long: `Loads the source named by a YAML or TOML recipe, passes its records
through the recipe's stages in order and exports the result.

Example recipe (climate.yaml):

  source: twitter
  folder: 2019
  stages:
    - name: text
      terms: [climate, ilmasto]
      inclusive: false
    - name: datetime
      after: 2019-01-01
    - name: sample
      size: 500
  export: climate.xlsx

Stages: text, author, domain, datetime, where, sample.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecipe,
}

func init() {
	runCmd.Flags().StringVarP(&runExport, "export", "o", "", "output file (overrides the recipe)")
	runCmd.Flags().IntVarP(&runLimit, "limit", "n", -1, "maximum records to print (default from settings, 0 = all)")
	runCmd.Flags().BoolVar(&runJSON, "json", false, "output records as JSON")
	rootCmd.AddCommand(runCmd)
}

func runRecipe(cmd *cobra.Command, args []string) error {
	if stageRegistry == nil {
		return errNotConfigured("pipeline")
	}

	recipe, err := pipeline.LoadRecipe(args[0])
	if err != nil {
		return err
	}
	p, err := recipe.Build(stageRegistry)
	if err != nil {
		return fmt.Errorf("building %s: %w", args[0], err)
	}

	records, err := loadRecords(cmd.Context(), recipe.Source, recipe.Folder)
	if err != nil {
		return err
	}

	logger.Section("run " + args[0])
	logger.Info("stages: %s", strings.Join(p.Names(), ", "))
	out, err := p.Run(cmd.Context(), records)
	if err != nil {
		return err
	}

	export := recipe.Export
	if runExport != "" {
		export = runExport
	}
	if export != "" {
		if err := exportRecords(cmd, out, export); err != nil {
			return err
		}
	}

	shown := head(out, resolveLimit(runLimit))
	if runJSON {
		return printJSON(cmd, shown)
	}
	if len(out) > 0 && len(shown) > 0 {
		printRecords(cmd, shown)
	}
	cmd.Printf("%d of %d records kept by %d stages\n", len(out), len(records), p.Len())
	return nil
}
