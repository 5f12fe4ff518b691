package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hybra-cli/internal/core/domain"
)

var (
	analyseFolder string
	analyseParams []string
)

var analyseCmd = &cobra.Command{
	Use:   "analyse <source> <script>",
	Short: "Run a statistical script over a data source",
	Long: `Writes the records of a data source to a temporary CSV file and runs
the analysis command (analysis.command, default Rscript) as

  <command> <script> <csv> --key=value...

The script's standard output is printed.

Example:
  hybra analyse twitter scripts/sentiment.R --param lang=fi`,
	Aliases: []string{"analyze"},
	Args:    cobra.ExactArgs(2),
	RunE:    runAnalyse,
}

func init() {
	analyseCmd.Flags().StringVar(&analyseFolder, "folder", "", "sub-folder of the source to load")
	analyseCmd.Flags().StringSliceVarP(&analyseParams, "param", "p", nil, "script parameter as key=value (repeatable)")
	rootCmd.AddCommand(analyseCmd)
}

func runAnalyse(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errNotConfigured("analysis")
	}

	params, err := parseParams(analyseParams)
	if err != nil {
		return err
	}
	records, err := loadRecords(cmd.Context(), args[0], analyseFolder)
	if err != nil {
		return err
	}

	out, err := analysisService.Run(cmd.Context(), args[1], records, params)
	cmd.Print(out)
	return err
}

// parseParams splits key=value pairs. Keys must not be empty.
func parseParams(pairs []string) (map[string]string, error) {
	params := make(map[string]string, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: param %q is not key=value", domain.ErrInvalidInput, p)
		}
		params[key] = value
	}
	return params, nil
}
