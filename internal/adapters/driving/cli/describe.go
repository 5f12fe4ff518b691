package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/hybra-cli/internal/core/domain"
	"github.com/custodia-labs/hybra-cli/internal/logger"
)

var (
	describeFolder string
	describeWatch  bool
	describeJSON   bool

	countsFolder string
	countsLimit  int
	countsJSON   bool
)

var describeCmd = &cobra.Command{
	Use:   "describe <source>",
	Short: "Summarise a data source",
	Long: `Prints the number of posts, authors and domains of a data source and
the time span it covers.

With --watch the summary is printed again whenever a data file of the
source is created, changed or removed, until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runDescribe,
}

var authorsCmd = &cobra.Command{
	Use:   "authors <source>",
	Short: "Count records per author",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCounts(cmd, args[0], "Author", func(r []domain.Record) []domain.Count {
			return describeService.AuthorCounts(r)
		})
	},
}

var domainsCmd = &cobra.Command{
	Use:   "domains <source>",
	Short: "Count records per URL domain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCounts(cmd, args[0], "Domain", func(r []domain.Record) []domain.Count {
			return describeService.DomainCounts(r)
		})
	},
}

func init() {
	describeCmd.Flags().StringVar(&describeFolder, "folder", "", "sub-folder of the source to load")
	describeCmd.Flags().BoolVarP(&describeWatch, "watch", "w", false, "describe again when data files change")
	describeCmd.Flags().BoolVar(&describeJSON, "json", false, "output as JSON")

	for _, c := range []*cobra.Command{authorsCmd, domainsCmd} {
		c.Flags().StringVar(&countsFolder, "folder", "", "sub-folder of the source to load")
		c.Flags().IntVarP(&countsLimit, "limit", "n", -1, "maximum rows to print (default from settings, 0 = all)")
		c.Flags().BoolVar(&countsJSON, "json", false, "output as JSON")
	}

	rootCmd.AddCommand(describeCmd, authorsCmd, domainsCmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	if describeService == nil {
		return errNotConfigured("describe")
	}
	source := args[0]

	if err := describeOnce(cmd, source); err != nil {
		return err
	}
	if !describeWatch {
		return nil
	}
	return watchSource(cmd, source)
}

func describeOnce(cmd *cobra.Command, source string) error {
	records, err := loadRecords(cmd.Context(), source, describeFolder)
	if err != nil {
		return err
	}
	summary := describeService.Describe(records)

	if describeJSON {
		return printJSON(cmd, summary)
	}
	printSummary(cmd, source, &summary)
	return nil
}

func watchSource(cmd *cobra.Command, source string) error {
	if dataWatcher == nil {
		return errNotConfigured("watch")
	}
	if datasetService.DataDir() == "" {
		return domain.ErrNoDataDir
	}

	dir := filepath.Join(datasetService.DataDir(), source, describeFolder)
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	changes, err := dataWatcher.Watch(ctx, dir)
	if err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s (ctrl+c to stop)\n", dir)

	for change := range changes {
		logger.Debug("%s %s", change.Type, change.Path)
		cmd.Printf("\n%s %s\n", change.Path, change.Type)
		if err := describeOnce(cmd, source); err != nil {
			logger.Warn("describe failed: %v", err)
		}
	}
	return nil
}

func printSummary(cmd *cobra.Command, source string, s *domain.DatasetSummary) {
	t := newTable(cmd)
	t.SetTitle(source)
	t.AppendRows([]table.Row{
		{"Posts", s.Posts},
		{"Authors", s.Authors},
		{"Domains", s.Domains},
		{"First", formatTime(s.First)},
		{"Last", formatTime(s.Last)},
		{"Undated", s.Undated},
	})
	if len(s.Sources) > 1 {
		t.AppendSeparator()
		for _, c := range s.Sources {
			t.AppendRow(table.Row{"Source " + c.Key, c.Count})
		}
	}
	t.Render()
}

func runCounts(cmd *cobra.Command, source, header string, count func([]domain.Record) []domain.Count) error {
	if describeService == nil {
		return errNotConfigured("describe")
	}

	records, err := loadRecords(cmd.Context(), source, countsFolder)
	if err != nil {
		return err
	}
	counts := head(count(records), resolveLimit(countsLimit))

	if countsJSON {
		return printJSON(cmd, counts)
	}
	if len(counts) == 0 {
		cmd.Println("No records.")
		return nil
	}
	printCounts(cmd, header, counts)
	return nil
}
