package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hybra-cli/internal/core/domain"
	"github.com/custodia-labs/hybra-cli/internal/logger"
)

var (
	filterFolder  string
	filterTerms   []string
	filterWords   bool
	filterAny     bool
	filterAuthors []string
	filterDomains []string
	filterAfter   string
	filterBefore  string
	filterWhere   string
	filterSample  int
	filterSeed    int64
	filterExport  string
	filterLimit   int
	filterJSON    bool
)

var filterCmd = &cobra.Command{
	Use:   "filter <source>",
	Short: "Filter the records of a data source",
	Long: `Loads a data source and keeps the records matching every given criterion.

Text terms match as substrings by default and all of them must be present;
use --words to match whole words and --any to accept any single term.
Dates accept most human formats ("2017-03-01", "March 1 2017", "3 days ago").
The --where expression sees id, source, text_content, timestamp, creator,
url, domain and fields.

Examples:
  hybra filter twitter -t climate -t energy --any
  hybra filter media --folder yle --domain yle.fi --after 2019-01-01
  hybra filter twitter --where 'fields.retweet_count > 100' --export top.xlsx
  hybra filter facebook --sample 200 --seed 7 --export sample.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runFilter,
}

func init() {
	f := filterCmd.Flags()
	f.StringVar(&filterFolder, "folder", "", "sub-folder of the source to load")
	f.StringArrayVarP(&filterTerms, "term", "t", nil, "word or phrase to look for (repeatable)")
	f.BoolVar(&filterWords, "words", false, "match whole words instead of substrings")
	f.BoolVar(&filterAny, "any", false, "accept records matching any term")
	f.StringArrayVarP(&filterAuthors, "author", "a", nil, "creator to keep (repeatable)")
	f.StringSliceVarP(&filterDomains, "domain", "d", nil, "URL domain to keep (repeatable)")
	f.StringVar(&filterAfter, "after", "", "keep records published after this time")
	f.StringVar(&filterBefore, "before", "", "keep records published before this time")
	f.StringVar(&filterWhere, "where", "", "boolean expression records must satisfy")
	f.IntVar(&filterSample, "sample", -1, "draw a random sample of this size")
	f.Int64Var(&filterSeed, "seed", 0, "sample seed (default from settings)")
	f.StringVarP(&filterExport, "export", "o", "", "write the result to a file; the extension picks the format")
	f.IntVarP(&filterLimit, "limit", "n", -1, "maximum records to print (default from settings, 0 = all)")
	f.BoolVar(&filterJSON, "json", false, "output records as JSON")
	rootCmd.AddCommand(filterCmd)
}

func runFilter(cmd *cobra.Command, args []string) error {
	if filterService == nil {
		return errNotConfigured("filter")
	}

	records, err := loadRecords(cmd.Context(), args[0], filterFolder)
	if err != nil {
		return err
	}

	criteria := domain.FilterCriteria{
		Text: domain.TextQuery{
			Terms:      filterTerms,
			Substrings: !filterWords,
			Inclusive:  !filterAny,
		},
		Authors: filterAuthors,
		Domains: filterDomains,
		After:   filterAfter,
		Before:  filterBefore,
		Where:   filterWhere,
	}

	var out []domain.Record
	if criteria.IsZero() {
		out = filterService.FilterText(records, criteria.Text)
	} else if out, err = filterService.Apply(records, criteria); err != nil {
		return fmt.Errorf("filtering: %w", err)
	}
	logger.Info("%d of %d records match", len(out), len(records))

	if cmd.Flags().Changed("sample") {
		if out, err = drawSample(cmd, out, filterSample, filterSeed); err != nil {
			return err
		}
	}

	if filterExport != "" {
		if err := exportRecords(cmd, out, filterExport); err != nil {
			return err
		}
	}

	shown := head(out, resolveLimit(filterLimit))
	if filterJSON {
		return printJSON(cmd, shown)
	}
	if len(out) == 0 {
		cmd.Println("No matching records.")
		return nil
	}
	printRecords(cmd, shown)
	cmd.Printf("Showing %d of %d records (%d loaded)\n", len(shown), len(out), len(records))
	return nil
}

func drawSample(cmd *cobra.Command, records []domain.Record, size int, seed int64) ([]domain.Record, error) {
	if sampleService == nil {
		return nil, errNotConfigured("sample")
	}
	if !cmd.Flags().Changed("seed") {
		seed = defaultSeed()
	}
	out, err := sampleService.Sample(cmd.Context(), records, domain.SampleOptions{Size: size, Seed: seed})
	if err != nil {
		return nil, fmt.Errorf("sampling: %w", err)
	}
	return out, nil
}

func defaultSeed() int64 {
	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil {
			return s.Sample.Seed
		}
	}
	return domain.DefaultSampleSeed
}
