package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/hybra-cli/internal/core/domain"
)

var (
	visualiseFolder  string
	visualiseJSON    bool
	timelineInterval string
	wordcloudLimit   int
)

var timelineCmd = &cobra.Command{
	Use:   "timeline <source>",
	Short: "Count posts per day, week or month",
	Long: `Counts the posts of a data source per interval (UTC). Weeks start on
Monday. Intervals without posts are left out.`,
	Args: cobra.ExactArgs(1),
	RunE: runTimeline,
}

var networkCmd = &cobra.Command{
	Use:   "network <source>",
	Short: "Build the author to domain network",
	Long: `Links every author to the URL domains they shared. Edge weights count
the posts behind each link. Use --json to feed the graph to a plotting tool.`,
	Args: cobra.ExactArgs(1),
	RunE: runNetwork,
}

var wordcloudCmd = &cobra.Command{
	Use:   "wordcloud <source>",
	Short: "Count the most frequent words",
	Long: `Counts the words of the post texts, leaving out stop words and words
shorter than three letters.`,
	Args: cobra.ExactArgs(1),
	RunE: runWordCloud,
}

func init() {
	for _, c := range []*cobra.Command{timelineCmd, networkCmd, wordcloudCmd} {
		c.Flags().StringVar(&visualiseFolder, "folder", "", "sub-folder of the source to load")
		c.Flags().BoolVar(&visualiseJSON, "json", false, "output as JSON")
	}
	timelineCmd.Flags().StringVarP(&timelineInterval, "interval", "i", "day", "bucket width: day, week or month")
	wordcloudCmd.Flags().IntVarP(&wordcloudLimit, "limit", "n", 50, "number of words (0 = all)")

	rootCmd.AddCommand(timelineCmd, networkCmd, wordcloudCmd)
}

func visualiseRecords(cmd *cobra.Command, source string) ([]domain.Record, error) {
	if visualiseService == nil {
		return nil, errNotConfigured("visualise")
	}
	return loadRecords(cmd.Context(), source, visualiseFolder)
}

func runTimeline(cmd *cobra.Command, args []string) error {
	interval, err := domain.ParseInterval(timelineInterval)
	if err != nil {
		return err
	}
	records, err := visualiseRecords(cmd, args[0])
	if err != nil {
		return err
	}

	buckets := visualiseService.Timeline(records, interval)
	if visualiseJSON {
		return printJSON(cmd, buckets)
	}
	if len(buckets) == 0 {
		cmd.Println("No dated records.")
		return nil
	}

	t := newTable(cmd)
	t.AppendHeader(table.Row{"Start", "Posts"})
	for _, b := range buckets {
		t.AppendRow(table.Row{b.Start.Format("2006-01-02"), b.Count})
	}
	t.Render()
	return nil
}

func runNetwork(cmd *cobra.Command, args []string) error {
	records, err := visualiseRecords(cmd, args[0])
	if err != nil {
		return err
	}

	graph := visualiseService.Network(records)
	if visualiseJSON {
		return printJSON(cmd, graph)
	}
	if len(graph.Edges) == 0 {
		cmd.Println("No author shared a link.")
		return nil
	}

	t := newTable(cmd)
	t.AppendHeader(table.Row{"Author", "Domain", "Posts"})
	for _, e := range graph.Edges {
		t.AppendRow(table.Row{e.Source, e.Target, e.Weight})
	}
	t.Render()
	cmd.Printf("%d nodes, %d edges\n", len(graph.Nodes), len(graph.Edges))
	return nil
}

func runWordCloud(cmd *cobra.Command, args []string) error {
	if wordcloudLimit < 0 {
		return fmt.Errorf("%w: --limit must not be negative", domain.ErrInvalidInput)
	}
	records, err := visualiseRecords(cmd, args[0])
	if err != nil {
		return err
	}

	words := visualiseService.WordCloud(records, wordcloudLimit)
	if visualiseJSON {
		return printJSON(cmd, words)
	}
	if len(words) == 0 {
		cmd.Println("No words.")
		return nil
	}
	printCounts(cmd, "Word", words)
	return nil
}
