package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	sourcesJSON  bool
	versionsJSON bool
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the data sources that can be loaded",
	RunE:  runSources,
}

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "Describe the folders of the data directory",
	Long: `Lists every folder of the data directory with the content of its
VERSION file, the number of data files and the newest modification time.`,
	RunE: runVersions,
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the supported export formats",
	RunE:  runFormats,
}

func init() {
	sourcesCmd.Flags().BoolVar(&sourcesJSON, "json", false, "output as JSON")
	versionsCmd.Flags().BoolVar(&versionsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(sourcesCmd, versionsCmd, formatsCmd)
}

func runSources(cmd *cobra.Command, _ []string) error {
	if datasetService == nil {
		return errNotConfigured("dataset")
	}

	sources := datasetService.Sources()
	if sourcesJSON {
		return printJSON(cmd, map[string]any{
			"data_dir": datasetService.DataDir(),
			"sources":  sources,
		})
	}

	dir := datasetService.DataDir()
	if dir == "" {
		dir = "(not configured)"
	}
	cmd.Printf("Data directory: %s\n", dir)
	cmd.Println("Sources:")
	for _, s := range sources {
		cmd.Printf("  %s\n", s)
	}
	return nil
}

func runVersions(cmd *cobra.Command, _ []string) error {
	if datasetService == nil {
		return errNotConfigured("dataset")
	}

	versions, err := datasetService.Versions(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing versions: %w", err)
	}

	if versionsJSON {
		return printJSON(cmd, versions)
	}
	if len(versions) == 0 {
		cmd.Println("No data folders found.")
		return nil
	}

	t := newTable(cmd)
	t.AppendHeader(table.Row{"Folder", "Version", "Files", "Modified"})
	for _, v := range versions {
		t.AppendRow(table.Row{v.Name, v.Version, v.Files, formatTime(v.ModifiedAt)})
	}
	t.Render()
	return nil
}

func runFormats(cmd *cobra.Command, _ []string) error {
	if exportService == nil {
		return errNotConfigured("export")
	}

	cmd.Println("Supported export formats:")
	for _, f := range exportService.Formats() {
		cmd.Printf("  .%s\n", f)
	}
	return nil
}
