package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change settings stored in ~/.hybra/config.toml.

Settings:
  data.dir           root data directory, one sub-folder per source
  sample.seed        seed used when a sample does not name one
  analysis.command   command running analysis scripts (default Rscript)
  output.limit       records printed by list commands (0 = all)
  sources.<name>.<field>
                     JMESPath expression mapping a raw entry to a record
                     field (id, text_content, creator, timestamp, url)`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Example: `  hybra settings set data.dir ~/datasets
  hybra settings set sources.twitter.creator user.name`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	dir := settings.Data.Dir
	if !settings.Data.IsConfigured() {
		dir = "(not set)"
	}

	t := newTable(cmd)
	t.AppendHeader(table.Row{"Setting", "Value"})
	t.AppendRows([]table.Row{
		{"data.dir", dir},
		{"sample.seed", settings.Sample.Seed},
		{"analysis.command", settings.Analysis.Command},
		{"output.limit", settings.Output.Limit},
	})
	if datasetService != nil {
		for _, source := range datasetService.Sources() {
			m := settingsService.FieldMapping(source)
			for _, kv := range [][2]string{
				{"id", m.ID},
				{"text_content", m.TextContent},
				{"creator", m.Creator},
				{"timestamp", m.Timestamp},
				{"url", m.URL},
			} {
				if kv[1] != "" {
					t.AppendRow(table.Row{"sources." + source + "." + kv[0], kv[1]})
				}
			}
		}
	}
	t.Render()

	if datasetService != nil && datasetService.DataDir() != settings.Data.Dir {
		cmd.Printf("Data directory in use: %s\n", datasetService.DataDir())
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		cmd.Println("Settable keys:")
		for _, k := range settingsService.Keys() {
			cmd.Printf("  %s\n", k)
		}
		return err
	}
	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}
