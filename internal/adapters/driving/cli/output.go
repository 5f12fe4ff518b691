package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/hybra-cli/internal/core/domain"
)

// defaultLimit is used when neither --limit nor output.limit is set.
const defaultLimit = 20

// previewWidth caps the text column of record tables.
const previewWidth = 60

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// newTable returns a table writer mirrored to the command output.
// Terminals get the light box style; pipes and files get plain ASCII.
func newTable(cmd *cobra.Command) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	if isTerminal(cmd.OutOrStdout()) {
		t.SetStyle(table.StyleLight)
		t.Style().Color.Header = text.Colors{text.Bold}
	}
	return t
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

func printRecords(cmd *cobra.Command, records []domain.Record) {
	t := newTable(cmd)
	t.AppendHeader(table.Row{"Time", "Creator", "Domain", "Text"})
	for i := range records {
		r := &records[i]
		t.AppendRow(table.Row{formatTime(r.Timestamp), r.Creator, r.Domain(), preview(r.TextContent, previewWidth)})
	}
	t.Render()
}

func printCounts(cmd *cobra.Command, header string, counts []domain.Count) {
	t := newTable(cmd)
	t.AppendHeader(table.Row{header, "Count"})
	for _, c := range counts {
		t.AppendRow(table.Row{c.Key, c.Count})
	}
	t.Render()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format("2006-01-02 15:04")
}

// preview flattens whitespace and cuts s to n runes.
func preview(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// resolveLimit returns flag when set, else the configured output limit.
func resolveLimit(flag int) int {
	if flag >= 0 {
		return flag
	}
	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil {
			return s.Output.Limit
		}
	}
	return defaultLimit
}

// head returns the first limit records; zero keeps them all.
func head[T any](items []T, limit int) []T {
	if limit <= 0 || limit >= len(items) {
		return items
	}
	return items[:limit]
}

func loadRecords(ctx context.Context, source, folder string) ([]domain.Record, error) {
	if datasetService == nil {
		return nil, errNotConfigured("dataset")
	}
	records, err := datasetService.Load(ctx, source, domain.LoadOptions{Folder: folder})
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", source, err)
	}
	return records, nil
}

// exportRecords writes records and turns a failed export into an error.
// The export service has already printed the supported formats.
func exportRecords(cmd *cobra.Command, records []domain.Record, path string) error {
	if exportService == nil {
		return errNotConfigured("export")
	}
	res := exportService.Export(cmd.Context(), records, path)
	if !res.OK() {
		return fmt.Errorf("exporting to %s: %w", path, res.Err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d records to %s\n", res.Records, res.Path)
	return nil
}
