package exporter

import (
	"encoding/json"
	"time"

	"github.com/custodia-labs/hybra-cli/internal/core/domain"
)

// columns is the column order of tabular formats.
var columns = []string{"id", "source", "text_content", "timestamp", "creator", "url", "fields"}

// row is the exported shape of a record. Unknown timestamps are left
// out instead of being written as the zero time.
type row struct {
	ID          string         `json:"id" yaml:"id" toml:"id"`
	Source      string         `json:"source" yaml:"source" toml:"source"`
	TextContent string         `json:"text_content" yaml:"text_content" toml:"text_content"`
	Timestamp   string         `json:"timestamp,omitempty" yaml:"timestamp,omitempty" toml:"timestamp,omitempty"`
	Creator     string         `json:"creator" yaml:"creator" toml:"creator"`
	URL         string         `json:"url" yaml:"url" toml:"url"`
	Fields      map[string]any `json:"fields,omitempty" yaml:"fields,omitempty" toml:"fields,omitempty"`
}

func toRows(records []domain.Record) []row {
	rows := make([]row, len(records))
	for i := range records {
		r := &records[i]
		rows[i] = row{
			ID:          r.ID,
			Source:      r.Source,
			TextContent: r.TextContent,
			Timestamp:   formatTimestamp(r),
			Creator:     r.Creator,
			URL:         r.URL,
			Fields:      r.Fields,
		}
	}
	return rows
}

// cells returns the row as strings in column order. Fields are
// written as a JSON object.
func (r row) cells() ([]string, error) {
	var fields string
	if len(r.Fields) > 0 {
		b, err := json.Marshal(r.Fields)
		if err != nil {
			return nil, err
		}
		fields = string(b)
	}
	return []string{r.ID, r.Source, r.TextContent, r.Timestamp, r.Creator, r.URL, fields}, nil
}

func formatTimestamp(r *domain.Record) string {
	if !r.HasTimestamp() {
		return ""
	}
	return r.Timestamp.UTC().Format(time.RFC3339)
}
