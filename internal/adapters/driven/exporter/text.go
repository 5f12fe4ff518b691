package exporter

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/hybra-cli/internal/core/domain"
	"github.com/custodia-labs/hybra-cli/internal/core/ports/driven"
)

// streamExporter writes a text format through an io.Writer.
type streamExporter struct {
	format string
	encode func(w io.Writer, rows []row) error
}

var _ driven.Exporter = (*streamExporter)(nil)

// NewCSVExporter writes a header row followed by one row per record.
func NewCSVExporter() driven.Exporter {
	return &streamExporter{format: "csv", encode: encodeCSV}
}

// NewJSONExporter writes an indented JSON array.
func NewJSONExporter() driven.Exporter {
	return &streamExporter{format: "json", encode: encodeJSON}
}

// NewJSONLinesExporter writes one JSON object per line.
func NewJSONLinesExporter() driven.Exporter {
	return &streamExporter{format: "jsonl", encode: encodeJSONLines}
}

// NewYAMLExporter writes a YAML sequence under the given extension.
func NewYAMLExporter(format string) driven.Exporter {
	return &streamExporter{format: format, encode: encodeYAML}
}

// NewTOMLExporter writes the records as a "records" array of tables.
func NewTOMLExporter() driven.Exporter {
	return &streamExporter{format: "toml", encode: encodeTOML}
}

func (e *streamExporter) Format() string {
	return e.format
}

func (e *streamExporter) Export(ctx context.Context, records []domain.Record, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return writeFile(path, func(w io.Writer) error {
		return e.encode(w, toRows(records))
	})
}

// writeFile creates path, hands a buffered writer to write and closes
// the file. A partially written file is removed on failure.
func writeFile(path string, write func(w io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func encodeCSV(w io.Writer, rows []row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	for _, r := range rows {
		cells, err := r.cells()
		if err != nil {
			return err
		}
		if err := cw.Write(cells); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func encodeJSON(w io.Writer, rows []row) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func encodeJSONLines(w io.Writer, rows []row) error {
	enc := json.NewEncoder(w)
	for _, r := range rows {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

func encodeYAML(w io.Writer, rows []row) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rows); err != nil {
		return err
	}
	return enc.Close()
}

func encodeTOML(w io.Writer, rows []row) error {
	for i := range rows {
		rows[i].Fields = dropNulls(rows[i].Fields)
	}
	return toml.NewEncoder(w).Encode(struct {
		Records []row `toml:"records"`
	}{Records: rows})
}

// dropNulls returns a copy of fields without null values, which TOML
// cannot represent.
func dropNulls(fields map[string]any) map[string]any {
	if fields == nil {
		return nil
	}
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if v = dropNullValue(v); v != nil {
			out[k] = v
		}
	}
	return out
}

func dropNullValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return dropNulls(x)
	case []any:
		out := make([]any, 0, len(x))
		for _, item := range x {
			if item = dropNullValue(item); item != nil {
				out = append(out, item)
			}
		}
		return out
	}
	return v
}
