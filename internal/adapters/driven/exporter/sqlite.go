package exporter

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/custodia-labs/hybra-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/hybra-cli/internal/core/domain"
	"github.com/custodia-labs/hybra-cli/internal/core/ports/driven"
)

// SQLiteExporter writes records to a fresh SQLite database.
type SQLiteExporter struct {
	format string
}

var _ driven.Exporter = (*SQLiteExporter)(nil)

// NewSQLiteExporter creates a SQLite exporter for the given extension.
func NewSQLiteExporter(format string) *SQLiteExporter {
	return &SQLiteExporter{format: format}
}

func (e *SQLiteExporter) Format() string {
	return e.format
}

// Export replaces any file at path with a database holding records.
func (e *SQLiteExporter) Export(ctx context.Context, records []domain.Record, path string) (err error) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("replace %s: %w", path, err)
	}

	store, err := sqlite.NewStore(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	return store.SaveRecords(ctx, records)
}
