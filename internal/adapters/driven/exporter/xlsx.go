package exporter

import (
	"context"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/hybra-cli/internal/core/domain"
	"github.com/custodia-labs/hybra-cli/internal/core/ports/driven"
)

// SheetName is the worksheet records are written to.
const SheetName = "records"

// XLSXExporter writes an Excel workbook with one records sheet.
type XLSXExporter struct{}

var _ driven.Exporter = (*XLSXExporter)(nil)

// NewXLSXExporter creates an Excel exporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

func (e *XLSXExporter) Format() string {
	return "xlsx"
}

func (e *XLSXExporter) Export(ctx context.Context, records []domain.Record, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("xlsx sheet: %w", err)
	}

	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("xlsx header: %w", err)
	}

	for i, r := range toRows(records) {
		cells, err := r.cells()
		if err != nil {
			return fmt.Errorf("record %s: %w", r.ID, err)
		}
		values := make([]any, len(cells))
		for j, c := range cells {
			values[j] = c
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("xlsx row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		os.Remove(path)
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
