// Package xlsx exports the mode-distance summary as a spreadsheet workbook.
package xlsx

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/survey-data-viz/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	runInfoSheet = "Run Info"
)

var summaryHeaders = []string{
	"Density Tier",
	"Income Tier",
	"Mode",
	"Households (weighted)",
	"Total Miles (weighted)",
	"Avg Miles / Household",
}

// Exporter writes the summary table to an xlsx workbook so analysts can
// inspect the numbers behind the chart.
type Exporter struct {
	logger *slog.Logger
}

// NewExporter creates an Exporter.
func NewExporter(logger *slog.Logger) *Exporter {
	return &Exporter{logger: logger}
}

// Export writes one row per summary cell to path, overwriting any existing
// workbook. A second sheet records when the summary was generated.
func (e *Exporter) Export(summary domain.Summary, path string) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			e.logger.Warn("close workbook", "error", err)
		}
	}()

	if err := e.writeSummarySheet(f, summary); err != nil {
		return err
	}
	if err := e.writeRunInfoSheet(f, summary); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	e.logger.Info("workbook written", "path", path, "cells", len(summary.Cells))
	return nil
}

func (e *Exporter) writeSummarySheet(f *excelize.File, summary domain.Summary) error {
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}

	for i, header := range summaryHeaders {
		if err := setCell(f, summarySheet, i+1, 1, header); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(summarySheet, "A", "F", 22); err != nil {
		return fmt.Errorf("summary column widths: %w", err)
	}

	for i, cell := range summary.Cells {
		row := i + 2
		values := []any{
			cell.DensityTier,
			cell.IncomeTier,
			cell.ModeTier,
			cell.Households,
			cell.TotalMiles,
			cell.AvgMiles,
		}
		for col, value := range values {
			if err := setCell(f, summarySheet, col+1, row, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Exporter) writeRunInfoSheet(f *excelize.File, summary domain.Summary) error {
	if _, err := f.NewSheet(runInfoSheet); err != nil {
		return fmt.Errorf("create run info sheet: %w", err)
	}

	rows := []struct {
		label string
		value any
	}{
		{"Generated At (UTC)", summary.GeneratedAt.UTC().Format(time.RFC3339)},
		{"Summary Cells", len(summary.Cells)},
	}
	for i, r := range rows {
		if err := setCell(f, runInfoSheet, 1, i+1, r.label); err != nil {
			return err
		}
		if err := setCell(f, runInfoSheet, 2, i+1, r.value); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(runInfoSheet, "A", "B", 24); err != nil {
		return fmt.Errorf("run info column widths: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell name (%d,%d): %w", col, row, err)
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("set %s!%s: %w", sheet, cell, err)
	}
	return nil
}
