package xlsx

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/couchcryptid/survey-data-viz/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSummary() domain.Summary {
	return domain.Summary{
		Cells: []domain.SummaryCell{
			{DensityTier: domain.DensityUnder1k, IncomeTier: domain.IncomeLow, ModeTier: domain.ModeActiveTransit, Households: 2, TotalMiles: 20, AvgMiles: 10},
			{DensityTier: domain.Density1kTo5k, IncomeTier: domain.IncomeHigh, ModeTier: domain.ModeCarTruck, Households: 4, TotalMiles: 90, AvgMiles: 22.5},
		},
		GeneratedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestExporter_Export(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.xlsx")
	e := NewExporter(testLogger())

	require.NoError(t, e.Export(testSummary(), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{summarySheet, runInfoSheet}, f.GetSheetList())

	rows, err := f.GetRows(summarySheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, summaryHeaders, rows[0])
	assert.Equal(t, []string{domain.DensityUnder1k, domain.IncomeLow, domain.ModeActiveTransit, "2", "20", "10"}, rows[1])
	assert.Equal(t, []string{domain.Density1kTo5k, domain.IncomeHigh, domain.ModeCarTruck, "4", "90", "22.5"}, rows[2])

	generated, err := f.GetCellValue(runInfoSheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01T12:00:00Z", generated)

	cells, err := f.GetCellValue(runInfoSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "2", cells)
}

func TestExporter_Export_EmptySummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.xlsx")
	e := NewExporter(testLogger())

	require.NoError(t, e.Export(domain.Summary{GeneratedAt: time.Now()}, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(summarySheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, summaryHeaders, rows[0])
}

func TestExporter_Export_OverwritesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a workbook"), 0o644))

	e := NewExporter(testLogger())
	require.NoError(t, e.Export(testSummary(), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(summarySheet)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestExporter_Export_UnwritablePath(t *testing.T) {
	e := NewExporter(testLogger())

	err := e.Export(testSummary(), filepath.Join(t.TempDir(), "missing", "summary.xlsx"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "save workbook")
}
