package domain

import (
	"errors"
	"fmt"
	"sort"
)

// ErrZeroWeightCell reports a summary cell whose household weights sum to
// zero, which would make the per-household average undefined. It indicates
// broken weights in the source data, so summarization fails rather than
// emitting a NaN or Inf average.
var ErrZeroWeightCell = errors.New("summary cell has zero household weight")

type cellKey struct {
	densityTier string
	incomeTier  string
	modeTier    string
}

// Summarize groups classified rows into (density, income, mode) cells and
// computes per-cell weighted totals and averages. Households is the sum of
// the rows' household weights, TotalMiles the sum of household weight times
// row miles, and AvgMiles their quotient, so AvgMiles is the weighted mean
// annual miles per household in the cell. Cells in the ModeOther tier are
// computed, checked, and then dropped: they exist only to keep the mode
// classification total and carry no chart series.
//
// Cells are ordered by income, density, then mode tier rank. GeneratedAt is
// stamped from the package clock.
func Summarize(rows []ClassifiedHousehold) (Summary, error) {
	sums := make(map[cellKey]*SummaryCell)
	for _, row := range rows {
		k := cellKey{densityTier: row.DensityTier, incomeTier: row.IncomeTier, modeTier: row.ModeTier}
		cell, ok := sums[k]
		if !ok {
			cell = &SummaryCell{
				DensityTier: row.DensityTier,
				IncomeTier:  row.IncomeTier,
				ModeTier:    row.ModeTier,
			}
			sums[k] = cell
		}
		cell.Households += row.Weight
		cell.TotalMiles += row.Weight * row.Miles
	}

	cells := make([]SummaryCell, 0, len(sums))
	for _, cell := range sums {
		if cell.Households == 0 {
			return Summary{}, fmt.Errorf("%w: %s / %s / %s",
				ErrZeroWeightCell, cell.DensityTier, cell.IncomeTier, cell.ModeTier)
		}
		cell.AvgMiles = cell.TotalMiles / cell.Households
		if cell.ModeTier == ModeOther {
			continue
		}
		cells = append(cells, *cell)
	}

	sort.Slice(cells, func(i, j int) bool {
		if a, b := tierRank(IncomeTiers, cells[i].IncomeTier), tierRank(IncomeTiers, cells[j].IncomeTier); a != b {
			return a < b
		}
		if a, b := tierRank(DensityTiers, cells[i].DensityTier), tierRank(DensityTiers, cells[j].DensityTier); a != b {
			return a < b
		}
		return tierRank(ModeTiers, cells[i].ModeTier) < tierRank(ModeTiers, cells[j].ModeTier)
	})

	return Summary{
		Cells:       cells,
		GeneratedAt: clock.Now().UTC(),
	}, nil
}
