package nhts

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/couchcryptid/survey-data-viz/internal/domain"
)

// Required columns per table. Extra columns are ignored.
const (
	colHouseholdID = "HOUSEID"
	colHouseholdWt = "WTHHFIN"
	colIncome      = "HHFAMINC"
	colDensity     = "HTPPOPDN"
	colMode        = "TRPTRANS"
	colTripWt      = "WTTRDFIN"
	colMiles       = "TRPMILES"
	colPersonID    = "PERSONID"
)

// table reads one CSV entry with header-indexed column access. The survey
// files are plain comma-separated text with a single header row.
type table struct {
	name string
	r    *csv.Reader
	cols map[string]int
	line int
}

func newTable(name string, r io.Reader) (*table, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: read header: %v", ErrParse, name, err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}

	return &table{name: name, r: cr, cols: cols, line: 1}, nil
}

// require fails when a needed column is absent from the header.
func (t *table) require(columns ...string) error {
	for _, col := range columns {
		if _, ok := t.cols[col]; !ok {
			return fmt.Errorf("%w: %s: missing column %s", ErrParse, t.name, col)
		}
	}
	return nil
}

// next returns the following data row, or io.EOF when the table is exhausted.
// The returned slice is only valid until the next call.
func (t *table) next() ([]string, error) {
	row, err := t.r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, t.name, err)
	}
	t.line++
	return row, nil
}

func (t *table) str(row []string, col string) string {
	return strings.TrimSpace(row[t.cols[col]])
}

func (t *table) float(row []string, col string) (float64, error) {
	raw := t.str(row, col)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s line %d: column %s: %q is not a number", ErrParse, t.name, t.line, col, raw)
	}
	return v, nil
}

func (t *table) int(row []string, col string) (int, error) {
	raw := t.str(row, col)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s line %d: column %s: %q is not an integer", ErrParse, t.name, t.line, col, raw)
	}
	return v, nil
}

func decodeHouseholds(r io.Reader) ([]domain.Household, error) {
	t, err := newTable(householdEntry, r)
	if err != nil {
		return nil, err
	}
	if err := t.require(colHouseholdID, colHouseholdWt, colIncome, colDensity); err != nil {
		return nil, err
	}

	var out []domain.Household
	for {
		row, err := t.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		weight, err := t.float(row, colHouseholdWt)
		if err != nil {
			return nil, err
		}
		density, err := t.int(row, colDensity)
		if err != nil {
			return nil, err
		}

		out = append(out, domain.Household{
			ID:          t.str(row, colHouseholdID),
			Weight:      weight,
			IncomeCode:  t.str(row, colIncome),
			DensityCode: density,
		})
	}
	return out, nil
}

func decodeTrips(r io.Reader) ([]domain.Trip, error) {
	t, err := newTable(tripEntry, r)
	if err != nil {
		return nil, err
	}
	if err := t.require(colHouseholdID, colMode, colTripWt, colMiles); err != nil {
		return nil, err
	}

	var out []domain.Trip
	for {
		row, err := t.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		weight, err := t.float(row, colTripWt)
		if err != nil {
			return nil, err
		}
		miles, err := t.float(row, colMiles)
		if err != nil {
			return nil, err
		}

		out = append(out, domain.Trip{
			HouseholdID: t.str(row, colHouseholdID),
			ModeCode:    t.str(row, colMode),
			Weight:      weight,
			Miles:       miles,
		})
	}
	return out, nil
}

func decodePersons(r io.Reader) ([]domain.Person, error) {
	t, err := newTable(personEntry, r)
	if err != nil {
		return nil, err
	}
	if err := t.require(colHouseholdID, colPersonID); err != nil {
		return nil, err
	}

	var out []domain.Person
	for {
		row, err := t.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		out = append(out, domain.Person{
			HouseholdID: t.str(row, colHouseholdID),
			PersonID:    t.str(row, colPersonID),
		})
	}
	return out, nil
}
