// Command validate runs integrity checks against a local survey archive
// without rendering anything. It decodes the archive with the same adapter
// the pipeline uses, then checks referential integrity, tier coverage, and
// the summary invariants.
//
// Usage:
//
//	go run ./cmd/validate -archive testdata/survey.zip
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/couchcryptid/survey-data-viz/internal/adapter/nhts"
	"github.com/couchcryptid/survey-data-viz/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	archive := flag.String("archive", "", "path to a survey ZIP archive")
	flag.Parse()

	if *archive == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*archive); code != 0 {
		os.Exit(code)
	}
}

func run(path string) int {
	fmt.Println("=== Survey Archive Validation ===")
	fmt.Println()

	tables, err := nhts.DecodeArchive(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: decode archive: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateReferences(tables),
		validateCoverage(tables),
		validateSummary(tables),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-40s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d households, %d trips, %d persons\n",
		len(tables.Households), len(tables.Trips), len(tables.Persons))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phase 1: Referential Integrity ──
// Trips and persons must reference households that exist, and household IDs
// must be unique.

func validateReferences(tables domain.SurveyTables) *phase {
	p := &phase{name: "Phase 1: Referential Integrity"}

	ids := make(map[string]bool, len(tables.Households))
	for _, hh := range tables.Households {
		if ids[hh.ID] {
			p.errorf("duplicate household ID %q", hh.ID)
		}
		ids[hh.ID] = true
	}

	for i, trip := range tables.Trips {
		if !ids[trip.HouseholdID] {
			p.errorf("trip %d: unknown household %q", i, trip.HouseholdID)
		}
	}
	for i, person := range tables.Persons {
		if !ids[person.HouseholdID] {
			p.errorf("person %d: unknown household %q", i, person.HouseholdID)
		}
	}
	return p
}

// ── Phase 2: Tier Coverage ──
// A render from this archive should fill every chart position, so each
// density tier, income tier, and mode group needs at least one row.

func validateCoverage(tables domain.SurveyTables) *phase {
	p := &phase{name: "Phase 2: Tier Coverage"}

	density := map[string]int{}
	income := map[string]int{}
	var excluded int
	for _, hh := range tables.Households {
		dTier, dOK := domain.ClassifyDensity(hh.DensityCode)
		iTier, iOK := domain.ClassifyIncome(hh.IncomeCode)
		if !dOK || !iOK {
			excluded++
			continue
		}
		density[dTier]++
		income[iTier]++
	}
	if excluded > 0 {
		fmt.Printf("  Note: %d household(s) carry sentinel codes and will be excluded\n", excluded)
	}

	for _, tier := range domain.DensityTiers {
		if density[tier] == 0 {
			p.errorf("no classifiable households in density tier %q", tier)
		}
	}
	for _, tier := range domain.IncomeTiers {
		if income[tier] == 0 {
			p.errorf("no classifiable households in income tier %q", tier)
		}
	}

	modes := map[string]int{}
	for _, trip := range tables.Trips {
		modes[domain.ClassifyMode(trip.ModeCode)]++
	}
	for _, tier := range domain.ModeTiers {
		if modes[tier] == 0 {
			p.errorf("no trips in mode group %q", tier)
		}
	}
	return p
}

// ── Phase 3: Summary Invariants ──
// Runs the real aggregation stages and checks the invariants the renderer
// relies on: the join keeps every household, retained cells carry positive
// weight, averages divide exactly, and the dropped mode group stays out.

func validateSummary(tables domain.SurveyTables) *phase {
	p := &phase{name: "Phase 3: Summary Invariants"}

	distances := domain.AggregateTripMiles(tables.Trips)
	joined := domain.JoinModeDistances(tables.Households, distances)

	joinedIDs := map[string]bool{}
	for _, row := range joined {
		joinedIDs[row.Household.ID] = true
	}
	uniqueIDs := map[string]bool{}
	for _, hh := range tables.Households {
		uniqueIDs[hh.ID] = true
	}
	if len(joinedIDs) != len(uniqueIDs) {
		p.errorf("join lost households: %d in, %d out", len(uniqueIDs), len(joinedIDs))
	}

	classified, _ := domain.ClassifyHouseholds(joined)
	summary, err := domain.Summarize(classified)
	if err != nil {
		p.errorf("summarize: %v", err)
		return p
	}

	for _, cell := range summary.Cells {
		key := fmt.Sprintf("%s / %s / %s", cell.DensityTier, cell.IncomeTier, cell.ModeTier)
		if cell.ModeTier == domain.ModeOther {
			p.errorf("%s: dropped mode group leaked into the summary", key)
		}
		if cell.Households <= 0 {
			p.errorf("%s: non-positive household weight %g", key, cell.Households)
		} else if !floatEq(cell.AvgMiles, cell.TotalMiles/cell.Households) {
			p.errorf("%s: avg %g != total %g / households %g", key, cell.AvgMiles, cell.TotalMiles, cell.Households)
		}
	}
	return p
}

// ── Helpers ──

func floatEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
