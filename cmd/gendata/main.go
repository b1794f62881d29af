// Command gendata writes a synthetic travel-survey archive with the same
// shape as the published NHTS CSV bundle. It routes the generated rows
// through the actual domain classifiers so the printed stats match what the
// pipeline would compute from the fixture.
//
// The fixture covers every density bucket, income tier, and mode group,
// plus the sentinel codes and no-trip households the pipeline has to handle.
//
// Usage:
//
//	go run ./cmd/gendata -out testdata/survey.zip -households 500 -seed 7
package main

import (
	"archive/zip"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/couchcryptid/survey-data-viz/internal/domain"
)

// Code pools mirror the published survey codebook. The mode pool is weighted
// so car modes dominate, as they do in the real data.
var (
	densityCodes = []int{50, 300, 750, 1500, 3000, 7000, 17000, 30000}
	incomeCodes  = []string{"01", "02", "03", "04", "05", "06", "07", "08", "09", "10", "11"}
	modeCodes    = []string{"01", "02", "03", "03", "03", "04", "04", "05", "06", "09", "11", "12", "14", "16", "18", "97"}
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the survey archive")
	households := flag.Int("households", 200, "number of households to generate")
	seed := flag.Int64("seed", 1, "random seed for reproducible fixtures")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if *households < 1 {
		return fmt.Errorf("-households must be at least 1, got %d", *households)
	}

	rng := rand.New(rand.NewSource(*seed))
	tables := generate(rng, *households)

	if err := writeArchive(*out, tables); err != nil {
		return fmt.Errorf("writing archive: %w", err)
	}
	log.Printf("wrote survey archive: %s", *out)

	printStats(tables)
	return nil
}

func generate(rng *rand.Rand, n int) domain.SurveyTables {
	tables := domain.SurveyTables{
		Households: make([]domain.Household, 0, n),
	}

	for i := 0; i < n; i++ {
		hh := domain.Household{
			ID:          fmt.Sprintf("%07d", 3000001+i),
			Weight:      50 + rng.Float64()*450,
			IncomeCode:  incomeCodes[rng.Intn(len(incomeCodes))],
			DensityCode: densityCodes[rng.Intn(len(densityCodes))],
		}
		// A few households refused the income question or have no density
		// estimate, like the real files.
		if rng.Intn(20) == 0 {
			hh.IncomeCode = "-7"
		}
		if rng.Intn(25) == 0 {
			hh.DensityCode = -9
		}
		tables.Households = append(tables.Households, hh)

		persons := 1 + rng.Intn(4)
		for p := 0; p < persons; p++ {
			tables.Persons = append(tables.Persons, domain.Person{
				HouseholdID: hh.ID,
				PersonID:    fmt.Sprintf("%02d", p+1),
			})
		}

		// One household in ten logs no trips at all.
		if rng.Intn(10) == 0 {
			continue
		}
		trips := 1 + rng.Intn(6)
		for j := 0; j < trips; j++ {
			trip := domain.Trip{
				HouseholdID: hh.ID,
				ModeCode:    modeCodes[rng.Intn(len(modeCodes))],
				Weight:      10 + rng.Float64()*390,
				Miles:       0.2 + rng.Float64()*59.8,
			}
			if rng.Intn(40) == 0 {
				trip.ModeCode = "-9"
			}
			tables.Trips = append(tables.Trips, trip)
		}
	}

	return tables
}

func writeArchive(path string, tables domain.SurveyTables) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	zw := zip.NewWriter(f)

	entries := []struct {
		name  string
		write func(*csv.Writer) error
	}{
		{"hhpub.csv", func(w *csv.Writer) error { return writeHouseholds(w, tables.Households) }},
		{"trippub.csv", func(w *csv.Writer) error { return writeTrips(w, tables.Trips) }},
		{"perpub.csv", func(w *csv.Writer) error { return writePersons(w, tables.Persons) }},
	}
	for _, entry := range entries {
		ew, err := zw.Create(entry.name)
		if err != nil {
			f.Close()
			return fmt.Errorf("create %s: %w", entry.name, err)
		}
		w := csv.NewWriter(ew)
		if err := entry.write(w); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", entry.name, err)
		}
		w.Flush()
		if err := w.Error(); err != nil {
			f.Close()
			return fmt.Errorf("flush %s: %w", entry.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeHouseholds(w *csv.Writer, households []domain.Household) error {
	if err := w.Write([]string{"HOUSEID", "WTHHFIN", "HHFAMINC", "HTPPOPDN"}); err != nil {
		return err
	}
	for _, hh := range households {
		row := []string{
			hh.ID,
			strconv.FormatFloat(hh.Weight, 'f', 4, 64),
			hh.IncomeCode,
			strconv.Itoa(hh.DensityCode),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeTrips(w *csv.Writer, trips []domain.Trip) error {
	if err := w.Write([]string{"HOUSEID", "TRPTRANS", "WTTRDFIN", "TRPMILES"}); err != nil {
		return err
	}
	for _, trip := range trips {
		row := []string{
			trip.HouseholdID,
			trip.ModeCode,
			strconv.FormatFloat(trip.Weight, 'f', 4, 64),
			strconv.FormatFloat(trip.Miles, 'f', 3, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writePersons(w *csv.Writer, persons []domain.Person) error {
	if err := w.Write([]string{"HOUSEID", "PERSONID"}); err != nil {
		return err
	}
	for _, person := range persons {
		if err := w.Write([]string{person.HouseholdID, person.PersonID}); err != nil {
			return err
		}
	}
	return nil
}

func printStats(tables domain.SurveyTables) {
	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Households: %d\n", len(tables.Households))
	fmt.Printf("Persons: %d\n", len(tables.Persons))
	fmt.Printf("Trips: %d\n", len(tables.Trips))

	density := map[string]int{}
	income := map[string]int{}
	var densityExcluded, incomeExcluded int
	for _, hh := range tables.Households {
		if tier, ok := domain.ClassifyDensity(hh.DensityCode); ok {
			density[tier]++
		} else {
			densityExcluded++
		}
		if tier, ok := domain.ClassifyIncome(hh.IncomeCode); ok {
			income[tier]++
		} else {
			incomeExcluded++
		}
	}
	for _, tier := range domain.DensityTiers {
		fmt.Printf("Density %q: %d\n", tier, density[tier])
	}
	fmt.Printf("Density excluded: %d\n", densityExcluded)
	for _, tier := range domain.IncomeTiers {
		fmt.Printf("Income %q: %d\n", tier, income[tier])
	}
	fmt.Printf("Income excluded: %d\n", incomeExcluded)

	modes := map[string]int{}
	for _, trip := range tables.Trips {
		modes[domain.ClassifyMode(trip.ModeCode)]++
	}
	for _, tier := range domain.ModeTiers {
		fmt.Printf("Trips %q: %d\n", tier, modes[tier])
	}

	withTrips := map[string]bool{}
	for _, trip := range tables.Trips {
		withTrips[trip.HouseholdID] = true
	}
	fmt.Printf("Households without trips: %d\n", len(tables.Households)-len(withTrips))
}
