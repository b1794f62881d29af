package domain

import "time"

// Household is one decoded row of the household table.
type Household struct {
	ID          string  // HOUSEID
	Weight      float64 // WTHHFIN, national expansion weight
	IncomeCode  string  // HHFAMINC category code, zero-padded
	DensityCode int     // HTPPOPDN, persons per square mile of home tract
}

// Trip is one decoded row of the trip table.
type Trip struct {
	HouseholdID string  // HOUSEID
	ModeCode    string  // TRPTRANS transport mode code, zero-padded
	Weight      float64 // WTTRDFIN, annualized trip weight
	Miles       float64 // TRPMILES, trip distance in miles
}

// Person is one decoded row of the person table. Loaded for completeness
// reporting; the distance summary does not consume it.
type Person struct {
	HouseholdID string // HOUSEID
	PersonID    string // PERSONID
}

// SurveyTables bundles the three tables extracted from one survey archive.
type SurveyTables struct {
	Households []Household
	Trips      []Trip
	Persons    []Person
}

// ModeDistance is the annualized weighted distance for one household and one
// raw transport mode code: sum over the household's trips in that mode of
// trip weight times trip miles.
type ModeDistance struct {
	HouseholdID string
	ModeCode    string
	Miles       float64
}

// HouseholdModeDistance is one row of the left join of households onto their
// aggregated mode distances. Households without trips appear exactly once
// with ModeCode set to NoTripMode and zero miles.
type HouseholdModeDistance struct {
	Household Household
	ModeCode  string
	Miles     float64
}

// ClassifiedHousehold is a joined row with its codes resolved to tier labels.
type ClassifiedHousehold struct {
	HouseholdID string
	Weight      float64
	DensityTier string
	IncomeTier  string
	ModeTier    string
	Miles       float64
}

// SummaryCell is one (density, income, mode) cell of the final summary.
// Households sums the household expansion weights contributing to the cell
// and TotalMiles sums household weight times the row's annualized miles, so
// AvgMiles is a population-weighted average, not a sample mean.
type SummaryCell struct {
	DensityTier string
	IncomeTier  string
	ModeTier    string
	Households  float64
	TotalMiles  float64
	AvgMiles    float64
}

// Summary is the complete chart-ready table, ordered by tier rank.
type Summary struct {
	Cells       []SummaryCell
	GeneratedAt time.Time
}
