package domain

import "sort"

type tripKey struct {
	householdID string
	modeCode    string
}

// AggregateTripMiles sums annualized weighted distance per household and raw
// transport mode code: for each trip, Weight * Miles is added to its
// (household, mode) bucket. Zero and negative weights contribute as-is; the
// upstream file uses weight 0 for trips that should not expand nationally,
// and dropping them here would silently change totals.
//
// The result is sorted by household ID then mode code so downstream joins
// and tests see a stable order regardless of input order.
func AggregateTripMiles(trips []Trip) []ModeDistance {
	sums := make(map[tripKey]float64, len(trips))
	for _, t := range trips {
		k := tripKey{householdID: t.HouseholdID, modeCode: t.ModeCode}
		sums[k] += t.Weight * t.Miles
	}

	out := make([]ModeDistance, 0, len(sums))
	for k, miles := range sums {
		out = append(out, ModeDistance{
			HouseholdID: k.householdID,
			ModeCode:    k.modeCode,
			Miles:       miles,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].HouseholdID != out[j].HouseholdID {
			return out[i].HouseholdID < out[j].HouseholdID
		}
		return out[i].ModeCode < out[j].ModeCode
	})

	return out
}
