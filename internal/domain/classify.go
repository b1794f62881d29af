package domain

// JoinModeDistances left-joins the household table onto the aggregated mode
// distances. Every household in households appears in the output: once per
// mode it recorded trips in, or exactly once with ModeCode set to NoTripMode
// and zero miles when it recorded none. Distances whose household ID does not
// appear in households are dropped, matching the survey convention that the
// household file is the authoritative roster.
//
// Output order follows the household input order, with each household's mode
// rows in the order they appear in distances.
func JoinModeDistances(households []Household, distances []ModeDistance) []HouseholdModeDistance {
	byHousehold := make(map[string][]ModeDistance, len(households))
	for _, d := range distances {
		byHousehold[d.HouseholdID] = append(byHousehold[d.HouseholdID], d)
	}

	out := make([]HouseholdModeDistance, 0, len(distances))
	for _, hh := range households {
		modes := byHousehold[hh.ID]
		if len(modes) == 0 {
			out = append(out, HouseholdModeDistance{
				Household: hh,
				ModeCode:  NoTripMode,
				Miles:     0,
			})
			continue
		}
		for _, d := range modes {
			out = append(out, HouseholdModeDistance{
				Household: hh,
				ModeCode:  d.ModeCode,
				Miles:     d.Miles,
			})
		}
	}

	return out
}

// ExclusionCounts tallies households dropped by the classification filters,
// by reason. A household failing both filters counts once, under density.
type ExclusionCounts struct {
	Density int
	Income  int
}

// ClassifyHouseholds resolves survey codes to tier labels for each joined
// row. Rows whose household carries a sentinel or unknown density or income
// code are excluded entirely rather than labeled; mode classification is
// total, so it never excludes. All rows of an excluded household are dropped
// but the household is counted once per ExclusionCounts.
func ClassifyHouseholds(rows []HouseholdModeDistance) ([]ClassifiedHousehold, ExclusionCounts) {
	var excluded ExclusionCounts
	counted := make(map[string]bool)

	out := make([]ClassifiedHousehold, 0, len(rows))
	for _, row := range rows {
		densityTier, ok := ClassifyDensity(row.Household.DensityCode)
		if !ok {
			if !counted[row.Household.ID] {
				counted[row.Household.ID] = true
				excluded.Density++
			}
			continue
		}

		incomeTier, ok := ClassifyIncome(row.Household.IncomeCode)
		if !ok {
			if !counted[row.Household.ID] {
				counted[row.Household.ID] = true
				excluded.Income++
			}
			continue
		}

		out = append(out, ClassifiedHousehold{
			HouseholdID: row.Household.ID,
			Weight:      row.Household.Weight,
			DensityTier: densityTier,
			IncomeTier:  incomeTier,
			ModeTier:    ClassifyMode(row.ModeCode),
			Miles:       row.Miles,
		})
	}

	return out, excluded
}
