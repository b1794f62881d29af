package domain

// Population density tier labels, ordered least to most urban.
const (
	DensityUnder1k = "<1,000"
	Density1kTo5k  = "1,000-4,999"
	Density5kTo25k = "5,000-24,999"
	Density25kPlus = "25,000+"
)

// Income tier labels, ordered low to high.
const (
	IncomeLow  = "<$50k"
	IncomeMid  = "$50k-$100k"
	IncomeHigh = ">$100k"
)

// Transport mode tier labels.
const (
	ModeActiveTransit = "active/transit"
	ModeCarTruck      = "car/truck"
	ModeOther         = "other"
)

// NoTripMode is the synthetic mode code assigned to households with no
// recorded trips. It is not a survey code and always classifies as ModeOther.
const NoTripMode = "none"

// Display order for each tier axis. Summaries, charts, and workbooks all
// follow these orders so output is stable run to run.
var (
	DensityTiers = []string{DensityUnder1k, Density1kTo5k, Density5kTo25k, Density25kPlus}
	IncomeTiers  = []string{IncomeLow, IncomeMid, IncomeHigh}
	ModeTiers    = []string{ModeActiveTransit, ModeCarTruck, ModeOther}
)

// Tier membership tables, from the published codebook. The classifiers are
// exact-match lookups against these code sets.
var (
	densityTierByCode = map[int]string{
		50:    DensityUnder1k,
		300:   DensityUnder1k,
		750:   DensityUnder1k,
		1500:  Density1kTo5k,
		3000:  Density1kTo5k,
		7000:  Density5kTo25k,
		17000: Density5kTo25k,
		30000: Density25kPlus,
	}

	incomeTierByCode = map[string]string{
		"01": IncomeLow,
		"02": IncomeLow,
		"03": IncomeLow,
		"04": IncomeLow,
		"05": IncomeLow,
		"06": IncomeMid,
		"07": IncomeMid,
		"08": IncomeHigh,
		"09": IncomeHigh,
		"10": IncomeHigh,
		"11": IncomeHigh,
	}

	modeTierByCode = map[string]string{
		"01": ModeActiveTransit, // walk
		"02": ModeActiveTransit, // bicycle
		"11": ModeActiveTransit, // public bus
		"12": ModeActiveTransit, // paratransit
		"13": ModeActiveTransit, // private/charter bus
		"14": ModeActiveTransit, // city-to-city bus
		"15": ModeActiveTransit, // Amtrak/commuter rail
		"16": ModeActiveTransit, // subway/light rail
		"03": ModeCarTruck,      // car
		"04": ModeCarTruck,      // SUV
		"05": ModeCarTruck,      // van
		"06": ModeCarTruck,      // pickup truck
		"09": ModeCarTruck,      // RV
		"18": ModeCarTruck,      // rental car
	}
)

// ClassifyDensity maps an HTPPOPDN code to its density tier label.
// The upstream file pre-buckets tract density into eight representative
// values; anything else, including the -9 "not ascertained" sentinel,
// returns false and excludes the household.
func ClassifyDensity(code int) (string, bool) {
	tier, ok := densityTierByCode[code]
	return tier, ok
}

// ClassifyIncome maps an HHFAMINC code to its income tier label.
// Codes "01" through "11" are ascending brackets; the refused, unknown, and
// not-ascertained sentinels ("-7", "-8", "-9") return false and exclude the
// household.
func ClassifyIncome(code string) (string, bool) {
	tier, ok := incomeTierByCode[code]
	return tier, ok
}

// ClassifyMode maps a TRPTRANS code to a transport mode tier. The mapping is
// total: every value outside the two charted sets, including NoTripMode and
// codes this program does not list, falls through to ModeOther.
func ClassifyMode(code string) string {
	if tier, ok := modeTierByCode[code]; ok {
		return tier
	}
	return ModeOther
}

// tierRank returns the position of label within order, or len(order) for
// labels not present. Used for deterministic summary sorting.
func tierRank(order []string, label string) int {
	for i, l := range order {
		if l == label {
			return i
		}
	}
	return len(order)
}
