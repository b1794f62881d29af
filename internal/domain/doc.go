// Package domain models 2017 National Household Travel Survey (NHTS) data.
//
// # Data Source
//
// The survey is published by the Oak Ridge National Laboratory for the
// Federal Highway Administration as a ZIP of CSV files, one per survey
// table, at https://nhts.ornl.gov/. This program reads three of them:
//
//	hhpub.csv    households: one row per sampled household
//	trippub.csv  trips: one row per recorded trip
//	perpub.csv   persons: one row per household member
//
// # Survey Data Conventions
//
// Weights:
//
//	Every table carries national expansion weights. WTHHFIN scales a sampled
//	household to the number of US households it represents; WTTRDFIN scales
//	a recorded trip to annualized national trips. Totals in this package are
//	weighted sums, never raw row counts. A weight of 0 means the row should
//	not expand nationally and is kept in sums as-is.
//
// Category codes:
//
//	Categorical columns hold zero-padded numeric codes ("01", "02", ...).
//	Negative codes are sentinels: -1 appropriate skip, -7 refused,
//	-8 don't know, -9 not ascertained.
//
// Population density (HTPPOPDN):
//
//	Pre-bucketed persons per square mile of the home census tract. Only
//	eight representative values occur: 50, 300, 750, 1500, 3000, 7000,
//	17000, 30000. Collapsed here into four tiers:
//
//	  <1,000        50, 300, 750
//	  1,000-4,999   1500, 3000
//	  5,000-24,999  7000, 17000
//	  25,000+       30000
//
//	Sentinel or unexpected values exclude the household. See [ClassifyDensity].
//
// Household income (HHFAMINC):
//
//	Eleven brackets from under $10,000 ("01") to $200,000 or more ("11"),
//	collapsed into three tiers:
//
//	  <$50k       01-05
//	  $50k-$100k  06, 07
//	  >$100k      08-11
//
//	Sentinel values exclude the household. See [ClassifyIncome].
//
// Transport mode (TRPTRANS):
//
//	Around twenty vehicle-type codes, collapsed into two charted tiers plus
//	a remainder:
//
//	  active/transit  01 walk, 02 bicycle, 11 public bus, 12 paratransit,
//	                  13 private/charter bus, 14 city-to-city bus,
//	                  15 Amtrak/commuter rail, 16 subway/light rail
//	  car/truck       03 car, 04 SUV, 05 van, 06 pickup truck, 09 RV,
//	                  18 rental car
//	  other           everything else (airplane, boat, motorcycle, ...)
//
//	The mapping is total so classification never drops a trip row. See
//	[ClassifyMode].
//
// Households without trips:
//
//	The household file is the authoritative roster. A household with no rows
//	in the trip file still belongs in the summary with zero distance; the
//	join assigns it the synthetic mode code [NoTripMode], which classifies
//	as "other" and therefore leaves the charted tiers untouched.
package domain
