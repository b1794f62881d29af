package nhts

import (
	"strings"
	"testing"

	"github.com/couchcryptid/survey-data-viz/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeHouseholds(t *testing.T) {
	in := strings.NewReader("HOUSEID,WTHHFIN,HHFAMINC,HTPPOPDN,TRAVDAY\nH1,2.5,06,300,02\n")

	hh, err := decodeHouseholds(in)

	require.NoError(t, err)
	require.Len(t, hh, 1)
	// The extra TRAVDAY column is ignored.
	assert.Equal(t, domain.Household{ID: "H1", Weight: 2.5, IncomeCode: "06", DensityCode: 300}, hh[0])
}

func TestDecodeHouseholds_SentinelCodesDecodeAsIs(t *testing.T) {
	// Sentinels survive decoding; exclusion is the classifier's job.
	in := strings.NewReader("HOUSEID,WTHHFIN,HHFAMINC,HTPPOPDN\nH1,1.0,-9,-9\n")

	hh, err := decodeHouseholds(in)

	require.NoError(t, err)
	assert.Equal(t, "-9", hh[0].IncomeCode)
	assert.Equal(t, -9, hh[0].DensityCode)
}

func TestDecodeHouseholds_MissingColumn(t *testing.T) {
	in := strings.NewReader("HOUSEID,WTHHFIN,HHFAMINC\nH1,2.5,06\n")

	_, err := decodeHouseholds(in)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
	assert.Contains(t, err.Error(), colDensity)
}

func TestDecodeHouseholds_Empty(t *testing.T) {
	in := strings.NewReader("HOUSEID,WTHHFIN,HHFAMINC,HTPPOPDN\n")

	hh, err := decodeHouseholds(in)

	require.NoError(t, err)
	assert.Empty(t, hh)
}

func TestDecodeTrips(t *testing.T) {
	in := strings.NewReader("HOUSEID,TRPTRANS,WTTRDFIN,TRPMILES\nH1, 01 ,12.5,3.25\n")

	trips, err := decodeTrips(in)

	require.NoError(t, err)
	require.Len(t, trips, 1)
	// Field whitespace is trimmed.
	assert.Equal(t, domain.Trip{HouseholdID: "H1", ModeCode: "01", Weight: 12.5, Miles: 3.25}, trips[0])
}

func TestDecodeTrips_BadNumber(t *testing.T) {
	in := strings.NewReader("HOUSEID,TRPTRANS,WTTRDFIN,TRPMILES\nH1,01,1.0,5\nH2,03,abc,10\n")

	_, err := decodeTrips(in)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
	assert.Contains(t, err.Error(), colTripWt)
	assert.Contains(t, err.Error(), "line 3")
}

func TestDecodePersons(t *testing.T) {
	in := strings.NewReader("HOUSEID,PERSONID\nH1,01\nH1,02\n")

	persons, err := decodePersons(in)

	require.NoError(t, err)
	assert.Equal(t, []domain.Person{
		{HouseholdID: "H1", PersonID: "01"},
		{HouseholdID: "H1", PersonID: "02"},
	}, persons)
}

func TestDecodePersons_RaggedRow(t *testing.T) {
	in := strings.NewReader("HOUSEID,PERSONID\nH1\n")

	_, err := decodePersons(in)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
}

func TestDecode_EmptyInput(t *testing.T) {
	_, err := decodeHouseholds(strings.NewReader(""))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
	assert.Contains(t, err.Error(), "header")
}
