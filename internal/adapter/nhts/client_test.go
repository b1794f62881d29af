package nhts

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/couchcryptid/survey-data-viz/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	householdCSV = "HOUSEID,WTHHFIN,HHFAMINC,HTPPOPDN\nH1,2.0,06,50\nH2,1.5,-9,3000\n"
	tripCSV      = "HOUSEID,TRPTRANS,WTTRDFIN,TRPMILES\nH1,01,1.0,10\nH1,03,1.0,20\n"
	personCSV    = "HOUSEID,PERSONID\nH1,01\nH1,02\nH2,01\n"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func buildArchive(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func defaultEntries() map[string]string {
	return map[string]string{
		householdEntry: householdCSV,
		tripEntry:      tripCSV,
		personEntry:    personCSV,
	}
}

func serveArchive(t *testing.T, body []byte) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/zip")
		_, _ = w.Write(body)
	}))
}

func tempArchives(t *testing.T) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(os.TempDir(), "nhts-*.zip"))
	require.NoError(t, err)
	return matches
}

func TestClient_FetchTables_Success(t *testing.T) {
	srv := serveArchive(t, buildArchive(t, defaultEntries()))
	defer srv.Close()

	before := tempArchives(t)

	c := NewClient(srv.URL, 5*time.Second, testLogger())
	tables, err := c.FetchTables(context.Background())
	require.NoError(t, err)

	require.Len(t, tables.Households, 2)
	assert.Equal(t, domain.Household{ID: "H1", Weight: 2.0, IncomeCode: "06", DensityCode: 50}, tables.Households[0])
	assert.Equal(t, domain.Household{ID: "H2", Weight: 1.5, IncomeCode: "-9", DensityCode: 3000}, tables.Households[1])

	require.Len(t, tables.Trips, 2)
	assert.Equal(t, domain.Trip{HouseholdID: "H1", ModeCode: "01", Weight: 1.0, Miles: 10}, tables.Trips[0])

	assert.Len(t, tables.Persons, 3)

	// The downloaded archive must not outlive the call.
	assert.Equal(t, before, tempArchives(t))
}

func TestClient_FetchTables_NestedEntryNames(t *testing.T) {
	srv := serveArchive(t, buildArchive(t, map[string]string{
		"csv/" + householdEntry: householdCSV,
		"csv/" + tripEntry:      tripCSV,
		"csv/" + personEntry:    personCSV,
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, testLogger())
	tables, err := c.FetchTables(context.Background())
	require.NoError(t, err)
	assert.Len(t, tables.Households, 2)
}

func TestClient_FetchTables_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, testLogger())
	_, err := c.FetchTables(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.Contains(t, err.Error(), "404")
}

func TestClient_FetchTables_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 50*time.Millisecond, testLogger())
	_, err := c.FetchTables(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestClient_FetchTables_NotAnArchive(t *testing.T) {
	srv := serveArchive(t, []byte("this is not a zip file"))
	defer srv.Close()

	before := tempArchives(t)

	c := NewClient(srv.URL, 5*time.Second, testLogger())
	_, err := c.FetchTables(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrArchive)

	// Cleanup also runs on the error path.
	assert.Equal(t, before, tempArchives(t))
}

func TestClient_FetchTables_MissingEntry(t *testing.T) {
	entries := defaultEntries()
	delete(entries, tripEntry)
	srv := serveArchive(t, buildArchive(t, entries))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, testLogger())
	_, err := c.FetchTables(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrArchive)
	assert.Contains(t, err.Error(), tripEntry)
}

func TestClient_FetchTables_MalformedTable(t *testing.T) {
	entries := defaultEntries()
	entries[tripEntry] = "HOUSEID,TRPTRANS,WTTRDFIN,TRPMILES\nH1,01,abc,10\n"
	srv := serveArchive(t, buildArchive(t, entries))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, testLogger())
	_, err := c.FetchTables(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
	assert.Contains(t, err.Error(), colTripWt)
}
