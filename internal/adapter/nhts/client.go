// Package nhts downloads the published NHTS CSV bundle and decodes the
// survey tables this pipeline consumes.
package nhts

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/couchcryptid/survey-data-viz/internal/domain"
)

// Fetch error kinds. Returned wrapped with request context; callers match
// with errors.Is.
var (
	ErrNetwork = errors.New("network error")
	ErrArchive = errors.New("archive error")
	ErrParse   = errors.New("parse error")
)

// Archive entry names for the three survey tables. Matched on base name so
// a bundle that nests its files under a folder still decodes.
const (
	householdEntry = "hhpub.csv"
	tripEntry      = "trippub.csv"
	personEntry    = "perpub.csv"
)

// Client downloads the survey archive and decodes its tables.
type Client struct {
	sourceURL  string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a survey archive client with a hard request timeout.
func NewClient(sourceURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		sourceURL: sourceURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// FetchTables downloads the archive to a temporary file, decodes the three
// survey tables from it, and removes the file before returning. The
// temporary file never outlives the call, on success or error.
func (c *Client) FetchTables(ctx context.Context) (domain.SurveyTables, error) {
	zipPath, err := c.download(ctx)
	if err != nil {
		return domain.SurveyTables{}, err
	}
	defer func() {
		if err := os.Remove(zipPath); err != nil {
			c.logger.Warn("remove downloaded archive failed", "path", zipPath, "error", err)
		}
	}()

	tables, err := DecodeArchive(zipPath)
	if err != nil {
		return domain.SurveyTables{}, err
	}

	c.logger.Info("tables decoded",
		"households", len(tables.Households),
		"trips", len(tables.Trips),
		"persons", len(tables.Persons),
	)
	return tables, nil
}

func (c *Client) download(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.sourceURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: GET %s: %v", ErrNetwork, c.sourceURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: GET %s: status %d", ErrNetwork, c.sourceURL, resp.StatusCode)
	}

	tmp, err := os.CreateTemp("", "nhts-*.zip")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	written, err := io.Copy(tmp, resp.Body)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: download %s: %v", ErrNetwork, c.sourceURL, err)
	}

	c.logger.Info("archive downloaded", "url", c.sourceURL, "bytes", written)
	return tmp.Name(), nil
}

// DecodeArchive decodes the three survey tables from a ZIP archive on disk.
// Entries are matched by base name because the published bundle nests them
// under a csv/ directory.
func DecodeArchive(zipPath string) (domain.SurveyTables, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return domain.SurveyTables{}, fmt.Errorf("%w: open archive: %v", ErrArchive, err)
	}
	defer zr.Close()

	var tables domain.SurveyTables

	entry, err := openEntry(&zr.Reader, householdEntry)
	if err != nil {
		return domain.SurveyTables{}, err
	}
	tables.Households, err = decodeHouseholds(entry)
	entry.Close()
	if err != nil {
		return domain.SurveyTables{}, err
	}

	entry, err = openEntry(&zr.Reader, tripEntry)
	if err != nil {
		return domain.SurveyTables{}, err
	}
	tables.Trips, err = decodeTrips(entry)
	entry.Close()
	if err != nil {
		return domain.SurveyTables{}, err
	}

	entry, err = openEntry(&zr.Reader, personEntry)
	if err != nil {
		return domain.SurveyTables{}, err
	}
	tables.Persons, err = decodePersons(entry)
	entry.Close()
	if err != nil {
		return domain.SurveyTables{}, err
	}

	return tables, nil
}

// openEntry finds an archive entry by base name.
func openEntry(zr *zip.Reader, name string) (io.ReadCloser, error) {
	for _, f := range zr.File {
		if path.Base(f.Name) != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: open entry %s: %v", ErrArchive, name, err)
		}
		return rc, nil
	}
	return nil, fmt.Errorf("%w: entry %s not found", ErrArchive, name)
}
