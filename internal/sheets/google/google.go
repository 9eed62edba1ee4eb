// Package google implements the sheets repository ports on top of the Google
// Sheets API. One Client wraps the values endpoints; the repository types in
// this package build the row location and mapping logic on it.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// valuesAPI is the seam between the repositories and the Sheets service;
// tests substitute a fake.
type valuesAPI interface {
	ValuesForRange(ctx context.Context, rng string) ([][]interface{}, error)
	AppendValues(ctx context.Context, rng string, row []interface{}) (int, error)
	BatchUpdateValues(ctx context.Context, data []RangeValues) error
}

// RangeValues pairs one A1 range with the values to write there.
type RangeValues struct {
	Range  string
	Values [][]interface{}
}

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
}

var _ valuesAPI = (*Client)(nil)

// NewFromEnv creates a Sheets client using environment variables.
// Required: GOOGLE_SPREADSHEET_ID plus service account credentials via
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// New creates a client around an existing service, mainly for tests.
func New(svc *gsheet.Service, spreadsheetID string) *Client {
	return &Client{svc: svc, spreadsheetID: spreadsheetID}
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	slog.InfoContext(ctx, "Creating Google Sheets service",
		"credentials_size", len(credentialsJSON),
		"scope", gsheet.SpreadsheetsScope)

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// ValuesForRange returns the raw cell values of rng, row-major. The first
// row is the header when the range starts at row 1.
func (c *Client) ValuesForRange(ctx context.Context, rng string) ([][]interface{}, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	return resp.Values, nil
}

var trailingRowNumber = regexp.MustCompile(`(\d+)$`)

// AppendValues appends one row after the existing data in rng and returns the
// 1-based sheet row it landed on, parsed from the reply's updated range.
// The reply is authoritative: concurrent edits by other spreadsheet clients
// make any locally computed "next row" unreliable.
func (c *Client) AppendValues(ctx context.Context, rng string, row []interface{}) (int, error) {
	vr := &gsheet.ValueRange{Values: [][]interface{}{row}}
	resp, err := c.svc.Spreadsheets.Values.
		Append(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("append to %s: %w", rng, err)
	}
	if resp.Updates == nil || resp.Updates.UpdatedRange == "" {
		return 0, fmt.Errorf("append to %s: reply carries no updated range", rng)
	}
	match := trailingRowNumber.FindString(resp.Updates.UpdatedRange)
	if match == "" {
		return 0, fmt.Errorf("append to %s: cannot locate row in range %q", rng, resp.Updates.UpdatedRange)
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0, fmt.Errorf("append to %s: row number %q: %w", rng, match, err)
	}
	return n, nil
}

// BatchUpdateValues writes several disjoint ranges in one network call.
// The API gives no cross-range transactional guarantee; a failed call can
// leave a subset of the cells written.
func (c *Client) BatchUpdateValues(ctx context.Context, data []RangeValues) error {
	req := &gsheet.BatchUpdateValuesRequest{
		ValueInputOption: "USER_ENTERED",
		Data:             make([]*gsheet.ValueRange, 0, len(data)),
	}
	for _, d := range data {
		req.Data = append(req.Data, &gsheet.ValueRange{Range: d.Range, Values: d.Values})
	}
	_, err := c.svc.Spreadsheets.Values.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("batch update: %w", err)
	}
	return nil
}
