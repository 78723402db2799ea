// Package google implements the workbook store on a Google Sheets
// spreadsheet: one sheet per ledger, the fixed header in row 1, one
// record per row below it. Store positions map one-to-one onto sheet
// row numbers.
package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"spendbook/internal/core"
	"spendbook/internal/ledger"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
}

var _ ledger.Store = (*Client)(nil)

// NewFromEnv creates a Sheets-backed store using environment variables.
// Required: GOOGLE_SPREADSHEET_ID.
// Auth: GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
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

// newSheetsService initializes a Sheets Service using Service Account
// credentials, in order of preference: inline JSON, a credentials file,
// or the standard GOOGLE_APPLICATION_CREDENTIALS path.
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

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

func (c *Client) ListLedgers(ctx context.Context) ([]string, error) {
	props, err := c.sheetProperties(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(props))
	for i, p := range props {
		names[i] = p.Title
	}
	return names, nil
}

func (c *Client) Read(ctx context.Context, name string) ([]core.Record, error) {
	if _, err := c.sheetID(ctx, name); err != nil {
		return nil, err
	}
	return c.readSheet(ctx, name)
}

// ReadAll fetches every sheet concurrently and concatenates the results
// in workbook order. This is still one blocking store call from the
// session's point of view.
func (c *Client) ReadAll(ctx context.Context) ([]core.Record, error) {
	names, err := c.ListLedgers(ctx)
	if err != nil {
		return nil, err
	}

	perSheet := make([][]core.Record, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			recs, err := c.readSheet(gctx, name)
			if err != nil {
				return err
			}
			perSheet[i] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []core.Record
	for _, recs := range perSheet {
		out = append(out, recs...)
	}
	return out, nil
}

func (c *Client) readSheet(ctx context.Context, name string) ([]core.Record, error) {
	resp, err := c.svc.Spreadsheets.Values.
		Get(c.spreadsheetID, fmt.Sprintf("%s!A2:D", name)).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %v", ledger.ErrUnavailable, name, err)
	}
	return parseRows(resp.Values)
}

func (c *Client) Append(ctx context.Context, name string, r core.Record) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if _, err := c.sheetID(ctx, name); err != nil {
		return err
	}
	vr := &gsheet.ValueRange{Values: [][]interface{}{recordRow(r)}}
	_, err := c.svc.Spreadsheets.Values.
		Append(c.spreadsheetID, fmt.Sprintf("%s!A:D", name), vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: append to %q: %v", ledger.ErrUnavailable, name, err)
	}
	return nil
}

func (c *Client) DeleteRow(ctx context.Context, name string, pos int) error {
	if pos < ledger.HeaderOffset {
		return ledger.ErrRowNotFound
	}
	id, err := c.sheetID(ctx, name)
	if err != nil {
		return err
	}
	req := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			DeleteDimension: &gsheet.DeleteDimensionRequest{
				Range: &gsheet.DimensionRange{
					SheetId:    id,
					Dimension:  "ROWS",
					StartIndex: int64(pos - 1), // API rows are 0-based
					EndIndex:   int64(pos),
				},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("%w: delete row %d of %q: %v", ledger.ErrUnavailable, pos, name, err)
	}
	return nil
}

func (c *Client) CreateLedger(ctx context.Context, name string) error {
	if _, err := c.sheetID(ctx, name); err == nil {
		return ledger.ErrLedgerExists
	} else if !errors.Is(err, ledger.ErrNotFound) {
		return err
	}

	req := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			AddSheet: &gsheet.AddSheetRequest{
				Properties: &gsheet.SheetProperties{Title: name},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("%w: create sheet %q: %v", ledger.ErrUnavailable, name, err)
	}

	header := &gsheet.ValueRange{Values: [][]interface{}{headerRow()}}
	_, err := c.svc.Spreadsheets.Values.
		Update(c.spreadsheetID, fmt.Sprintf("%s!A1:D1", name), header).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: write header of %q: %v", ledger.ErrUnavailable, name, err)
	}
	return nil
}

func (c *Client) DeleteLedger(ctx context.Context, name string) error {
	id, err := c.sheetID(ctx, name)
	if err != nil {
		return err
	}
	req := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			DeleteSheet: &gsheet.DeleteSheetRequest{SheetId: id},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("%w: delete sheet %q: %v", ledger.ErrUnavailable, name, err)
	}
	return nil
}

func (c *Client) sheetProperties(ctx context.Context) ([]*gsheet.SheetProperties, error) {
	resp, err := c.svc.Spreadsheets.
		Get(c.spreadsheetID).
		Fields("sheets.properties").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: get spreadsheet: %v", ledger.ErrUnavailable, err)
	}
	props := make([]*gsheet.SheetProperties, len(resp.Sheets))
	for i, sh := range resp.Sheets {
		props[i] = sh.Properties
	}
	return props, nil
}

func (c *Client) sheetID(ctx context.Context, name string) (int64, error) {
	props, err := c.sheetProperties(ctx)
	if err != nil {
		return 0, err
	}
	for _, p := range props {
		if p.Title == name {
			return p.SheetId, nil
		}
	}
	return 0, ledger.ErrNotFound
}
