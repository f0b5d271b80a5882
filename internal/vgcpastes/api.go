package vgcpastes

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/vgcbench/teamscrape/internal/common"
)

// APISource reads the spreadsheet through the Sheets v4 API instead of the
// public endpoints. The spreadsheet is public, so an API key is enough; it is
// the more polite option when one is available.
type APISource struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewAPISource creates a Sheets API source using API-key authentication.
func NewAPISource(ctx context.Context, apiKey, spreadsheetID string) (*APISource, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: sheets API key", common.ErrMissingConfig)
	}
	if spreadsheetID == "" {
		spreadsheetID = DefaultSpreadsheetID
	}
	svc, err := sheets.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &APISource{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// SheetNames lists the spreadsheet's tab names in sheet order.
func (s *APISource) SheetNames(ctx context.Context) ([]string, error) {
	resp, err := s.svc.Spreadsheets.Get(s.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list sheets: %w", err)
	}
	names := make([]string, 0, len(resp.Sheets))
	for _, sheet := range resp.Sheets {
		if sheet.Properties == nil {
			continue
		}
		names = append(names, sheet.Properties.Title)
	}
	return names, nil
}

// Rows fetches one tab's cell values as strings.
func (s *APISource) Rows(ctx context.Context, sheetName string) ([][]string, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, fmt.Sprintf("'%s'", sheetName)).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sheet %q: %w", sheetName, err)
	}
	rows := make([][]string, 0, len(resp.Values))
	for _, values := range resp.Values {
		row := make([]string, len(values))
		for i, cell := range values {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
