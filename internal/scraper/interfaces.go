package scraper

import "context"

// SheetSource lists the spreadsheet's tabs and materializes one tab's rows.
// Implementations: the public gviz client, the Sheets API client, test fakes.
type SheetSource interface {
	SheetNames(ctx context.Context) ([]string, error)
	Rows(ctx context.Context, sheetName string) ([][]string, error)
}

// PasteSource resolves a paste URL to normalized team text.
type PasteSource interface {
	RawTeam(ctx context.Context, pasteURL string) (string, error)
}

// Validator is the pass/fail parse oracle for team text. A returned error
// means the team is dropped as a data-quality rejection, not a crash.
type Validator interface {
	Validate(teamText string) error
}
