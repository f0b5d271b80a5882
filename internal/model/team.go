// Package model holds the core domain types for the team scraping pipeline.
package model

// CandidateRow is one admissible spreadsheet row, extracted from a sheet by
// header-resolved column lookup. All fields carry the raw cell text.
type CandidateRow struct {
	Category    string
	EVsProvided string
	PasteURL    string
	EventName   string
	DateStr     string
	Placement   string
}
