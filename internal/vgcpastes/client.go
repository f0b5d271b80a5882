// Package vgcpastes fetches the VGCPastes spreadsheet and the pastes it
// links. The spreadsheet is public, so the default client reads it through
// the browser-facing HTML and the gviz CSV export without authentication; an
// API-key-backed source is available as an alternative.
package vgcpastes

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultSpreadsheetID is the community VGCPastes team database.
const DefaultSpreadsheetID = "1axlwmzPA49rYkqXh7zHvAtSP-TKbM0ijGYBPRflLSWw"

// DefaultMaxHTMLBytes caps how much of the spreadsheet HTML is downloaded
// when listing tabs. Tab captions appear early in the document, so a bounded
// prefix is enough.
const DefaultMaxHTMLBytes = 2_000_000

// Config holds the settings for the public spreadsheet client.
type Config struct {
	HTTPClient    *http.Client
	SpreadsheetID string
	EditURL       string
	GvizURL       string
	MaxHTMLBytes  int64
	ListTimeout   time.Duration
	RowsTimeout   time.Duration
}

// Client reads sheet tabs and rows from the public spreadsheet endpoints.
type Client struct {
	httpClient   *http.Client
	editURL      string
	gvizURL      string
	maxHTMLBytes int64
	listTimeout  time.Duration
	rowsTimeout  time.Duration
}

// NewClient creates a spreadsheet client, filling in defaults for any unset
// config fields.
func NewClient(cfg Config) *Client {
	if cfg.SpreadsheetID == "" {
		cfg.SpreadsheetID = DefaultSpreadsheetID
	}
	if cfg.EditURL == "" {
		cfg.EditURL = fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/edit", cfg.SpreadsheetID)
	}
	if cfg.GvizURL == "" {
		cfg.GvizURL = fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/gviz/tq", cfg.SpreadsheetID)
	}
	if cfg.MaxHTMLBytes <= 0 {
		cfg.MaxHTMLBytes = DefaultMaxHTMLBytes
	}
	if cfg.ListTimeout <= 0 {
		cfg.ListTimeout = 30 * time.Second
	}
	if cfg.RowsTimeout <= 0 {
		cfg.RowsTimeout = 60 * time.Second
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	return &Client{
		httpClient:   cfg.HTTPClient,
		editURL:      cfg.EditURL,
		gvizURL:      cfg.GvizURL,
		maxHTMLBytes: cfg.MaxHTMLBytes,
		listTimeout:  cfg.ListTimeout,
		rowsTimeout:  cfg.RowsTimeout,
	}
}

// SheetNames lists the spreadsheet's tab names in first-seen order. Only a
// byte-capped prefix of the rendering HTML is read; the tab captions are
// extracted from it, so the truncated document is expected.
func (c *Client) SheetNames(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.listTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.editURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Range", fmt.Sprintf("bytes=0-%d", c.maxHTMLBytes))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch spreadsheet page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return nil, fmt.Errorf("spreadsheet page returned status %d", resp.StatusCode)
	}

	html, err := io.ReadAll(io.LimitReader(resp.Body, c.maxHTMLBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read spreadsheet page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(html)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse spreadsheet page: %w", err)
	}

	seen := make(map[string]struct{})
	var names []string
	doc.Find(".docs-sheet-tab-caption").Each(func(_ int, sel *goquery.Selection) {
		name := sel.Text()
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	})
	return names, nil
}

// Rows fetches one tab as CSV rows via the gviz export endpoint. Row lengths
// vary; callers resolve columns by header text.
func (c *Client) Rows(ctx context.Context, sheetName string) ([][]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.rowsTimeout)
	defer cancel()

	u := fmt.Sprintf("%s?tqx=out:csv&sheet=%s", c.gvizURL, url.QueryEscape(sheetName))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sheet %q: %w", sheetName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sheet %q returned status %d", sheetName, resp.StatusCode)
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse sheet %q as CSV: %w", sheetName, err)
	}
	return rows, nil
}

// FeaturedSheets filters tab names down to the featured-team tabs for one
// regulation. If nothing matches, the conventional tab name is synthesized so
// the caller still has something to try.
func FeaturedSheets(allSheetNames []string, regulation string) []string {
	reg := strings.ToLower(strings.TrimSpace(regulation))
	var sheets []string
	for _, name := range allSheetNames {
		lname := strings.ToLower(name)
		if !strings.Contains(lname, "featured") {
			continue
		}
		if strings.Contains(lname, "presentable") {
			continue
		}
		if strings.Contains(lname, "reg "+reg) || strings.Contains(lname, "regulation "+reg) {
			sheets = append(sheets, name)
		}
	}
	if len(sheets) == 0 {
		sheets = []string{fmt.Sprintf("Reg %s Featured Teams", strings.ToUpper(regulation))}
	}
	return sheets
}
