// Package scraper drives the ingestion pipeline: sheet discovery, row
// extraction, paste resolution, content filtering, dedup, and file placement.
package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/schollz/progressbar/v3"

	"github.com/vgcbench/teamscrape/internal/common"
	"github.com/vgcbench/teamscrape/internal/dedup"
	"github.com/vgcbench/teamscrape/internal/filter"
	"github.com/vgcbench/teamscrape/internal/model"
	"github.com/vgcbench/teamscrape/internal/normalize"
	"github.com/vgcbench/teamscrape/internal/similarity"
	"github.com/vgcbench/teamscrape/internal/vgcpastes"
)

// allowedEventKeywords gates which tournament tiers are persisted.
var allowedEventKeywords = []string{"regional", "euic", "laic", "naic", "worlds"}

// Config holds the orchestrator's non-collaborator settings.
type Config struct {
	Logger       *slog.Logger
	DataDir      string
	ShowProgress bool
}

// Scraper runs the per-regulation ingestion pipeline. It is single-threaded
// and makes one HTTP round trip at a time; a transport failure anywhere
// aborts the run, and reruns rely on file existence checks to skip work.
type Scraper struct {
	sheets       SheetSource
	pastes       PasteSource
	validator    Validator
	scorer       similarity.Scorer
	logger       *slog.Logger
	dataDir      string
	showProgress bool
}

// New creates a Scraper, filling defaults for unset config fields.
func New(sheets SheetSource, pastes PasteSource, validator Validator, scorer similarity.Scorer, cfg Config) *Scraper {
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Scraper{
		sheets:       sheets,
		pastes:       pastes,
		validator:    validator,
		scorer:       scorer,
		logger:       cfg.Logger,
		dataDir:      cfg.DataDir,
		showProgress: cfg.ShowProgress,
	}
}

// ValidateRegulation checks a regulation code before any network activity.
func ValidateRegulation(regulation string) error {
	if len(regulation) != 1 || !unicode.IsLetter(rune(regulation[0])) || regulation[0] > unicode.MaxASCII {
		return fmt.Errorf("%w: %q", common.ErrInvalidRegulation, regulation)
	}
	return nil
}

// ScrapeRegulation ingests every featured-team sheet for one regulation and
// returns the run's counters. Recoverable rejections (banned mechanics,
// unparseable pastes, duplicates, out-of-policy events) are absorbed into the
// counters; transport errors propagate and abort the run.
func (s *Scraper) ScrapeRegulation(ctx context.Context, regulation string) (model.Stats, error) {
	var stats model.Stats
	if err := ValidateRegulation(regulation); err != nil {
		return stats, err
	}

	regDir := filepath.Join(s.dataDir, "teams", "reg"+strings.ToLower(regulation))
	if err := os.MkdirAll(regDir, 0o750); err != nil {
		return stats, fmt.Errorf("failed to create regulation directory: %w", err)
	}

	allNames, err := s.sheets.SheetNames(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to list sheets: %w", err)
	}
	sheetNames := vgcpastes.FeaturedSheets(allNames, regulation)
	s.logger.Info("discovered featured team sheets", "regulation", regulation, "sheets", sheetNames)

	ledger := dedup.NewLedger(s.scorer)
	eventDirs := make(map[string]string)

	for _, sheetName := range sheetNames {
		if err := s.scrapeSheet(ctx, sheetName, regDir, ledger, eventDirs, &stats); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

func (s *Scraper) scrapeSheet(ctx context.Context, sheetName, regDir string, ledger *dedup.Ledger, eventDirs map[string]string, stats *model.Stats) error {
	rows, err := s.sheets.Rows(ctx, sheetName)
	if err != nil {
		return fmt.Errorf("failed to fetch sheet %q: %w", sheetName, err)
	}

	headerIdx, err := findHeaderRow(rows)
	if err != nil {
		s.logger.Warn("skipping sheet without header row", "sheet", sheetName)
		return nil
	}
	cols, err := resolveColumns(rows[headerIdx])
	if err != nil {
		return fmt.Errorf("sheet %q: %w", sheetName, err)
	}

	dataRows := rows[headerIdx+1:]
	bar := s.newProgressBar(len(dataRows), sheetName)
	for _, row := range dataRows {
		if bar != nil {
			_ = bar.Add(1)
		}
		if len(row) <= cols.max {
			continue
		}
		candidate := model.CandidateRow{
			Category:    cell(row, cols.category),
			EVsProvided: cell(row, cols.evs),
			PasteURL:    cell(row, cols.pokepaste),
			EventName:   cell(row, cols.event),
			DateStr:     cell(row, cols.date),
			Placement:   cell(row, cols.rank),
		}
		if err := s.processRow(ctx, candidate, regDir, ledger, eventDirs, stats); err != nil {
			return err
		}
	}
	return nil
}

// processRow applies the admission rules to one candidate in their original
// order. Note that dedup runs before the event gating, so a team rejected for
// event reasons still occupies the ledger and shadows later copies of itself.
func (s *Scraper) processRow(ctx context.Context, row model.CandidateRow, regDir string, ledger *dedup.Ledger, eventDirs map[string]string, stats *model.Stats) error {
	if !strings.EqualFold(row.Category, "in person event") {
		return nil
	}
	if !strings.EqualFold(row.EVsProvided, "yes") {
		return nil
	}
	if !strings.HasPrefix(row.PasteURL, vgcpastes.PasteURLPrefix) {
		return nil
	}

	teamText, err := s.pastes.RawTeam(ctx, row.PasteURL)
	if err != nil {
		return fmt.Errorf("failed to resolve paste: %w", err)
	}

	if filter.HasBannedAbility(teamText) {
		stats.Banned++
		return nil
	}
	if err := s.validator.Validate(teamText); err != nil {
		s.logger.Debug("dropping unparseable team", "paste", row.PasteURL, "error", err)
		return nil
	}
	if ledger.IsDuplicate(teamText) {
		stats.Duplicates++
		return nil
	}
	ledger.Add(teamText)

	eventLower := strings.ToLower(row.EventName)
	if !containsAny(eventLower, allowedEventKeywords) {
		return nil
	}
	if strings.Contains(eventLower, "seniors") || strings.Contains(eventLower, "juniors") {
		return nil
	}
	if strings.Contains(row.EventName, "&") {
		return nil
	}
	if strings.Contains(row.Placement, "juniors") || strings.Contains(row.Placement, "seniors") {
		return nil
	}

	event := model.ResolveEvent(row.EventName, row.DateStr)
	eventDir, ok := eventDirs[event.Key]
	if !ok {
		eventDir = filepath.Join(regDir, event.DirName)
		if err := os.MkdirAll(eventDir, 0o750); err != nil {
			return fmt.Errorf("failed to create event directory: %w", err)
		}
		eventDirs[event.Key] = eventDir
	}

	baseFilename := normalize.PlacementFilename(row.Placement)
	if baseFilename[0] < '0' || baseFilename[0] > '9' {
		// Only numerically-ranked placements are persisted.
		return nil
	}

	outPath := filepath.Join(eventDir, baseFilename+".txt")
	if _, err := os.Stat(outPath); err == nil {
		stats.AlreadyExisting++
		return nil
	}
	if err := os.WriteFile(outPath, []byte(teamText), 0o644); err != nil {
		return fmt.Errorf("failed to write team file: %w", err)
	}
	stats.Saved++
	return nil
}

func (s *Scraper) newProgressBar(total int, sheetName string) *progressbar.ProgressBar {
	if !s.showProgress || total == 0 {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription(fmt.Sprintf("Scraping %s", sheetName)),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
