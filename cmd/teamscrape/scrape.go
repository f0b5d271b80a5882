package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vgcbench/teamscrape/internal/cli"
	"github.com/vgcbench/teamscrape/internal/common"
	"github.com/vgcbench/teamscrape/internal/model"
	"github.com/vgcbench/teamscrape/internal/scraper"
	"github.com/vgcbench/teamscrape/internal/showdown"
	"github.com/vgcbench/teamscrape/internal/similarity"
	"github.com/vgcbench/teamscrape/internal/storage"
	"github.com/vgcbench/teamscrape/internal/vgcpastes"
)

func scrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape featured teams for a regulation",
		Long: `Scrape all featured teams for one VGC regulation.

Teams come from in-person tournament results, are filtered for banned
mechanics and parse validity, deduplicated within the run, and saved under
data/teams/reg<letter>/<event>/<placement>.txt. Files that already exist are
never overwritten, so reruns are cheap.`,
		RunE: runScrape,
	}

	cmd.Flags().StringP("reg", "r", "", "Regulation letter to scrape (e.g. G for Regulation G)")
	_ = cmd.MarkFlagRequired("reg")
	cmd.Flags().String("data-dir", "data", "Root directory for scraped output")
	cmd.Flags().Bool("progress", true, "Show per-sheet progress bars")

	_ = viper.BindPFlag("scrape.reg", cmd.Flags().Lookup("reg"))
	_ = viper.BindPFlag("scrape.data_dir", cmd.Flags().Lookup("data-dir"))
	_ = viper.BindPFlag("scrape.progress", cmd.Flags().Lookup("progress"))

	return cmd
}

func runScrape(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	regulation := strings.ToUpper(strings.TrimSpace(viper.GetString("scrape.reg")))
	if err := scraper.ValidateRegulation(regulation); err != nil {
		return common.NewUserError(fmt.Sprintf("invalid regulation %q, expected a single letter like G", regulation), err)
	}

	dataDir := viper.GetString("scrape.data_dir")

	sheetSource, err := newSheetSource(ctx)
	if err != nil {
		return err
	}
	pasteSource := vgcpastes.NewPasteClient(vgcpastes.PasteConfig{})

	s := scraper.New(sheetSource, pasteSource, showdown.Validator{}, similarity.ExactScorer{}, scraper.Config{
		DataDir:      dataDir,
		ShowProgress: viper.GetBool("scrape.progress"),
	})

	slog.Info(cli.FormatTitle(fmt.Sprintf("Scraping Regulation %s featured teams", regulation)))

	startedAt := time.Now()
	stats, err := s.ScrapeRegulation(ctx, regulation)
	if err != nil {
		return fmt.Errorf("scrape failed: %w", err)
	}
	completedAt := time.Now()

	content := fmt.Sprintf(`Saved:            %d
Already existing: %d
Banned mechanics: %d
Duplicates:       %d`,
		stats.Saved, stats.AlreadyExisting, stats.Banned, stats.Duplicates)
	slog.Info(cli.RenderBox(fmt.Sprintf("Regulation %s", regulation), content))

	recordRun(ctx, &model.ScrapeRun{
		Regulation:  regulation,
		Stats:       stats,
		StartedAt:   startedAt,
		CompletedAt: completedAt,
	})

	return nil
}

// newSheetSource picks the Sheets API when a key is configured and falls back
// to the public endpoints otherwise.
func newSheetSource(ctx context.Context) (scraper.SheetSource, error) {
	spreadsheetID := viper.GetString("sheets.spreadsheet_id")
	if apiKey := viper.GetString("sheets.api_key"); apiKey != "" {
		source, err := vgcpastes.NewAPISource(ctx, apiKey, spreadsheetID)
		if err != nil {
			return nil, fmt.Errorf("failed to create sheets API source: %w", err)
		}
		return source, nil
	}
	return vgcpastes.NewClient(vgcpastes.Config{SpreadsheetID: spreadsheetID}), nil
}

// recordRun appends the run to the history store. History is best-effort
// accounting; failures warn rather than fail the scrape.
func recordRun(ctx context.Context, run *model.ScrapeRun) {
	store, err := storage.NewSQLiteStorage(historyDBPath())
	if err != nil {
		slog.Warn("failed to open run history store", "error", err)
		return
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(ctx); err != nil {
		slog.Warn("failed to migrate run history store", "error", err)
		return
	}
	if err := store.RecordRun(ctx, run); err != nil {
		slog.Warn("failed to record run", "error", err)
	}
}

func historyDBPath() string {
	if path := viper.GetString("storage.path"); path != "" {
		return path
	}
	return "data/teamscrape.db"
}
