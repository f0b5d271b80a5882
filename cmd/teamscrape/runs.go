package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vgcbench/teamscrape/internal/cli"
	"github.com/vgcbench/teamscrape/internal/storage"
)

func runsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List past scrape runs",
		RunE:  runRuns,
	}

	cmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to show")
	_ = viper.BindPFlag("runs.limit", cmd.Flags().Lookup("limit"))

	return cmd
}

func runRuns(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := storage.NewSQLiteStorage(historyDBPath())
	if err != nil {
		return fmt.Errorf("failed to open run history store: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate run history store: %w", err)
	}

	runs, err := store.ListRuns(ctx, viper.GetInt("runs.limit"))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		slog.Info(cli.FormatWarning("No scrape runs recorded yet"))
		return nil
	}

	var lines []string
	for _, run := range runs {
		lines = append(lines, fmt.Sprintf("%s  reg %s  saved %d  existing %d  banned %d  duplicate %d",
			cli.SubtleStyle.Render(run.CompletedAt.Local().Format("2006-01-02 15:04")),
			run.Regulation,
			run.Stats.Saved,
			run.Stats.AlreadyExisting,
			run.Stats.Banned,
			run.Stats.Duplicates))
	}
	slog.Info(cli.RenderBox("Scrape Runs", strings.Join(lines, "\n")))

	return nil
}
