package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vgcbench/teamscrape/internal/cli"
	"github.com/vgcbench/teamscrape/internal/common"
	"github.com/vgcbench/teamscrape/internal/dex"
)

// Extra entries folded into each data file before encoding, so downstream
// consumers have vectors for empty/unknown slots too.
var dexExtras = map[string]map[string]string{
	"abilities.js": {
		"null": "null",
		"":     "empty",
	},
	"items.js": {
		"null":         "null",
		"":             "empty",
		"unknown_item": "unknown item",
	},
	"moves.js": {
		"no move": "no move",
	},
}

func dexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dex",
		Short: "Export description embeddings for abilities, items, and moves",
		Long: `Download the ability, item, and move data files from Pokemon Showdown,
extract their short descriptions, encode them through the configured
embeddings endpoint, and save the name-to-vector mappings under data/.`,
		RunE: runDex,
	}

	cmd.Flags().String("encoder-url", "", "Embeddings endpoint URL")
	cmd.Flags().String("out-dir", "data", "Output directory for embedding files")

	_ = viper.BindPFlag("dex.encoder_url", cmd.Flags().Lookup("encoder-url"))
	_ = viper.BindPFlag("dex.out_dir", cmd.Flags().Lookup("out-dir"))

	return cmd
}

func runDex(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	encoderURL := viper.GetString("dex.encoder_url")
	if encoderURL == "" {
		return common.NewUserError("an embeddings endpoint is required, set dex.encoder_url", common.ErrMissingConfig)
	}

	exporter, err := dex.NewExporter(dex.ExporterConfig{
		Encoder: dex.NewHTTPEncoder(encoderURL, nil),
		DataURL: viper.GetString("dex.data_url"),
		OutDir:  viper.GetString("dex.out_dir"),
	})
	if err != nil {
		return fmt.Errorf("failed to create exporter: %w", err)
	}

	for _, file := range []string{"abilities.js", "items.js", "moves.js"} {
		slog.Info("exporting description embeddings", "file", file)
		if err := exporter.Export(ctx, file, dexExtras[file]); err != nil {
			return fmt.Errorf("failed to export %s: %w", file, err)
		}
	}

	slog.Info(cli.FormatSuccess("Description embeddings exported"))
	return nil
}
