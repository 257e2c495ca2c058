package main

import (
	"encoding/json"
	"io"

	"jobtrack/internal/config"
	"jobtrack/internal/logging"
	"jobtrack/internal/metrics"
	"jobtrack/internal/scraper"
	"jobtrack/internal/usecase"

	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	var headless bool
	cmd := &cobra.Command{
		Use:   "import <url>...",
		Short: "Fetch job postings and print application drafts as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := env()
			if err != nil {
				return err
			}
			defer func() { _ = logging.Sync(logger) }()

			if cmd.Flags().Changed("headless") {
				cfg.Scraper.Headless = headless
			}
			uc := usecase.NewImportUsecase(
				scraper.NewImporter(cfg.Scraper, logger.Named("importer"), metrics.Default()),
				batchLimit(cfg, len(args)),
			)
			res, err := uc.ImportBatch(cmd.Context(), args)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().BoolVar(&headless, "headless", false, "retry with headless Chrome when the static fetch finds nothing")
	return cmd
}

// batchLimit lets the CLI exceed the server's batch cap; the operator chose the URLs.
func batchLimit(cfg config.Config, n int) int {
	if n > cfg.Scraper.MaxBatchLen {
		return n
	}
	return cfg.Scraper.MaxBatchLen
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
