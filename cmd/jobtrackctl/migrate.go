package main

import (
	"fmt"

	"jobtrack/internal/app"
	"jobtrack/internal/logging"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := env()
			if err != nil {
				return err
			}
			defer func() { _ = logging.Sync(logger) }()

			cfg.Database.AutoMigrate = false
			cfg.Database.AutoSeed = false
			db, err := app.OpenDB(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			res, err := app.Migrate(cmd.Context(), db, logger)
			if err != nil {
				return err
			}
			for _, m := range res.Applied {
				fmt.Fprintf(cmd.OutOrStdout(), "applied V%d %s\n", m.Version, m.Name)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d applied, %d already up to date\n", len(res.Applied), res.Skipped)
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert default email templates and a starter resume into empty tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := env()
			if err != nil {
				return err
			}
			defer func() { _ = logging.Sync(logger) }()

			cfg.Database.AutoSeed = false
			db, err := app.OpenDB(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := app.Seed(cmd.Context(), db, logger); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "seed complete")
			return nil
		},
	}
}
