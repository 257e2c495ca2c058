// Command jobtrackctl runs maintenance tasks against the jobtrack database
// and the posting importer without starting the HTTP server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"jobtrack/internal/config"
	"jobtrack/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "jobtrackctl",
		Short:        "Maintenance CLI for the jobtrack server",
		Version:      version,
		SilenceUsage: true,
	}
	root.AddCommand(
		newMigrateCmd(),
		newSeedCmd(),
		newImportCmd(),
		newRemindersCmd(),
		newHashPasswordCmd(),
	)
	return root
}

// env loads config and a logger for commands that need them.
func env() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("build logger: %w", err)
	}
	return cfg, logger, nil
}
