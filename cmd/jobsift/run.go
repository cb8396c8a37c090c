package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/akhilm/jobsift/internal/store"
)

var dryRun bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one aggregation pass and exit",
	Long:  "Polls every enabled source once, merges accepted postings into the collection, and prints the run summary.",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "aggregate and report, but do not persist")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if len(cfg.EnabledSources()) == 0 {
		logger.Error("no enabled sources in config, nothing to aggregate")
		os.Exit(1)
	}

	st, closeStore, err := setupStore(cfg)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	if dryRun {
		logger.Info("dry-run mode enabled, nothing will be persisted")
		st = store.NewReadOnly(st)
	}

	pipe := buildPipeline(cfg, st, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := pipe.Run(ctx); err != nil {
		logger.Error("aggregation run failed", "error", err)
		os.Exit(1)
	}

	return nil
}
