package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/akhilm/jobsift/internal/classify"
	"github.com/akhilm/jobsift/internal/config"
	"github.com/akhilm/jobsift/internal/eligibility"
	"github.com/akhilm/jobsift/internal/model"
	"github.com/akhilm/jobsift/internal/pipeline"
	"github.com/akhilm/jobsift/internal/ratelimit"
	"github.com/akhilm/jobsift/internal/retry"
	"github.com/akhilm/jobsift/internal/source"
	"github.com/akhilm/jobsift/internal/store"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobsift",
	Short: "Aggregate job postings from unreliable sources into one dataset",
	Long:  "jobsift normalizes, filters, classifies, and deduplicates job listings from multiple sources into a single persisted collection.",
	// Default to `run` so that `jobsift` with no args does one aggregation pass.
	RunE: runRun,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBSIFT_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > JOBSIFT_CONFIG env var > "./config.yaml"
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if env := os.Getenv("JOBSIFT_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      logLevel,
		TimeFormat: time.Kitchen,
	}))
}

// setupStore opens the configured persistence backend. The returned close
// function is a no-op for backends without a connection to release.
func setupStore(cfg *config.Config) (model.CollectionStore, func() error, error) {
	switch cfg.Store.Backend {
	case "sqlite":
		s, err := store.NewSQLiteStore(cfg.Store.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening store: %w", err)
		}
		return s, s.Close, nil
	default:
		return store.NewCSVStore(cfg.Store.Path), func() error { return nil }, nil
	}
}

func buildSources(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) []model.Source {
	limiter := ratelimit.NewSourceRateLimiter(cfg.Pacing.MinDelay)

	var sources []model.Source
	for _, sc := range cfg.EnabledSources() {
		var src model.Source
		switch sc.Type {
		case "board":
			src = source.NewBoardSource(sc.Name, sc.URL, httpClient)
			src = retry.NewRetrySource(src, cfg.Retry.MaxRetries, cfg.Retry.BaseDelay, logger)
		case "file":
			src = source.NewFileSource(sc.Name, sc.Path)
		default:
			logger.Warn("unsupported source type, skipping", "source", sc.Name, "type", sc.Type)
			continue
		}

		sources = append(sources, ratelimit.NewPacedSource(src, limiter))
		logger.Info("registered source", "name", sc.Name, "type", sc.Type)
	}
	return sources
}

func buildPipeline(cfg *config.Config, st model.CollectionStore, logger *slog.Logger) *pipeline.Pipeline {
	httpClient := &http.Client{Timeout: 30 * time.Second}
	sources := buildSources(cfg, httpClient, logger)

	filter := eligibility.New(cfg.Eligibility.Ruleset(), cfg.Eligibility.Policy())
	classifier := classify.NewDefault()

	return pipeline.New(sources, filter, classifier, st, logger)
}
