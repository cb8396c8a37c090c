package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/akhilm/jobsift/internal/eligibility"
)

// Config is the root configuration for the jobsift aggregator.
type Config struct {
	Interval    time.Duration // daemon mode: time between aggregation runs
	Store       StoreConfig
	Sources     []SourceConfig
	Pacing      PacingConfig
	Retry       RetryConfig
	Eligibility EligibilityConfig
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	Backend string `yaml:"backend"` // "csv" or "sqlite"
	Path    string `yaml:"path"`
}

// SourceConfig describes one raw-listing source.
type SourceConfig struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"` // "board" (HTTP JSON feed) or "file" (NDJSON dump)
	URL     string `yaml:"url"`  // required for board sources
	Path    string `yaml:"path"` // required for file sources
	Enabled bool   `yaml:"enabled"`
}

// PacingConfig controls the delay between consecutive polls of a source.
type PacingConfig struct {
	MinDelay time.Duration
}

// RetryConfig controls transient-failure retries on board sources.
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
}

// EligibilityConfig carries the fallback policy and optional marker list
// overrides. Each fallback is independently tunable; both default to
// accept, which favors recall over precision on unmarked postings.
type EligibilityConfig struct {
	ExperienceFallbackAccept bool
	VisaFallbackAccept       bool

	RulesetVersion string
	SeniorMarkers  []string
	EntryMarkers   []string
	VisaNegative   []string
	VisaPositive   []string
}

// EnabledSources returns the sources marked enabled, in config order.
func (c *Config) EnabledSources() []SourceConfig {
	var enabled []SourceConfig
	for _, s := range c.Sources {
		if s.Enabled {
			enabled = append(enabled, s)
		}
	}
	return enabled
}

// Policy returns the eligibility fallback policy.
func (e EligibilityConfig) Policy() eligibility.Policy {
	return eligibility.Policy{
		ExperienceFallbackAccept: e.ExperienceFallbackAccept,
		VisaFallbackAccept:       e.VisaFallbackAccept,
	}
}

// Ruleset returns the configured marker lists, falling back to the
// built-in ruleset per list when no override is given.
func (e EligibilityConfig) Ruleset() eligibility.Ruleset {
	rules := eligibility.DefaultRuleset()
	if e.RulesetVersion != "" {
		rules.Version = e.RulesetVersion
	}
	if len(e.SeniorMarkers) > 0 {
		rules.SeniorMarkers = e.SeniorMarkers
	}
	if len(e.EntryMarkers) > 0 {
		rules.EntryMarkers = e.EntryMarkers
	}
	if len(e.VisaNegative) > 0 {
		rules.VisaNegative = e.VisaNegative
	}
	if len(e.VisaPositive) > 0 {
		rules.VisaPositive = e.VisaPositive
	}
	return rules
}

// rawConfig is used for YAML unmarshaling (snake_case fields and duration as string).
type rawConfig struct {
	Interval string           `yaml:"interval"`
	Store    StoreConfig      `yaml:"store"`
	Sources  []SourceConfig   `yaml:"sources"`
	Pacing   rawPacingConfig  `yaml:"pacing"`
	Retry    rawRetryConfig   `yaml:"retry"`
	Filters  rawFiltersConfig `yaml:"filters"`
}

type rawPacingConfig struct {
	MinDelay string `yaml:"min_delay"`
}

type rawRetryConfig struct {
	MaxRetries *int   `yaml:"max_retries"`
	BaseDelay  string `yaml:"base_delay"`
}

type rawFiltersConfig struct {
	ExperienceFallbackAccept *bool    `yaml:"experience_fallback_accept"`
	VisaFallbackAccept       *bool    `yaml:"visa_fallback_accept"`
	RulesetVersion           string   `yaml:"ruleset_version"`
	SeniorMarkers            []string `yaml:"senior_markers"`
	EntryMarkers             []string `yaml:"entry_markers"`
	VisaNegative             []string `yaml:"visa_negative"`
	VisaPositive             []string `yaml:"visa_positive"`
}

// Load reads and parses the YAML config file at path, validates it, and returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	interval := 2 * time.Hour // default
	if raw.Interval != "" {
		interval, err = time.ParseDuration(raw.Interval)
		if err != nil {
			return nil, fmt.Errorf("parse interval %q: %w", raw.Interval, err)
		}
	}

	minDelay := 5 * time.Second // default
	if raw.Pacing.MinDelay != "" {
		minDelay, err = time.ParseDuration(raw.Pacing.MinDelay)
		if err != nil {
			return nil, fmt.Errorf("parse pacing.min_delay %q: %w", raw.Pacing.MinDelay, err)
		}
	}

	maxRetries := 2 // default
	if raw.Retry.MaxRetries != nil {
		maxRetries = *raw.Retry.MaxRetries
	}

	baseDelay := 5 * time.Second // default
	if raw.Retry.BaseDelay != "" {
		baseDelay, err = time.ParseDuration(raw.Retry.BaseDelay)
		if err != nil {
			return nil, fmt.Errorf("parse retry.base_delay %q: %w", raw.Retry.BaseDelay, err)
		}
	}

	st := raw.Store
	if st.Backend == "" {
		st.Backend = "csv"
	}
	if st.Path == "" {
		st.Path = "data/jobs.csv"
	}

	cfg := &Config{
		Interval: interval,
		Store:    st,
		Sources:  raw.Sources,
		Pacing:   PacingConfig{MinDelay: minDelay},
		Retry:    RetryConfig{MaxRetries: maxRetries, BaseDelay: baseDelay},
		Eligibility: EligibilityConfig{
			// Absent flags default to accept.
			ExperienceFallbackAccept: raw.Filters.ExperienceFallbackAccept == nil || *raw.Filters.ExperienceFallbackAccept,
			VisaFallbackAccept:       raw.Filters.VisaFallbackAccept == nil || *raw.Filters.VisaFallbackAccept,
			RulesetVersion:           raw.Filters.RulesetVersion,
			SeniorMarkers:            raw.Filters.SeniorMarkers,
			EntryMarkers:             raw.Filters.EntryMarkers,
			VisaNegative:             raw.Filters.VisaNegative,
			VisaPositive:             raw.Filters.VisaPositive,
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %v", cfg.Interval)
	}
	if cfg.Retry.MaxRetries < 0 {
		return fmt.Errorf("retry.max_retries must not be negative, got %d", cfg.Retry.MaxRetries)
	}
	if cfg.Store.Backend != "csv" && cfg.Store.Backend != "sqlite" {
		return fmt.Errorf("store.backend must be \"csv\" or \"sqlite\", got %q", cfg.Store.Backend)
	}

	// A config with zero enabled sources is valid: browsing the saved
	// collection needs none. Commands that aggregate enforce their own
	// source requirement.
	for _, s := range cfg.Sources {
		if !s.Enabled {
			continue
		}
		switch s.Type {
		case "board":
			if s.URL == "" {
				return fmt.Errorf("source %q: url is required for board sources", s.Name)
			}
		case "file":
			if s.Path == "" {
				return fmt.Errorf("source %q: path is required for file sources", s.Name)
			}
		default:
			return fmt.Errorf("source %q: unknown type %q", s.Name, s.Type)
		}
	}

	return nil
}
