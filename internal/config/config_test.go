package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
interval: 30m
store:
  backend: sqlite
  path: data/jobs.db
sources:
  - name: acme-board
    type: board
    url: https://boards.example/acme/jobs.json
    enabled: true
  - name: indeed-dump
    type: file
    path: dumps/indeed.ndjson
    enabled: true
pacing:
  min_delay: 2s
retry:
  max_retries: 3
  base_delay: 1s
filters:
  visa_fallback_accept: false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Interval != 30*time.Minute {
		t.Errorf("Interval = %v, want 30m", cfg.Interval)
	}
	if cfg.Store.Backend != "sqlite" || cfg.Store.Path != "data/jobs.db" {
		t.Errorf("Store = %+v", cfg.Store)
	}
	if len(cfg.Sources) != 2 || cfg.Sources[0].Name != "acme-board" || cfg.Sources[1].Type != "file" {
		t.Errorf("Sources = %+v", cfg.Sources)
	}
	if cfg.Pacing.MinDelay != 2*time.Second {
		t.Errorf("MinDelay = %v", cfg.Pacing.MinDelay)
	}
	if cfg.Retry.MaxRetries != 3 || cfg.Retry.BaseDelay != time.Second {
		t.Errorf("Retry = %+v", cfg.Retry)
	}
	if !cfg.Eligibility.ExperienceFallbackAccept {
		t.Error("experience fallback should default to accept")
	}
	if cfg.Eligibility.VisaFallbackAccept {
		t.Error("visa fallback explicitly disabled, got accept")
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
sources:
  - name: dump
    type: file
    path: dumps/a.ndjson
    enabled: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Interval != 2*time.Hour {
		t.Errorf("Interval = %v, want 2h default", cfg.Interval)
	}
	if cfg.Store.Backend != "csv" || cfg.Store.Path != "data/jobs.csv" {
		t.Errorf("Store = %+v", cfg.Store)
	}
	if cfg.Pacing.MinDelay != 5*time.Second {
		t.Errorf("MinDelay = %v, want 5s default", cfg.Pacing.MinDelay)
	}
	if cfg.Retry.MaxRetries != 2 || cfg.Retry.BaseDelay != 5*time.Second {
		t.Errorf("Retry = %+v", cfg.Retry)
	}
	if !cfg.Eligibility.ExperienceFallbackAccept || !cfg.Eligibility.VisaFallbackAccept {
		t.Error("fallback policies should default to accept")
	}
}

func TestLoad_RulesetOverrides(t *testing.T) {
	path := writeConfig(t, `
sources:
  - name: dump
    type: file
    path: dumps/a.ndjson
    enabled: true
filters:
  ruleset_version: strict-2026
  senior_markers: [wizard]
  visa_negative: [locals only]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	rules := cfg.Eligibility.Ruleset()
	if rules.Version != "strict-2026" {
		t.Errorf("Version = %q", rules.Version)
	}
	if len(rules.SeniorMarkers) != 1 || rules.SeniorMarkers[0] != "wizard" {
		t.Errorf("SeniorMarkers = %v", rules.SeniorMarkers)
	}
	if len(rules.VisaNegative) != 1 || rules.VisaNegative[0] != "locals only" {
		t.Errorf("VisaNegative = %v", rules.VisaNegative)
	}
	// Lists without overrides keep the built-in defaults.
	if len(rules.EntryMarkers) == 0 || len(rules.VisaPositive) == 0 {
		t.Error("default marker lists were dropped")
	}
}

func TestLoad_NoEnabledSourcesIsValid(t *testing.T) {
	// A browse-only config: the saved collection can be read without any
	// source to aggregate from.
	path := writeConfig(t, `
store:
  backend: csv
  path: data/jobs.csv
sources:
  - name: dump
    type: file
    path: dumps/a.ndjson
    enabled: false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.EnabledSources(); len(got) != 0 {
		t.Errorf("EnabledSources = %v, want none", got)
	}
}

func TestEnabledSources_FiltersAndKeepsOrder(t *testing.T) {
	cfg := &Config{Sources: []SourceConfig{
		{Name: "a", Enabled: true},
		{Name: "b", Enabled: false},
		{Name: "c", Enabled: true},
	}}

	got := cfg.EnabledSources()
	if len(got) != 2 || got[0].Name != "a" || got[1].Name != "c" {
		t.Errorf("EnabledSources = %v, want [a c]", got)
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("DUMP_PATH", "/var/dumps/indeed.ndjson")
	path := writeConfig(t, `
sources:
  - name: dump
    type: file
    path: ${DUMP_PATH}
    enabled: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Sources[0].Path != "/var/dumps/indeed.ndjson" {
		t.Errorf("Path = %q", cfg.Sources[0].Path)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "board without url",
			content: "sources:\n  - name: b\n    type: board\n    enabled: true\n",
		},
		{
			name:    "file without path",
			content: "sources:\n  - name: f\n    type: file\n    enabled: true\n",
		},
		{
			name:    "unknown source type",
			content: "sources:\n  - name: x\n    type: carrier-pigeon\n    enabled: true\n",
		},
		{
			name:    "bad backend",
			content: "store:\n  backend: parquet\nsources:\n  - name: f\n    type: file\n    path: a\n    enabled: true\n",
		},
		{
			name:    "bad interval",
			content: "interval: soon\nsources:\n  - name: f\n    type: file\n    path: a\n    enabled: true\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
