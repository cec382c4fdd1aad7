package config_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"themescope/internal/config"
)

func TestLoadDefaultsWhenNoFileExists(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if cfg.Split.TestFraction != 0.2 {
		t.Fatalf("unexpected test fraction: %g", cfg.Split.TestFraction)
	}
	if cfg.Split.Seed != 42 {
		t.Fatalf("unexpected seed: %d", cfg.Split.Seed)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if want := []int{2, 3, 4, 5, 6, 7, 8, 9, 10}; !reflect.DeepEqual(cfg.CandidateKs(), want) {
		t.Fatalf("default candidates = %v, want %v", cfg.CandidateKs(), want)
	}
}

func TestLoadReadsTOMLAndExpandsPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[paths]
data_dir = "~/scope-data"

[split]
test_fraction = 0.3
seed = 7

[sweep]
k_values = [5, 10, 20]

[filter]
extra_stopwords = [" fishery "]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if want := filepath.Join(home, "scope-data"); cfg.Paths.DataDir != want {
		t.Fatalf("data dir = %q, want %q", cfg.Paths.DataDir, want)
	}
	if cfg.Split.TestFraction != 0.3 || cfg.Split.Seed != 7 {
		t.Fatalf("unexpected split config: %+v", cfg.Split)
	}
	if want := []int{5, 10, 20}; !reflect.DeepEqual(cfg.CandidateKs(), want) {
		t.Fatalf("candidates = %v, want %v", cfg.CandidateKs(), want)
	}
	if cfg.Filter.ExtraStopwords[0] != "fishery" {
		t.Fatalf("extra stopwords not trimmed: %q", cfg.Filter.ExtraStopwords[0])
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"fraction too low", func(c *config.Config) { c.Split.TestFraction = 0 }},
		{"fraction too high", func(c *config.Config) { c.Split.TestFraction = 1 }},
		{"k below one", func(c *config.Config) { c.Sweep.KValues = []int{0} }},
		{"duplicate k", func(c *config.Config) { c.Sweep.KValues = []int{3, 3} }},
		{"descending k", func(c *config.Config) { c.Sweep.KValues = []int{4, 2} }},
		{"k range inverted", func(c *config.Config) { c.Sweep.KMin = 8; c.Sweep.KMax = 2 }},
		{"negative workers", func(c *config.Config) { c.Sweep.Workers = -1 }},
		{"zero iterations", func(c *config.Config) { c.LDA.Iterations = 0 }},
		{"bad log format", func(c *config.Config) { c.Logging.Format = "xml" }},
		{"bad log level", func(c *config.Config) { c.Logging.Level = "loud" }},
		{"zero lemma length", func(c *config.Config) { c.Filter.MinLemmaLength = 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := config.WriteSample(path, false); err != nil {
		t.Fatalf("WriteSample returned error: %v", err)
	}
	if err := config.WriteSample(path, false); err == nil {
		t.Fatal("expected error when file exists")
	}
	if err := config.WriteSample(path, true); err != nil {
		t.Fatalf("WriteSample with overwrite returned error: %v", err)
	}

	// The sample must itself be a loadable configuration.
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
}
