// Package testsupport provides shared helpers for building test
// configurations and synthetic corpora.
package testsupport

import (
	"path/filepath"
	"testing"

	"themescope/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithKValues sets explicit sweep candidates on the test config.
func WithKValues(ks ...int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Sweep.KValues = ks
	}
}

// WithSplit overrides the test fraction and seed.
func WithSplit(fraction float64, seed uint64) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Split.TestFraction = fraction
		cfg.Split.Seed = seed
	}
}
