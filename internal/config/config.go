package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	// DataDir holds the artifact database and exported tables.
	DataDir string `toml:"data_dir"`
	LogDir  string `toml:"log_dir"`
}

// Filter contains vocabulary filter configuration shared by both presets.
type Filter struct {
	ExtraStopwords []string `toml:"extra_stopwords"`
	MinLemmaLength int      `toml:"min_lemma_length"`
}

// Split contains train/test partition configuration.
type Split struct {
	TestFraction float64 `toml:"test_fraction"`
	Seed         uint64  `toml:"seed"`
}

// Sweep contains topic-count sweep configuration. KValues, when set, wins
// over the KMin/KMax range.
type Sweep struct {
	KValues           []int `toml:"k_values"`
	KMin              int   `toml:"k_min"`
	KMax              int   `toml:"k_max"`
	Workers           int   `toml:"workers"`
	FitTimeoutSeconds int   `toml:"fit_timeout_seconds"`
}

// LDA contains hyperparameters passed to the topic-model library.
// Alpha and Eta of zero let the library default to 1/k.
type LDA struct {
	Iterations int     `toml:"iterations"`
	Alpha      float64 `toml:"alpha"`
	Eta        float64 `toml:"eta"`
	BatchSize  int     `toml:"batch_size"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for themescope.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Filter  Filter  `toml:"filter"`
	Split   Split   `toml:"split"`
	Sweep   Sweep   `toml:"sweep"`
	LDA     LDA     `toml:"lda"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/themescope/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}

	for i, w := range c.Filter.ExtraStopwords {
		c.Filter.ExtraStopwords[i] = strings.TrimSpace(w)
	}
	return nil
}

// EnsureDirectories creates the data and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// CandidateKs resolves the sweep's candidate topic counts: the explicit
// k_values list when present, otherwise the inclusive [k_min, k_max] range.
func (c *Config) CandidateKs() []int {
	if len(c.Sweep.KValues) > 0 {
		ks := make([]int, len(c.Sweep.KValues))
		copy(ks, c.Sweep.KValues)
		return ks
	}
	ks := make([]int, 0, c.Sweep.KMax-c.Sweep.KMin+1)
	for k := c.Sweep.KMin; k <= c.Sweep.KMax; k++ {
		ks = append(ks, k)
	}
	return ks
}

// WriteSample writes the embedded sample configuration to path. Unless
// overwrite is set it refuses to replace an existing file.
func WriteSample(path string, overwrite bool) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(expanded); err == nil {
			return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", expanded)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat config: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(expanded, []byte(sampleConfig), 0o644)
}

// ExpandPath resolves tilde shortcuts and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if path == "~" {
			return home, nil
		}
		path = filepath.Join(home, path[2:])
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path %s: %w", path, err)
	}
	return abs, nil
}
