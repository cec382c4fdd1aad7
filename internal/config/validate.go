package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSplit(); err != nil {
		return err
	}
	if err := c.validateSweep(); err != nil {
		return err
	}
	if err := c.validateLDA(); err != nil {
		return err
	}
	if err := c.validateFilter(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateSplit() error {
	if c.Split.TestFraction <= 0 || c.Split.TestFraction >= 1 {
		return fmt.Errorf("split.test_fraction must be in (0, 1), got %g", c.Split.TestFraction)
	}
	return nil
}

func (c *Config) validateSweep() error {
	if len(c.Sweep.KValues) > 0 {
		prev := 0
		for _, k := range c.Sweep.KValues {
			if k < 1 {
				return fmt.Errorf("sweep.k_values entries must be >= 1, got %d", k)
			}
			if k <= prev {
				return errors.New("sweep.k_values must be strictly ascending with no duplicates")
			}
			prev = k
		}
	} else {
		if c.Sweep.KMin < 1 {
			return fmt.Errorf("sweep.k_min must be >= 1, got %d", c.Sweep.KMin)
		}
		if c.Sweep.KMax < c.Sweep.KMin {
			return fmt.Errorf("sweep.k_max (%d) must be >= sweep.k_min (%d)", c.Sweep.KMax, c.Sweep.KMin)
		}
	}
	if c.Sweep.Workers < 0 {
		return errors.New("sweep.workers must not be negative")
	}
	if c.Sweep.FitTimeoutSeconds < 0 {
		return errors.New("sweep.fit_timeout_seconds must not be negative")
	}
	return nil
}

func (c *Config) validateLDA() error {
	if c.LDA.Iterations < 1 {
		return fmt.Errorf("lda.iterations must be >= 1, got %d", c.LDA.Iterations)
	}
	if c.LDA.Alpha < 0 || c.LDA.Eta < 0 {
		return errors.New("lda.alpha and lda.eta must not be negative")
	}
	if c.LDA.BatchSize < 0 {
		return errors.New("lda.batch_size must not be negative")
	}
	return nil
}

func (c *Config) validateFilter() error {
	if c.Filter.MinLemmaLength < 1 {
		return fmt.Errorf("filter.min_lemma_length must be >= 1, got %d", c.Filter.MinLemmaLength)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
