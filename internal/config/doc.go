// Package config loads, normalizes, and validates themescope configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and centralizes every knob the CLI and
// pipeline need: vocabulary filter settings, the train/test split, the
// candidate topic-count sweep, and LDA hyperparameters.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
