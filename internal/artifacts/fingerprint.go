package artifacts

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"themescope/internal/config"
)

// DigestFile returns the hex SHA-256 of the file at path. Used to detect
// token-input changes between runs.
func DigestFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open for digest: %w", err)
	}
	defer file.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", fmt.Errorf("digest %s: %w", path, err)
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}

// analysisConfig is the subset of configuration that changes analysis
// results. Paths and logging are deliberately excluded.
type analysisConfig struct {
	Filter config.Filter `json:"filter"`
	Split  config.Split  `json:"split"`
	Sweep  config.Sweep  `json:"sweep"`
	LDA    config.LDA    `json:"lda"`
}

// ConfigJSON serializes the analysis-relevant configuration canonically.
func ConfigJSON(cfg *config.Config) (string, error) {
	raw, err := json.Marshal(analysisConfig{
		Filter: cfg.Filter,
		Split:  cfg.Split,
		Sweep:  cfg.Sweep,
		LDA:    cfg.LDA,
	})
	if err != nil {
		return "", fmt.Errorf("marshal analysis config: %w", err)
	}
	return string(raw), nil
}

// Fingerprint keys a run on its inputs and configuration: the same token
// digest and analysis config always map to the same fingerprint.
func Fingerprint(tokenDigest, configJSON string) string {
	hash := sha256.New()
	hash.Write([]byte(tokenDigest))
	hash.Write([]byte{0})
	hash.Write([]byte(configJSON))
	return hex.EncodeToString(hash.Sum(nil))
}
