package services

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/username/folioparse/src/logger"
)

// LoadProductRenames reads the historically-renamed-instrument mapping
// (old product name -> current product name) from a JSON object file.
func LoadProductRenames(path string) (map[string]string, error) {
	fileData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read product renames file '%s': %w", path, err)
	}
	renames := make(map[string]string)
	if err := json.Unmarshal(fileData, &renames); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product renames from '%s': %w", path, err)
	}
	logger.L.Info("Product renames loaded", "path", path, "entryCount", len(renames))
	return renames, nil
}

// LoadNoisePatterns reads the list of description substrings whose rows
// are excluded up front (zero or negligible-amount bookkeeping lines).
func LoadNoisePatterns(path string) ([]string, error) {
	fileData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read noise patterns file '%s': %w", path, err)
	}
	var patterns []string
	if err := json.Unmarshal(fileData, &patterns); err != nil {
		return nil, fmt.Errorf("failed to unmarshal noise patterns from '%s': %w", path, err)
	}
	logger.L.Info("Noise patterns loaded", "path", path, "entryCount", len(patterns))
	return patterns, nil
}
