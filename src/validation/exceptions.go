package validation

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/username/folioparse/src/logger"
	"github.com/username/folioparse/src/models"
)

// DividendException is one data-driven entry exempting instruments from
// the dividend/withholding pairing requirement. Match kinds:
//
//	country          - alpha-2 ISIN prefix, e.g. "LR"
//	isin             - exact ISIN
//	product_contains - case-insensitive substring of the product name
type DividendException struct {
	Match  string `json:"match"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

// ExceptionTable holds the pairing exemptions loaded from the data file.
// Extending it is a data change, not a code change.
type ExceptionTable struct {
	entries []DividendException
}

// LoadExceptionTable reads the exception entries from a JSON file.
func LoadExceptionTable(path string) (*ExceptionTable, error) {
	fileData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dividend exception file '%s': %w", path, err)
	}

	var entries []DividendException
	if err := json.Unmarshal(fileData, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dividend exceptions from '%s': %w", path, err)
	}

	for _, e := range entries {
		switch e.Match {
		case "country", "isin", "product_contains":
		default:
			return nil, fmt.Errorf("unknown dividend exception match kind '%s'", e.Match)
		}
	}

	logger.L.Info("Dividend exception table loaded", "path", path, "entryCount", len(entries))
	return &ExceptionTable{entries: entries}, nil
}

// NewExceptionTable builds a table directly from entries, used by tests.
func NewExceptionTable(entries []DividendException) *ExceptionTable {
	return &ExceptionTable{entries: entries}
}

// Exempt reports whether the transaction's instrument bypasses the
// dividend/withholding pairing requirement.
func (t *ExceptionTable) Exempt(tx models.ClassifiedTransaction) bool {
	product := strings.ToLower(tx.Product)
	for _, e := range t.entries {
		switch e.Match {
		case "country":
			if tx.CountryCode == strings.ToUpper(e.Value) {
				return true
			}
		case "isin":
			if tx.ISIN == e.Value {
				return true
			}
		case "product_contains":
			if strings.Contains(product, strings.ToLower(e.Value)) {
				return true
			}
		}
	}
	return false
}
