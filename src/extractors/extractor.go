// Package extractors turns classified raw rows into structured
// transactions, one extractor per category family.
package extractors

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/username/folioparse/src/models"
	"github.com/username/folioparse/src/utils"
)

// ErrExtraction is the sentinel wrapped by every per-row extraction
// failure: malformed description, missing numeric fields, conflicting ISIN.
var ErrExtraction = errors.New("extraction failed")

// Extractor converts one raw row of its assigned category into a
// ClassifiedTransaction.
type Extractor interface {
	Extract(row models.RawTransaction, category models.Category, ruleName string) (models.ClassifiedTransaction, error)
}

// baseTransaction fills the fields every category shares: parsed date,
// signed native amount, resolved ISIN, country code and the row hash used
// for duplicate detection.
func baseTransaction(row models.RawTransaction, category models.Category, ruleName string) (models.ClassifiedTransaction, error) {
	date, err := time.Parse(utils.DefaultDateFormat, row.Date)
	if err != nil {
		return models.ClassifiedTransaction{}, fmt.Errorf("%w: invalid date '%s'", ErrExtraction, row.Date)
	}

	amount, err := parseDecimal(row.Amount)
	if err != nil {
		return models.ClassifiedTransaction{}, fmt.Errorf("%w: invalid amount '%s': %v", ErrExtraction, row.Amount, err)
	}

	isin := row.ISIN
	if isin == "" {
		isin = isinFromDescription(row.Description)
	}

	tx := models.ClassifiedTransaction{
		Date:        date,
		Category:    category,
		RuleName:    ruleName,
		Product:     row.Product,
		ISIN:        isin,
		Description: row.Description,
		Amount:      amount,
		Currency:    row.Currency,
	}
	if utils.IsValidISIN(isin) {
		tx.CountryCode = utils.CountryCodeFromISIN(isin)
	}
	tx.HashID = rowHash(row)
	return tx, nil
}

// rowHash identifies a row by the fields the duplicate rule compares:
// date, description, amount and ISIN. Time of day is deliberately left
// out, matching how repeated export lines differ only by the hour.
func rowHash(row models.RawTransaction) string {
	input := fmt.Sprintf("%s|%s|%s|%s", row.Date, row.Description, row.Amount, row.ISIN)
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])
}

// CashExtractor handles the categories that need no description parsing
// beyond the signed amount: deposits, withdrawals, fees, internal
// transfers and corporate actions without trade phrasing.
type CashExtractor struct{}

func NewCashExtractor() *CashExtractor { return &CashExtractor{} }

func (e *CashExtractor) Extract(row models.RawTransaction, category models.Category, ruleName string) (models.ClassifiedTransaction, error) {
	return baseTransaction(row, category, ruleName)
}
