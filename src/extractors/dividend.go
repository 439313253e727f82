package extractors

import (
	"fmt"
	"strconv"

	"github.com/username/folioparse/src/models"
)

// DividendExtractor handles dividend and withholding-tax rows. Share count
// and per-share amount are parsed when the phrasing carries them; most
// export lines only carry the paid amount. The withholding amount itself
// is attached later, during pairing, from the matching tax row.
type DividendExtractor struct{}

func NewDividendExtractor() *DividendExtractor { return &DividendExtractor{} }

func (e *DividendExtractor) Extract(row models.RawTransaction, category models.Category, ruleName string) (models.ClassifiedTransaction, error) {
	tx, err := baseTransaction(row, category, ruleName)
	if err != nil {
		return tx, err
	}
	if tx.Amount == 0 {
		return tx, fmt.Errorf("%w: dividend row with zero amount: %q", ErrExtraction, row.Description)
	}

	if matches := dividendSharesRe.FindStringSubmatch(row.Description); matches != nil {
		if shares, err := strconv.Atoi(matches[1]); err == nil {
			tx.Quantity = shares
		}
	}
	if tx.Quantity > 0 {
		if matches := perShareRe.FindStringSubmatch(row.Description); matches != nil {
			if perShare, err := parseDecimal(matches[1]); err == nil {
				tx.Price = perShare
			}
		}
	}
	return tx, nil
}
