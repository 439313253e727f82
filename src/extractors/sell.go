package extractors

import (
	"fmt"

	"github.com/username/folioparse/src/models"
)

// SellExtractor mirrors BuyExtractor and additionally computes the gross
// proceeds (quantity * price) used by realized-gain aggregation. It also
// serves corporate-action rows carrying trade phrasing, which the pipeline
// keeps in a separate bucket from voluntary sells.
type SellExtractor struct{}

func NewSellExtractor() *SellExtractor { return &SellExtractor{} }

func (e *SellExtractor) Extract(row models.RawTransaction, category models.Category, ruleName string) (models.ClassifiedTransaction, error) {
	tx, err := baseTransaction(row, category, ruleName)
	if err != nil {
		return tx, err
	}

	tx.Quantity = sharesFromDescription(row.Description)
	tx.Price = priceFromDescription(row.Description)
	if tx.Quantity == 0 {
		return tx, fmt.Errorf("%w: no share count in description %q", ErrExtraction, row.Description)
	}
	if tx.Price == 0 {
		return tx, fmt.Errorf("%w: no price in description %q", ErrExtraction, row.Description)
	}

	if descISIN := isinFromDescription(row.Description); descISIN != "" && row.ISIN != "" && descISIN != row.ISIN {
		return tx, fmt.Errorf("%w: ISIN column %s conflicts with description ISIN %s", ErrExtraction, row.ISIN, descISIN)
	}

	tx.GrossAmount = float64(tx.Quantity) * tx.Price
	if tx.Amount == 0 {
		tx.Amount = tx.GrossAmount
	}
	return tx, nil
}
