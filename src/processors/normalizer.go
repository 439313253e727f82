package processors

import (
	"errors"

	"github.com/username/folioparse/src/models"
	"github.com/username/folioparse/src/utils"
)

// Normalizer converts every monetary field of a transaction into the
// reporting currency via the rate table. It is pure: normalizing the same
// transaction twice against the same table yields the same result.
type Normalizer struct {
	rates *RateTable
}

func NewNormalizer(rates *RateTable) *Normalizer {
	return &Normalizer{rates: rates}
}

// Normalize returns a copy of tx with ExchangeRate, AmountEUR and
// TaxAmountEUR filled in. When no rate exists at or before the transaction
// date, the copy comes back with the NoRate flag set alongside
// ErrRateUnavailable; the caller keeps such rows in the audit trail but
// excludes them from totals.
func (n *Normalizer) Normalize(tx models.ClassifiedTransaction) (models.ClassifiedTransaction, error) {
	rate, err := n.rates.Rate(tx.Currency, tx.Date)
	if err != nil {
		if errors.Is(err, ErrRateUnavailable) {
			tx.NoRate = true
			tx.ExchangeRate = 0
			tx.AmountEUR = 0
			tx.TaxAmountEUR = 0
			return tx, err
		}
		return tx, err
	}

	tx.NoRate = false
	tx.ExchangeRate = rate
	tx.AmountEUR = utils.RoundFloat(tx.Amount*rate, 2)
	tx.TaxAmountEUR = utils.RoundFloat(tx.TaxAmount*rate, 2)
	return tx, nil
}
