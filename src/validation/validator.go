// Package validation cross-checks extracted transactions against the
// integrity rules and partitions them into a clean set and an issues
// report. Validation never fails: every input row ends up either in the
// clean set (possibly flagged) or behind an issue.
package validation

import (
	"fmt"
	"strings"

	"github.com/username/folioparse/src/logger"
	"github.com/username/folioparse/src/models"
	"github.com/username/folioparse/src/processors"
	"github.com/username/folioparse/src/utils"
)

// Rule identifiers recorded on every issue.
const (
	RuleSignConvention  = "sign-convention"
	RuleISINPresence    = "isin-presence"
	RuleDividendPairing = "dividend-pairing"
	RuleCurrencySupport = "currency-support"
	RuleDuplicate       = "duplicate"
	RuleNoRate          = "no-rate"
)

type Validator struct {
	rates      *processors.RateTable
	exceptions *ExceptionTable
}

func NewValidator(rates *processors.RateTable, exceptions *ExceptionTable) *Validator {
	return &Validator{rates: rates, exceptions: exceptions}
}

// Validate applies the per-row rules and the cross-row dividend pairing
// rule, returning the clean set and the full issues report.
//
// Per rule, a violation either drops the record from the clean set
// (sign-convention, currency-support, duplicate) or flags it in place
// (isin-presence, dividend-pairing). Pairing also attaches the withheld
// amount from the matching tax row to its dividend.
func (v *Validator) Validate(txs []models.ClassifiedTransaction) ([]models.ClassifiedTransaction, []models.ValidationIssue) {
	var clean []models.ClassifiedTransaction
	var issues []models.ValidationIssue

	seen := make(map[string]bool)
	for _, tx := range txs {
		if seen[tx.HashID] {
			issues = append(issues, issue(RuleDuplicate, tx, "identical (date, description, amount, ISIN) row already seen"))
			continue
		}
		seen[tx.HashID] = true

		if !v.rates.Supports(tx.Currency) {
			issues = append(issues, issue(RuleCurrencySupport, tx,
				fmt.Sprintf("currency %s has no series in the rate table", tx.Currency)))
			continue
		}

		switch tx.Category {
		case models.CategoryBuy:
			if tx.Amount >= 0 {
				issues = append(issues, issue(RuleSignConvention, tx,
					fmt.Sprintf("buy amount %.2f is not negative", tx.Amount)))
				continue
			}
		case models.CategorySell:
			if tx.Amount <= 0 {
				issues = append(issues, issue(RuleSignConvention, tx,
					fmt.Sprintf("sell amount %.2f is not positive", tx.Amount)))
				continue
			}
		}

		if tx.ISIN != "" && !strings.Contains(tx.Description, tx.ISIN) {
			tx.ISINMismatch = true
			issues = append(issues, issue(RuleISINPresence, tx,
				fmt.Sprintf("ISIN %s does not appear in the description text", tx.ISIN)))
		}

		clean = append(clean, tx)
	}

	issues = append(issues, v.pairDividends(clean)...)

	logger.L.Info("Validation finished", "input", len(txs), "clean", len(clean), "issues", len(issues))
	return clean, issues
}

// pairDividends enforces the dividend/withholding pairing rule across the
// (date, ISIN) groups in the clean set, attaching the withheld amount to
// paired dividends and flagging unmatched rows on both sides. Flagged rows
// stay in the clean set.
func (v *Validator) pairDividends(clean []models.ClassifiedTransaction) []models.ValidationIssue {
	var issues []models.ValidationIssue

	dividends := make(map[string][]int)
	withholdings := make(map[string][]int)
	for i, tx := range clean {
		key := tx.Date.Format(utils.DefaultDateFormat) + "|" + tx.ISIN
		switch tx.Category {
		case models.CategoryDividend:
			dividends[key] = append(dividends[key], i)
		case models.CategoryWithholdingTax:
			withholdings[key] = append(withholdings[key], i)
		}
	}

	for key, divIdxs := range dividends {
		taxIdxs := withholdings[key]
		for _, di := range divIdxs {
			div := &clean[di]
			if len(divIdxs) == 1 && len(taxIdxs) == 1 {
				div.TaxAmount = utils.AbsFloat(clean[taxIdxs[0]].Amount)
				continue
			}
			if v.exceptions.Exempt(*div) {
				continue
			}
			div.Unpaired = true
			issues = append(issues, issue(RuleDividendPairing, *div,
				fmt.Sprintf("expected exactly one withholding-tax row for (date, ISIN), found %d", len(taxIdxs))))
		}
	}

	for key, taxIdxs := range withholdings {
		if len(dividends[key]) == 1 && len(taxIdxs) == 1 {
			continue
		}
		for _, ti := range taxIdxs {
			tax := &clean[ti]
			if v.exceptions.Exempt(*tax) {
				continue
			}
			tax.Unpaired = true
			issues = append(issues, issue(RuleDividendPairing, *tax,
				fmt.Sprintf("expected exactly one dividend row for (date, ISIN), found %d", len(dividends[key]))))
		}
	}

	return issues
}

func issue(rule string, tx models.ClassifiedTransaction, reason string) models.ValidationIssue {
	return models.ValidationIssue{
		Rule:        rule,
		Date:        tx.Date.Format(utils.DefaultDateFormat),
		ISIN:        tx.ISIN,
		Description: tx.Description,
		Reason:      reason,
	}
}
