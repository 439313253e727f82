package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/username/folioparse/src/logger"
	"github.com/username/folioparse/src/models"
	"github.com/username/folioparse/src/processors"
)

func init() {
	logger.InitLogger("error")
}

func testValidator(t *testing.T) *Validator {
	t.Helper()
	table, err := processors.NewRateTable(strings.NewReader("Date,EUR_to_USD\n2023-01-02,1.10\n"))
	require.NoError(t, err)
	exceptions := NewExceptionTable([]DividendException{
		{Match: "country", Value: "LR", Reason: "no separate withholding row"},
		{Match: "product_contains", Value: "alibaba", Reason: "combined ADR row"},
	})
	return NewValidator(table, exceptions)
}

func tx(category models.Category, date, isin string, amount float64) models.ClassifiedTransaction {
	return models.ClassifiedTransaction{
		Date:        mustTime(date),
		Category:    category,
		ISIN:        isin,
		Description: "desc (" + isin + ")",
		Amount:      amount,
		Currency:    "USD",
		CountryCode: strings.ToUpper(isin[:2]),
		HashID:      date + "|" + string(category) + "|" + isin,
	}
}

func mustTime(s string) time.Time {
	d, _ := time.Parse("02-01-2006", s)
	return d
}

func TestSignRuleDropsPositiveBuys(t *testing.T) {
	v := testValidator(t)

	buy := tx(models.CategoryBuy, "01-03-2023", "US7427181091", 620.0) // wrong sign
	clean, issues := v.Validate([]models.ClassifiedTransaction{buy})

	require.Empty(t, clean)
	require.Len(t, issues, 1)
	require.Equal(t, RuleSignConvention, issues[0].Rule)
}

func TestSignRuleDropsNegativeSells(t *testing.T) {
	v := testValidator(t)

	sell := tx(models.CategorySell, "01-03-2023", "US7427181091", -61.82)
	clean, issues := v.Validate([]models.ClassifiedTransaction{sell})

	require.Empty(t, clean)
	require.Len(t, issues, 1)
	require.Equal(t, RuleSignConvention, issues[0].Rule)
}

func TestISINPresenceIsSoft(t *testing.T) {
	v := testValidator(t)

	buy := tx(models.CategoryBuy, "01-03-2023", "US7427181091", -620.0)
	buy.Description = "Compra 4 Procter & Gamble@155 USD" // ISIN not in text

	clean, issues := v.Validate([]models.ClassifiedTransaction{buy})

	// Flagged but still in the clean set.
	require.Len(t, clean, 1)
	require.True(t, clean[0].ISINMismatch)
	require.Len(t, issues, 1)
	require.Equal(t, RuleISINPresence, issues[0].Rule)
}

func TestDividendPairingAttachesTax(t *testing.T) {
	v := testValidator(t)

	div := tx(models.CategoryDividend, "01-05-2023", "US0378331005", 10.00)
	wht := tx(models.CategoryWithholdingTax, "01-05-2023", "US0378331005", -1.50)

	clean, issues := v.Validate([]models.ClassifiedTransaction{div, wht})

	require.Len(t, clean, 2)
	require.Empty(t, issues)
	require.Equal(t, 1.50, clean[0].TaxAmount)
	require.False(t, clean[0].Unpaired)
	require.False(t, clean[1].Unpaired)
}

func TestUnpairedDividendIsFlaggedNotDropped(t *testing.T) {
	v := testValidator(t)

	div := tx(models.CategoryDividend, "01-05-2023", "US0378331005", 10.00)

	clean, issues := v.Validate([]models.ClassifiedTransaction{div})

	require.Len(t, clean, 1)
	require.True(t, clean[0].Unpaired)
	require.Len(t, issues, 1)
	require.Equal(t, RuleDividendPairing, issues[0].Rule)
}

func TestUnmatchedWithholdingIsFlagged(t *testing.T) {
	v := testValidator(t)

	wht := tx(models.CategoryWithholdingTax, "01-05-2023", "US0378331005", -1.50)

	clean, issues := v.Validate([]models.ClassifiedTransaction{wht})

	require.Len(t, clean, 1)
	require.True(t, clean[0].Unpaired)
	require.Len(t, issues, 1)
	require.Equal(t, RuleDividendPairing, issues[0].Rule)
}

func TestExceptionTableBypassesPairing(t *testing.T) {
	v := testValidator(t)

	// Liberia-domiciled instrument, single dividend row, no withholding.
	div := tx(models.CategoryDividend, "01-05-2023", "LR0008862868", 25.00)

	clean, issues := v.Validate([]models.ClassifiedTransaction{div})

	require.Len(t, clean, 1)
	require.False(t, clean[0].Unpaired)
	require.Empty(t, issues)
}

func TestProductExceptionBypassesPairing(t *testing.T) {
	v := testValidator(t)

	div := tx(models.CategoryDividend, "01-05-2023", "US01609W1027", 5.00)
	div.Product = "ALIBABA GROUP HOLDING"

	clean, issues := v.Validate([]models.ClassifiedTransaction{div})

	require.Len(t, clean, 1)
	require.False(t, clean[0].Unpaired)
	require.Empty(t, issues)
}

func TestDuplicatesDroppedBeyondFirst(t *testing.T) {
	v := testValidator(t)

	sell := tx(models.CategorySell, "01-03-2023", "US8522341036", 61.82)
	clean, issues := v.Validate([]models.ClassifiedTransaction{sell, sell, sell})

	require.Len(t, clean, 1)
	require.Len(t, issues, 2)
	for _, issue := range issues {
		require.Equal(t, RuleDuplicate, issue.Rule)
	}
}

func TestUnsupportedCurrencyExcluded(t *testing.T) {
	v := testValidator(t)

	sell := tx(models.CategorySell, "01-03-2023", "GB0002634946", 100.0)
	sell.Currency = "JPY"

	clean, issues := v.Validate([]models.ClassifiedTransaction{sell})

	require.Empty(t, clean)
	require.Len(t, issues, 1)
	require.Equal(t, RuleCurrencySupport, issues[0].Rule)
}

func TestValidateNeverMutatesInput(t *testing.T) {
	v := testValidator(t)

	div := tx(models.CategoryDividend, "01-05-2023", "US0378331005", 10.00)
	input := []models.ClassifiedTransaction{div}

	_, _ = v.Validate(input)
	require.Zero(t, input[0].TaxAmount)
	require.False(t, input[0].Unpaired)
}

func TestEmptyExceptionTableExemptsNothing(t *testing.T) {
	table := NewExceptionTable(nil)
	require.False(t, table.Exempt(models.ClassifiedTransaction{CountryCode: "US"}))
}
