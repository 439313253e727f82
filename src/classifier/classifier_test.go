package classifier

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/username/folioparse/src/models"
)

func TestClassifyAssignsCategories(t *testing.T) {
	c := New()

	tests := []struct {
		name         string
		description  string
		wantCategory models.Category
		wantRule     string
	}{
		{
			name:         "dividend",
			description:  "Dividendo",
			wantCategory: models.CategoryDividend,
			wantRule:     "dividend",
		},
		{
			name:         "withholding tax wins over dividend",
			description:  "Retención del dividendo",
			wantCategory: models.CategoryWithholdingTax,
			wantRule:     "withholding-tax",
		},
		{
			name:         "withholding tax without article",
			description:  "Retención dividendo AAPL",
			wantCategory: models.CategoryWithholdingTax,
			wantRule:     "withholding-tax",
		},
		{
			name:         "plain buy",
			description:  "Compra 4 Procter & Gamble@155 USD (US7427181091)",
			wantCategory: models.CategoryBuy,
			wantRule:     "buy",
		},
		{
			name:         "plain sell",
			description:  "Venta 1 Block Inc.@61,82 USD (US8522341036)",
			wantCategory: models.CategorySell,
			wantRule:     "sell",
		},
		{
			name:         "stock split sell is a corporate action, not a sell",
			description:  "Venta 10 Apple Inc.@120 USD (US0378331005) STOCK SPLIT",
			wantCategory: models.CategoryCorporateAction,
			wantRule:     "corporate-action",
		},
		{
			name:         "spin-off buy is a corporate action, not a buy",
			description:  "Compra 3 Solutions Inc.@55 USD (US46982L1089) Escisión",
			wantCategory: models.CategoryCorporateAction,
			wantRule:     "corporate-action",
		},
		{
			name:         "ISIN change is a corporate action",
			description:  "Venta 5 Block Inc.@60 USD (US8522341036) Cambio de ISIN",
			wantCategory: models.CategoryCorporateAction,
			wantRule:     "corporate-action",
		},
		{
			name:         "money market conversion is an internal transfer, not a buy",
			description:  "Compra 1,2 Morgan Stanley EUR Liquidity Fund Conversión Fondos del Mercado Monetario",
			wantCategory: models.CategoryInternalTransfer,
			wantRule:     "money-market-conversion",
		},
		{
			name:         "cash sweep",
			description:  "Degiro Cash Sweep Transfer",
			wantCategory: models.CategoryInternalTransfer,
			wantRule:     "cash-sweep",
		},
		{
			name:         "fx conversion",
			description:  "Cambio de Divisa - Ingreso",
			wantCategory: models.CategoryInternalTransfer,
			wantRule:     "fx-conversion",
		},
		{
			name:         "cash account transfer",
			description:  "Transferir a su Cuenta de Efectivo en Flatex Bank",
			wantCategory: models.CategoryInternalTransfer,
			wantRule:     "cash-account-transfer",
		},
		{
			name:         "deposit",
			description:  "Ingreso",
			wantCategory: models.CategoryDeposit,
			wantRule:     "deposit",
		},
		{
			name:         "flatex deposit",
			description:  "flatex Deposit",
			wantCategory: models.CategoryDeposit,
			wantRule:     "deposit",
		},
		{
			name:         "withdrawal",
			description:  "Processed Flatex Withdrawal",
			wantCategory: models.CategoryWithdrawal,
			wantRule:     "withdrawal",
		},
		{
			name:         "stamp duty is a fee",
			description:  "Stamp Duty Londres",
			wantCategory: models.CategoryFee,
			wantRule:     "stamp-duty",
		},
		{
			name:         "transaction costs",
			description:  "Costes de transacción DEGIRO",
			wantCategory: models.CategoryFee,
			wantRule:     "fee",
		},
		{
			name:         "unsupported",
			description:  "Vencimiento de contrato de futuros",
			wantCategory: models.CategoryUnsupported,
			wantRule:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, rule := c.Classify(models.RawTransaction{Description: tt.description})
			require.Equal(t, tt.wantCategory, category)
			require.Equal(t, tt.wantRule, rule)
		})
	}
}

func TestClassifyIsPure(t *testing.T) {
	c := New()
	row := models.RawTransaction{Description: "Dividendo"}

	cat1, rule1 := c.Classify(row)
	cat2, rule2 := c.Classify(row)
	require.Equal(t, cat1, cat2)
	require.Equal(t, rule1, rule2)
	require.Equal(t, "Dividendo", row.Description)
}

func TestNormalizeDescriptionHandlesNonBreakingSpace(t *testing.T) {
	require.Equal(t, "compra 4 apple", NormalizeDescription("Compra\u00A04\u00A0Apple "))
}
