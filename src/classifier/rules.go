package classifier

import (
	"strings"

	"github.com/username/folioparse/src/models"
)

// Rule is one named classification pattern. Rules are evaluated in order;
// the first match wins, so corporate-action and transfer patterns sit
// above the plain buy/sell patterns they would otherwise shadow.
type Rule struct {
	Name     string
	Category models.Category
	Match    func(desc string) bool
}

func containsAny(desc string, tokens ...string) bool {
	for _, token := range tokens {
		if strings.Contains(desc, token) {
			return true
		}
	}
	return false
}

var corporateActionTokens = []string{
	"stock split",
	"fusión",
	"escisión",
	"cambio de isin",
	"cambio de producto",
	"spin-off",
}

// DefaultRules is the ordered rule set for the DEGIRO export phrasing
// (Spanish locale, with the English variants the exports mix in).
// Matching is against the lowercased, NBSP-normalized description.
var DefaultRules = []Rule{
	{
		Name:     "withholding-tax",
		Category: models.CategoryWithholdingTax,
		Match: func(d string) bool {
			return containsAny(d, "retención del dividendo", "retención dividendo", "imposto sobre dividendo", "dividend tax", "withholding")
		},
	},
	{
		Name:     "dividend",
		Category: models.CategoryDividend,
		Match: func(d string) bool {
			return containsAny(d, "dividendo", "dividend", "distribution")
		},
	},
	{
		Name:     "money-market-conversion",
		Category: models.CategoryInternalTransfer,
		Match: func(d string) bool {
			return containsAny(d, "conversión fondos del mercado monetario", "fondos del mercado monetario cambio de precio")
		},
	},
	{
		Name:     "corporate-action",
		Category: models.CategoryCorporateAction,
		Match: func(d string) bool {
			return containsAny(d, corporateActionTokens...)
		},
	},
	{
		Name:     "fx-conversion",
		Category: models.CategoryInternalTransfer,
		Match: func(d string) bool {
			return containsAny(d, "cambio de divisa", "crédito de divisa", "levantamento de divisa")
		},
	},
	{
		Name:     "cash-sweep",
		Category: models.CategoryInternalTransfer,
		Match: func(d string) bool {
			return strings.Contains(d, "cash sweep transfer")
		},
	},
	{
		Name:     "cash-account-transfer",
		Category: models.CategoryInternalTransfer,
		Match: func(d string) bool {
			return containsAny(d, "transferir a su cuenta de efectivo", "transferir desde su cuenta de efectivo")
		},
	},
	{
		Name:     "buy",
		Category: models.CategoryBuy,
		Match: func(d string) bool {
			return containsAny(d, "compra ", "buy ")
		},
	},
	{
		Name:     "sell",
		Category: models.CategorySell,
		Match: func(d string) bool {
			return containsAny(d, "venta ", "venda ", "sell ")
		},
	},
	{
		Name:     "deposit",
		Category: models.CategoryDeposit,
		Match: func(d string) bool {
			return containsAny(d, "ingreso", "depósito", "flatex deposit", "deposit")
		},
	},
	{
		Name:     "withdrawal",
		Category: models.CategoryWithdrawal,
		Match: func(d string) bool {
			return containsAny(d, "withdrawal", "retiro", "retirada")
		},
	},
	{
		Name:     "stamp-duty",
		Category: models.CategoryFee,
		Match: func(d string) bool {
			return strings.Contains(d, "stamp duty")
		},
	},
	{
		Name:     "fee",
		Category: models.CategoryFee,
		Match: func(d string) bool {
			return containsAny(d, "comisión", "comissões", "costes", "coste de la acción", "commission", "fee", "cargo")
		},
	},
}
