package extractors

import "strings"

// HasTradePhrasing reports whether a description carries the
// "<verb> <n> <product>@<price>" trade shape, which decides whether a
// corporate-action row goes through the trade extractors or the cash one.
func HasTradePhrasing(description string) bool {
	description = cleanDescription(description)
	lower := strings.ToLower(description)
	if !strings.Contains(lower, "compra ") && !strings.Contains(lower, "venta ") &&
		!strings.Contains(lower, "buy ") && !strings.Contains(lower, "sell ") {
		return false
	}
	return tradePriceRe.MatchString(description)
}

// IsDisposal reports whether a trade-phrased description is a sale.
func IsDisposal(description string) bool {
	lower := strings.ToLower(description)
	return strings.Contains(lower, "venta ") || strings.Contains(lower, "sell ")
}
