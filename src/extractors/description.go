package extractors

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Patterns over the export's trade phrasing, e.g.
// "Compra 4 Procter & Gamble@155 USD (US7427181091)" or
// "Venta 1 Block Inc.@61,82 USD (US8522341036)".
var (
	tradeSharesRe = regexp.MustCompile(`(?i)(?:compra|venta|buy|sell)\s+(\d+)\s`)
	tradePriceRe  = regexp.MustCompile(`@([\d\.,]+)\s+(USD|EUR|GBP|CHF)`)
	descISINRe    = regexp.MustCompile(`\(([A-Z]{2}[A-Z0-9]{9}[0-9])\)`)

	dividendSharesRe = regexp.MustCompile(`(?i)(\d+)\s+(?:acciones|shares)`)
	perShareRe       = regexp.MustCompile(`@([\d\.,]+)`)
)

// cleanDescription replaces the non-breaking spaces the exports sprinkle
// into descriptions, so the \s in the patterns above can match.
func cleanDescription(s string) string {
	return strings.ReplaceAll(s, "\u00A0", " ")
}

// parseDecimal parses a number that may use the European decimal comma,
// including the mixed thousands format ("1.208,88" -> 1208.88).
func parseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty numeric field")
	}
	if strings.Contains(s, ".") && strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	} else {
		s = strings.ReplaceAll(s, ",", ".")
	}
	return strconv.ParseFloat(s, 64)
}

// sharesFromDescription pulls the traded share count out of the
// description, or 0 when the phrasing carries none.
func sharesFromDescription(description string) int {
	matches := tradeSharesRe.FindStringSubmatch(cleanDescription(description))
	if matches == nil {
		return 0
	}
	shares, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0
	}
	return shares
}

// priceFromDescription pulls the per-unit price after the '@' marker,
// or 0 when the phrasing carries none.
func priceFromDescription(description string) float64 {
	matches := tradePriceRe.FindStringSubmatch(cleanDescription(description))
	if matches == nil {
		return 0
	}
	price, err := parseDecimal(matches[1])
	if err != nil {
		return 0
	}
	return price
}

// isinFromDescription pulls the parenthesized ISIN out of the description,
// or an empty string when none is present.
func isinFromDescription(description string) string {
	matches := descISINRe.FindStringSubmatch(cleanDescription(description))
	if matches == nil {
		return ""
	}
	return matches[1]
}
