package utils

import (
	"regexp"
	"strings"
)

var isinRe = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{9}[0-9]$`)

// IsValidISIN reports whether s has the shape of an ISIN
// (two-letter country prefix, nine alphanumerics, check digit).
func IsValidISIN(s string) bool {
	return isinRe.MatchString(s)
}

// CountryCodeFromISIN returns the alpha-2 country prefix of an ISIN,
// or an empty string when the ISIN is too short to carry one.
func CountryCodeFromISIN(isin string) string {
	if len(isin) < 2 {
		return ""
	}
	return strings.ToUpper(isin[:2])
}
