// Package normalize canonicalizes user-entered product fields.
package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Name trims surrounding whitespace from a product title. Case is preserved.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// CapitalizeFirst trims s and upper-cases its first letter.
func CapitalizeFirst(s string) string {
	s = strings.TrimSpace(s)
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Category trims and lower-cases a category so filters and grouping ignore case.
func Category(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Price rounds v to two decimal places.
func Price(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Convert applies the exchange rate to a remote price and rounds the result.
func Convert(v, rate float64) float64 {
	return decimal.NewFromFloat(v).Mul(decimal.NewFromFloat(rate)).Round(2).InexactFloat64()
}
