package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a bank-supplied amount string into a decimal. It accepts
// both "1234.56" and European "1.234,56" notation and tolerates surrounding
// whitespace and currency markers.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, "€")
	s = strings.TrimSpace(s)

	if strings.Contains(s, ",") {
		// Comma is the decimal separator; dots are thousands separators.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}

	return decimal.NewFromString(s)
}

// AmountSign returns -1, 0 or 1 for a parseable amount string. The second
// return is false when the string cannot be parsed; callers treat that as
// "sign unknown" rather than an error.
func AmountSign(raw string) (int, bool) {
	d, err := ParseAmount(raw)
	if err != nil {
		return 0, false
	}
	return d.Sign(), true
}
