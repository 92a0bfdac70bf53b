package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// markers checked in order, longest first, so "CHF" wins over any symbol
// scan and "US$" resolves before the bare "$"
var currencyMarkers = []struct{ marker, code string }{
	{"CHF", "CHF"},
	{"USD", "USD"},
	{"EUR", "EUR"},
	{"GBP", "GBP"},
	{"JPY", "JPY"},
	{"AUD", "AUD"},
	{"CAD", "CAD"},
	{"NZD", "NZD"},
	{"US$", "USD"},
	{"$", "USD"},
	{"€", "EUR"},
	{"£", "GBP"},
	{"¥", "JPY"},
	{"￥", "JPY"},
}

var junkRe = regexp.MustCompile(`(?i)(chf|usd|eur|gbp|jpy|aud|cad|nzd|lots|[$\x{20ac}\x{a3}\x{a5}\x{ffe5}+%\x{2248}\s\x{a0}])`)

// cleanNumber parses one money or quantity cell the way the platform
// renders them: currency symbols and codes, thousands separators, leading
// plus signs, percent suffixes, approximation markers and lot units are
// all noise around the number. The detected currency code is returned
// alongside the value, "" when the cell carried no marker.
func cleanNumber(raw string) (decimal.Decimal, string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Decimal{}, "", fmt.Errorf("empty value")
	}

	currency := detectCurrency(s)

	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}

	s = junkRe.ReplaceAllString(s, "")
	s = strings.NewReplacer("−", "-", "–", "-").Replace(s)
	s = normalizeSeparators(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, "", fmt.Errorf("cannot parse number from %q", raw)
	}
	if neg {
		d = d.Neg()
	}
	return d, currency, nil
}

func detectCurrency(s string) string {
	upper := strings.ToUpper(s)
	for _, m := range currencyMarkers {
		if strings.Contains(upper, m.marker) {
			return m.code
		}
	}
	return ""
}

// normalizeSeparators rewrites locale-flavored numbers into the plain
// dot-decimal form the decimal parser expects. When both separators are
// present the rightmost one is the decimal mark; a lone comma is a decimal
// mark unless it is followed by exactly three digits.
func normalizeSeparators(s string) string {
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		digitsAfter := len(s) - lastComma - 1
		if strings.Count(s, ",") == 1 && digitsAfter != 3 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}
	return s
}
