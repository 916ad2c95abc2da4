// Package money formats integer minor-unit amounts for display.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// DefaultCurrency is used when no currency is configured.
const DefaultCurrency = "usd"

// FormatCentsIn renders cents for the given ISO currency code, e.g.
// (10500, "usd") -> "$105.00". Unknown codes fall back to a "CODE 1.00"
// rendering and an empty code means DefaultCurrency.
func FormatCentsIn(cents int64, currency string) string {
	amount := decimal.NewFromInt(cents).Div(hundred)

	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}

	code := strings.ToLower(strings.TrimSpace(currency))
	if code == "" {
		code = DefaultCurrency
	}
	if symbol, ok := symbols[code]; ok {
		return sign + symbol + amount.StringFixed(2)
	}
	return sign + strings.ToUpper(code) + " " + amount.StringFixed(2)
}

var symbols = map[string]string{
	"usd": "$",
	"eur": "€",
	"gbp": "£",
}
