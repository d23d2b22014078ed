package currency

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Convert returns amount units of the base expressed in target.
func (r Rates) Convert(amount decimal.Decimal, target string) (decimal.Decimal, bool) {
	rate, ok := r.Rates[target]
	if !ok {
		return decimal.Decimal{}, false
	}
	return rate.Mul(amount), true
}

// TableLines renders every rate multiplied by amount, one "  - CODE: value"
// line per currency in code order.
func (r Rates) TableLines(amount decimal.Decimal) []string {
	codes := make([]string, 0, len(r.Rates))
	for code := range r.Rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	lines := make([]string, len(codes))
	for i, code := range codes {
		lines[i] = fmt.Sprintf("  - %s: %s", code, FormatResult(r.Rates[code].Mul(amount)))
	}
	return lines
}

// FormatAmount renders an input amount with two decimals.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatResult renders a converted value with four decimals.
func FormatResult(d decimal.Decimal) string {
	return d.StringFixed(4)
}
