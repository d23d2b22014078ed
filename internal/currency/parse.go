// Package currency parses free-form exchange commands and queries the
// latest and historical exchange rate APIs.
package currency

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNotCurrency means the text does not start with a currency code.
var ErrNotCurrency = errors.New("not a currency command")

var (
	baseToken   = regexp.MustCompile(`(?i)^([A-Z]{2,4})(\d*\.?\d*)?$`)
	amountToken = regexp.MustCompile(`^\d+(\.\d+)?$`)
)

// Command is a parsed conversion request. Target is empty when the full
// rate table is wanted.
type Command struct {
	Base   string
	Amount decimal.Decimal
	Target string
}

// Parse reads "<CODE>[amount] [amount] [TARGET]" from the text after the
// command prefix. An explicit numeric second token replaces any amount
// attached to the code, and the third token is then the target; otherwise
// the second token is the target. Tokens past the third are ignored.
func Parse(raw string) (Command, error) {
	tokens := strings.Fields(raw)
	if len(tokens) == 0 {
		return Command{}, ErrNotCurrency
	}

	m := baseToken.FindStringSubmatch(tokens[0])
	if m == nil {
		return Command{}, ErrNotCurrency
	}

	cmd := Command{
		Base:   strings.ToUpper(m[1]),
		Amount: decimal.NewFromInt(1),
	}
	if amount, ok := parseAmount(m[2]); ok {
		cmd.Amount = amount
	}

	if len(tokens) > 1 {
		if amountToken.MatchString(tokens[1]) {
			if amount, ok := parseAmount(tokens[1]); ok {
				cmd.Amount = amount
				if len(tokens) > 2 {
					cmd.Target = strings.ToUpper(tokens[2])
				}
			}
		} else {
			cmd.Target = strings.ToUpper(tokens[1])
		}
	}
	return cmd, nil
}

// parseAmount accepts the forms "5", "5.", ".5" and "5.25".
func parseAmount(s string) (decimal.Decimal, bool) {
	if s == "" || s == "." {
		return decimal.Decimal{}, false
	}
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	s = strings.TrimSuffix(s, ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
