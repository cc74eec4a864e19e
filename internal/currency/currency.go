package currency

import (
	"strings"

	"github.com/carson-networks/ledger-server/internal/ledgererr"
)

// Code is an ISO-4217 style currency code, e.g. "GBP".
type Code string

const (
	GBP Code = "GBP"
	USD Code = "USD"
	EUR Code = "EUR"
)

func (c Code) String() string {
	return string(c)
}

// ParseCode upper-cases s and checks it is three ASCII letters.
func ParseCode(s string) (Code, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	if len(code) != 3 {
		return "", ledgererr.New(ledgererr.KindUnknownCurrency, s)
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", ledgererr.New(ledgererr.KindUnknownCurrency, s)
		}
	}
	return Code(code), nil
}
