package actions

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/currency"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// IAction is a unit of work run by an Operator inside a storage.Writer.
// Accounts names every existing account the action reads or writes; the
// Operator locks them before Perform and releases them after commit or
// rollback.
type IAction interface {
	Accounts() []string
	Perform(ctx context.Context, writer *storage.Writer) error
}

// Converter converts amounts between currencies.
type Converter interface {
	Convert(from, to currency.Code, amount decimal.Decimal) (decimal.Decimal, error)
}
