package service

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/currency"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// processor runs write actions; *operator.OperatorDelegator satisfies it.
type processor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Service holds all business logic services.
type Service struct {
	Transaction *TransactionService
	Account     *AccountService
	Rates       *currency.Table
}

// NewService creates a new Service over the given storage. Writes go
// through op; rates converts between currencies.
func NewService(store *storage.Storage, op processor, rates *currency.Table) *Service {
	return &Service{
		Transaction: NewTransactionService(op, rates),
		Account:     NewAccountService(store, op, rates),
		Rates:       rates,
	}
}
