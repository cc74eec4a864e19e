package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/currency"
	"github.com/carson-networks/ledger-server/internal/storage/account"
)

// Account represents an account in the service layer.
type Account struct {
	ID            uuid.UUID
	AccountNumber string
	BaseCurrency  currency.Code
	Balance       decimal.Decimal
	CreatedAt     time.Time
}

// AccountBalance is the balance view of an account.
type AccountBalance struct {
	AccountNumber string
	BaseCurrency  currency.Code
	Balance       decimal.Decimal
}

func accountFromStorage(acc *account.Account) *Account {
	return &Account{
		ID:            acc.ID,
		AccountNumber: acc.AccountNumber,
		BaseCurrency:  acc.BaseCurrency,
		Balance:       acc.Balance(),
		CreatedAt:     acc.CreatedAt,
	}
}

func balanceFromStorage(acc *account.Account) AccountBalance {
	return AccountBalance{
		AccountNumber: acc.AccountNumber,
		BaseCurrency:  acc.BaseCurrency,
		Balance:       acc.Balance(),
	}
}
