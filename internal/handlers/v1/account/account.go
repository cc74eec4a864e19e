package account

import (
	"time"

	"github.com/carson-networks/ledger-server/internal/service"
)

// Account is the API response model for a newly opened account.
type Account struct {
	ID            string `json:"id" doc:"Account UUID"`
	AccountNumber string `json:"accountNo" doc:"8-digit account number"`
	BaseCurrency  string `json:"baseCcy" doc:"ISO 4217 base currency"`
	Balance       string `json:"balance" doc:"Decimal balance in the base currency"`
	CreatedAt     string `json:"createdAt" doc:"RFC3339 creation time"`
}

// AccountBalance is the API response model for an account balance.
type AccountBalance struct {
	AccountNumber string `json:"accountNo" doc:"8-digit account number"`
	BaseCurrency  string `json:"baseCcy" doc:"ISO 4217 base currency"`
	Balance       string `json:"balance" doc:"Decimal balance in the base currency"`
}

func accountFromService(acc *service.Account) Account {
	return Account{
		ID:            acc.ID.String(),
		AccountNumber: acc.AccountNumber,
		BaseCurrency:  acc.BaseCurrency.String(),
		Balance:       acc.Balance.String(),
		CreatedAt:     acc.CreatedAt.Format(time.RFC3339),
	}
}

func balanceFromService(b service.AccountBalance) AccountBalance {
	return AccountBalance{
		AccountNumber: b.AccountNumber,
		BaseCurrency:  b.BaseCurrency.String(),
		Balance:       b.Balance.String(),
	}
}
