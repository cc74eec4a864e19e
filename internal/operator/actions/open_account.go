package actions

import (
	"context"
	"errors"

	"github.com/carson-networks/ledger-server/internal/currency"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
)

const defaultMaxAttempts = 10

// ErrAccountNumbersExhausted means every generated number was already taken.
var ErrAccountNumbersExhausted = errors.New("could not generate an unused account number")

type OpenAccount struct {
	BaseCurrency currency.Code
	NewNumber    func() string
	MaxAttempts  int

	Result *account.Account
}

func (o *OpenAccount) Accounts() []string {
	return nil
}

func (o *OpenAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	attempts := o.MaxAttempts
	if attempts < 1 {
		attempts = defaultMaxAttempts
	}

	for i := 0; i < attempts; i++ {
		accountNumber := o.NewNumber()
		taken, err := writer.Account.Exists(ctx, accountNumber)
		if err != nil {
			return err
		}
		if taken {
			continue
		}

		o.Result = writer.Account.Create(ctx, accountNumber, account.Account{
			BaseCurrency: o.BaseCurrency,
		})
		return nil
	}
	return ErrAccountNumbersExhausted
}
