package actions

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/ledgererr"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// DeleteAccount closes an account whose derived balance is exactly zero.
type DeleteAccount struct {
	AccountNumber string

	Result bool
}

func (d *DeleteAccount) Accounts() []string {
	return []string{d.AccountNumber}
}

func (d *DeleteAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	acc, err := writer.Account.FindByAccountNumberForUpdate(ctx, d.AccountNumber)
	if err != nil {
		return err
	}

	if !acc.Balance().IsZero() {
		return ledgererr.New(ledgererr.KindPositiveBalance, acc.AccountNumber)
	}

	writer.Account.Delete(ctx, acc.AccountNumber)
	d.Result = true
	return nil
}
