package actions

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledgererr"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// Withdraw debits Amount, in the account's base currency. The balance may
// never go below zero.
type Withdraw struct {
	AccountNumber string
	Amount        decimal.Decimal

	Result transaction.Transaction
}

func (w *Withdraw) Accounts() []string {
	return []string{w.AccountNumber}
}

func (w *Withdraw) Perform(ctx context.Context, writer *storage.Writer) error {
	acc, err := writer.Account.FindByAccountNumberForUpdate(ctx, w.AccountNumber)
	if err != nil {
		return err
	}

	if acc.Balance().Sub(w.Amount).IsNegative() {
		return ledgererr.New(ledgererr.KindInsufficientFunds, acc.AccountNumber)
	}

	w.Result = transaction.New(transaction.TransactionCreate{
		AccountNumber: acc.AccountNumber,
		Type:          transaction.TypeWithdrawal,
		Amount:        w.Amount,
		Currency:      acc.BaseCurrency,
	})
	writer.Account.Append(ctx, acc.AccountNumber, w.Result)
	return nil
}
