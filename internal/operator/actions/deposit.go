package actions

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/currency"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// Deposit credits Amount in Currency, converted to the account's base
// currency.
type Deposit struct {
	AccountNumber string
	Amount        decimal.Decimal
	Currency      currency.Code
	Rates         Converter

	Result transaction.Transaction
}

func (d *Deposit) Accounts() []string {
	return []string{d.AccountNumber}
}

func (d *Deposit) Perform(ctx context.Context, writer *storage.Writer) error {
	acc, err := writer.Account.FindByAccountNumberForUpdate(ctx, d.AccountNumber)
	if err != nil {
		return err
	}

	converted, err := d.Rates.Convert(d.Currency, acc.BaseCurrency, d.Amount)
	if err != nil {
		return err
	}

	d.Result = transaction.New(transaction.TransactionCreate{
		AccountNumber:  acc.AccountNumber,
		Type:           transaction.TypeDeposit,
		Amount:         converted,
		Currency:       acc.BaseCurrency,
		SourceAmount:   d.Amount,
		SourceCurrency: d.Currency,
	})
	writer.Account.Append(ctx, acc.AccountNumber, d.Result)
	return nil
}
