package actions

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledgererr"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// Transfer moves Amount, in the sender's base currency, from one account to
// another. Both legs are staged in the same writer so they commit together.
type Transfer struct {
	FromAccountNumber string
	ToAccountNumber   string
	Amount            decimal.Decimal
	Rates             Converter

	Out transaction.Transaction
	In  transaction.Transaction
}

func (t *Transfer) Accounts() []string {
	return []string{t.FromAccountNumber, t.ToAccountNumber}
}

func (t *Transfer) Perform(ctx context.Context, writer *storage.Writer) error {
	from, err := writer.Account.FindByAccountNumberForUpdate(ctx, t.FromAccountNumber)
	if err != nil {
		return err
	}
	to, err := writer.Account.FindByAccountNumberForUpdate(ctx, t.ToAccountNumber)
	if err != nil {
		return err
	}

	if from.Balance().Sub(t.Amount).IsNegative() {
		return ledgererr.New(ledgererr.KindInsufficientFunds, from.AccountNumber)
	}

	converted, err := t.Rates.Convert(from.BaseCurrency, to.BaseCurrency, t.Amount)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	t.Out = transaction.New(transaction.TransactionCreate{
		AccountNumber: from.AccountNumber,
		Type:          transaction.TypeTransferOut,
		Amount:        t.Amount,
		Currency:      from.BaseCurrency,
		Counterparty:  to.AccountNumber,
		Timestamp:     now,
	})
	t.In = transaction.New(transaction.TransactionCreate{
		AccountNumber:  to.AccountNumber,
		Type:           transaction.TypeTransferIn,
		Amount:         converted,
		Currency:       to.BaseCurrency,
		SourceAmount:   t.Amount,
		SourceCurrency: from.BaseCurrency,
		Counterparty:   from.AccountNumber,
		Timestamp:      now,
	})

	writer.Account.Append(ctx, from.AccountNumber, t.Out)
	writer.Account.Append(ctx, to.AccountNumber, t.In)
	return nil
}
