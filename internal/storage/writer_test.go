package storage

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/currency"
	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

func seed(t *testing.T, s *Storage, accountNumber string) {
	t.Helper()
	_, err := s.Accounts.Insert(context.Background(), &account.Account{
		AccountNumber: accountNumber,
		BaseCurrency:  currency.GBP,
	})
	require.NoError(t, err)
}

func depositOf(accountNumber string, amount int64) transaction.Transaction {
	return transaction.New(transaction.TransactionCreate{
		AccountNumber: accountNumber,
		Type:          transaction.TypeDeposit,
		Amount:        decimal.NewFromInt(amount),
		Currency:      currency.GBP,
	})
}

func TestWriter_Commit(t *testing.T) {
	s := NewStorage()
	seed(t, s, "10000001")

	w, err := s.Write(context.Background(), "10000001")
	require.NoError(t, err)
	w.Account.Append(context.Background(), "10000001", depositOf("10000001", 40))
	require.NoError(t, w.Commit(context.Background()))

	acc, err := s.Read().Accounts.FindByAccountNumber(context.Background(), "10000001")
	require.NoError(t, err)
	assert.True(t, acc.Balance().Equal(decimal.NewFromInt(40)))

	assert.ErrorIs(t, w.Commit(context.Background()), ErrWriterClosed)
	assert.ErrorIs(t, w.Rollback(), ErrWriterClosed)
}

func TestWriter_Rollback(t *testing.T) {
	s := NewStorage()
	seed(t, s, "10000001")

	w, err := s.Write(context.Background(), "10000001")
	require.NoError(t, err)
	w.Account.Append(context.Background(), "10000001", depositOf("10000001", 40))
	require.NoError(t, w.Rollback())

	acc, err := s.Read().Accounts.FindByAccountNumber(context.Background(), "10000001")
	require.NoError(t, err)
	assert.Empty(t, acc.Transactions)
}

func TestWriter_HoldsLockUntilClosed(t *testing.T) {
	s := NewStorage()
	seed(t, s, "10000001")

	first, err := s.Write(context.Background(), "10000001")
	require.NoError(t, err)

	acquired := make(chan *Writer)
	go func() {
		second, _ := s.Write(context.Background(), "10000001")
		acquired <- second
	}()

	select {
	case <-acquired:
		t.Fatal("second writer acquired a held lock")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, first.Commit(context.Background()))
	select {
	case second := <-acquired:
		require.NoError(t, second.Rollback())
	case <-time.After(time.Second):
		t.Fatal("lock not released on commit")
	}
}

func TestWrite_CancelledContext(t *testing.T) {
	s := NewStorage()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Write(ctx, "10000001")
	assert.ErrorIs(t, err, context.Canceled)
}
