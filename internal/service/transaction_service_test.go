package service

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/currency"
	"github.com/carson-networks/ledger-server/internal/ledgererr"
)

// -- Deposit tests --

func TestDeposit_ConvertsToBaseCurrency(t *testing.T) {
	svc, _ := newTestService(t, 1)
	no := openFunded(t, svc, currency.GBP, "0")

	txn, err := svc.Transaction.Deposit(context.Background(), no, decimal.NewFromInt(500), currency.USD)

	require.NoError(t, err)
	assert.Equal(t, TransactionTypeDeposit, txn.Type)
	assert.True(t, txn.Amount.Equal(decimal.RequireFromString("382.5")))
	assert.Equal(t, currency.GBP, txn.Currency)
	assert.True(t, txn.SourceAmount.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, currency.USD, txn.SourceCurrency)
	assert.True(t, balance(t, svc, no).Equal(decimal.RequireFromString("382.5")))
}

func TestDeposit_InvalidAmount(t *testing.T) {
	svc, _ := newTestService(t, 1)
	no := openFunded(t, svc, currency.GBP, "0")

	for _, amount := range []string{"0", "-1", "-0.01"} {
		_, err := svc.Transaction.Deposit(context.Background(), no, decimal.RequireFromString(amount), currency.GBP)
		assert.True(t, ledgererr.Is(err, ledgererr.KindInvalidAmount), amount)
	}
	assert.True(t, balance(t, svc, no).IsZero())
}

func TestCheckAmount_PrecisionBounds(t *testing.T) {
	for _, amount := range []string{"1e-20000000", "1e400", "0.0000000000000000001", "1000000000000000000000000000000"} {
		err := CheckAmount(decimal.RequireFromString(amount))
		assert.True(t, ledgererr.Is(err, ledgererr.KindInvalidAmount), amount)
	}

	for _, amount := range []string{"0.000000000000000001", "999999999999999999999999999999", "12.50"} {
		assert.NoError(t, CheckAmount(decimal.RequireFromString(amount)), amount)
	}
}

func TestCheckAmount_SubjectStaysShort(t *testing.T) {
	err := CheckAmount(decimal.RequireFromString("1e-20000000"))

	var ledgerErr *ledgererr.Error
	require.ErrorAs(t, err, &ledgerErr)
	assert.Equal(t, "1e-20000000", ledgerErr.Subject)
}

func TestDeposit_ExtremeExponentsRecordNothing(t *testing.T) {
	svc, _ := newTestService(t, 1)
	no := openFunded(t, svc, currency.GBP, "10")

	for _, amount := range []string{"1e-20000000", "1e400"} {
		_, err := svc.Transaction.Deposit(context.Background(), no, decimal.RequireFromString(amount), currency.GBP)
		assert.True(t, ledgererr.Is(err, ledgererr.KindInvalidAmount), amount)

		_, err = svc.Transaction.Withdraw(context.Background(), no, decimal.RequireFromString(amount))
		assert.True(t, ledgererr.Is(err, ledgererr.KindInvalidAmount), amount)
	}

	history, err := svc.Account.GetTransactionHistory(context.Background(), no)
	require.NoError(t, err)
	assert.Len(t, history, 1)
	assert.True(t, balance(t, svc, no).Equal(decimal.NewFromInt(10)))
}

func TestDeposit_UnknownRatePair(t *testing.T) {
	svc, _ := newTestService(t, 1)
	no := openFunded(t, svc, currency.GBP, "0")

	_, err := svc.Transaction.Deposit(context.Background(), no, decimal.NewFromInt(1), "CHF")

	assert.True(t, ledgererr.Is(err, ledgererr.KindUnknownRatePair))
}

func TestDeposit_AccountNotFound(t *testing.T) {
	svc, _ := newTestService(t, 1)

	_, err := svc.Transaction.Deposit(context.Background(), "00000000", decimal.NewFromInt(1), currency.GBP)

	assert.True(t, ledgererr.Is(err, ledgererr.KindAccountNotFound))
}

// -- Withdraw tests --

func TestWithdraw_InsufficientFundsLeavesBalance(t *testing.T) {
	svc, _ := newTestService(t, 1)
	no := openFunded(t, svc, currency.GBP, "1000")

	txn, err := svc.Transaction.Withdraw(context.Background(), no, decimal.NewFromInt(500))
	require.NoError(t, err)
	assert.True(t, txn.Amount.Equal(decimal.NewFromInt(-500)))
	assert.True(t, balance(t, svc, no).Equal(decimal.NewFromInt(500)))

	_, err = svc.Transaction.Withdraw(context.Background(), no, decimal.NewFromInt(600))
	assert.True(t, ledgererr.Is(err, ledgererr.KindInsufficientFunds))
	assert.True(t, balance(t, svc, no).Equal(decimal.NewFromInt(500)))
}

func TestWithdraw_InvalidAmount(t *testing.T) {
	svc, _ := newTestService(t, 1)
	no := openFunded(t, svc, currency.GBP, "10")

	_, err := svc.Transaction.Withdraw(context.Background(), no, decimal.Zero)

	assert.True(t, ledgererr.Is(err, ledgererr.KindInvalidAmount))
}

func TestWithdraw_ConcurrentNeverOverdraws(t *testing.T) {
	svc, _ := newTestService(t, 4)
	no := openFunded(t, svc, currency.GBP, "100")

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Transaction.Withdraw(context.Background(), no, decimal.NewFromInt(7))
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			assert.True(t, ledgererr.Is(err, ledgererr.KindInsufficientFunds))
		}()
	}
	wg.Wait()

	assert.Equal(t, 14, succeeded)
	assert.True(t, balance(t, svc, no).Equal(decimal.NewFromInt(2)))
}

// -- Transfer tests --

func TestTransfer_CrossCurrency(t *testing.T) {
	svc, _ := newTestService(t, 1)
	from := openFunded(t, svc, currency.GBP, "1000")
	to := openFunded(t, svc, currency.USD, "0")

	result, err := svc.Transaction.Transfer(context.Background(), from, to, decimal.NewFromInt(1000))

	require.NoError(t, err)
	assert.True(t, balance(t, svc, from).IsZero())
	assert.True(t, balance(t, svc, to).Equal(decimal.NewFromInt(1414)))

	assert.Equal(t, TransactionTypeTransferOut, result.Out.Type)
	assert.True(t, result.Out.Amount.Equal(decimal.NewFromInt(-1000)))
	assert.Equal(t, to, result.Out.Counterparty)
	assert.Equal(t, TransactionTypeTransferIn, result.In.Type)
	assert.True(t, result.In.Amount.Equal(decimal.NewFromInt(1414)))
	assert.Equal(t, from, result.In.Counterparty)
	assert.Equal(t, result.Out.Timestamp, result.In.Timestamp)
}

func TestTransfer_SameAccount(t *testing.T) {
	svc, _ := newTestService(t, 1)
	no := openFunded(t, svc, currency.GBP, "10")

	_, err := svc.Transaction.Transfer(context.Background(), no, no, decimal.NewFromInt(1))

	assert.True(t, ledgererr.Is(err, ledgererr.KindSameAccount))
	assert.True(t, balance(t, svc, no).Equal(decimal.NewFromInt(10)))
}

func TestTransfer_FailuresRecordNoLeg(t *testing.T) {
	svc, _ := newTestService(t, 1)
	from := openFunded(t, svc, currency.GBP, "100")
	to := openFunded(t, svc, currency.USD, "0")

	_, err := svc.Transaction.Transfer(context.Background(), from, to, decimal.NewFromInt(101))
	assert.True(t, ledgererr.Is(err, ledgererr.KindInsufficientFunds))

	_, err = svc.Transaction.Transfer(context.Background(), from, "00000000", decimal.NewFromInt(1))
	assert.True(t, ledgererr.Is(err, ledgererr.KindAccountNotFound))

	_, err = svc.Transaction.Transfer(context.Background(), from, to, decimal.NewFromInt(-1))
	assert.True(t, ledgererr.Is(err, ledgererr.KindInvalidAmount))

	fromHistory, err := svc.Account.GetTransactionHistory(context.Background(), from)
	require.NoError(t, err)
	assert.Len(t, fromHistory, 1)
	toHistory, err := svc.Account.GetTransactionHistory(context.Background(), to)
	require.NoError(t, err)
	assert.Empty(t, toHistory)
}

func TestTransfer_UnknownRatePairRecordsNoLeg(t *testing.T) {
	rates, err := currency.NewTable([]currency.Pair{
		{From: currency.USD, To: currency.GBP, Rate: decimal.RequireFromString("0.765")},
	})
	require.NoError(t, err)

	full, store := newTestService(t, 1)
	from := openFunded(t, full, currency.GBP, "100")
	to := openFunded(t, full, currency.USD, "0")

	// Same store and operator, narrower table.
	limited := NewTransactionService(full.Transaction.operator, rates)
	_, err = limited.Transfer(context.Background(), from, to, decimal.NewFromInt(50))
	assert.True(t, ledgererr.Is(err, ledgererr.KindUnknownRatePair))

	acc, err := store.Read().Accounts.FindByAccountNumber(context.Background(), from)
	require.NoError(t, err)
	assert.Len(t, acc.Transactions, 1)
	assert.True(t, balance(t, full, to).IsZero())
}

func TestTransfer_OppositeDirectionsConcurrently(t *testing.T) {
	svc, _ := newTestService(t, 8)
	a := openFunded(t, svc, currency.GBP, "1000")
	b := openFunded(t, svc, currency.GBP, "1000")

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := svc.Transaction.Transfer(context.Background(), a, b, decimal.NewFromInt(3))
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := svc.Transaction.Transfer(context.Background(), b, a, decimal.NewFromInt(3))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	total := balance(t, svc, a).Add(balance(t, svc, b))
	assert.True(t, total.Equal(decimal.NewFromInt(2000)), total.String())
	assert.True(t, balance(t, svc, a).Equal(decimal.NewFromInt(1000)))
}

func TestDeleteAccount_RacesDeposit(t *testing.T) {
	svc, _ := newTestService(t, 4)
	no := openFunded(t, svc, currency.GBP, "0")

	var (
		wg         sync.WaitGroup
		depositErr error
		deleteErr  error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, depositErr = svc.Transaction.Deposit(context.Background(), no, decimal.NewFromInt(1), currency.GBP)
	}()
	go func() {
		defer wg.Done()
		_, deleteErr = svc.Account.DeleteAccount(context.Background(), no)
	}()
	wg.Wait()

	if depositErr == nil {
		// Deposit won: delete must have seen the non-zero balance.
		assert.True(t, ledgererr.Is(deleteErr, ledgererr.KindPositiveBalance))
		assert.True(t, balance(t, svc, no).Equal(decimal.NewFromInt(1)))
		return
	}
	assert.NoError(t, deleteErr)
	assert.True(t, ledgererr.Is(depositErr, ledgererr.KindAccountNotFound))
}
