package actions

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/currency"
	"github.com/carson-networks/ledger-server/internal/ledgererr"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// run performs action the way an Operator does.
func run(t *testing.T, s *storage.Storage, action IAction) error {
	t.Helper()
	writer, err := s.Write(context.Background(), action.Accounts()...)
	require.NoError(t, err)
	if err := action.Perform(context.Background(), writer); err != nil {
		require.NoError(t, writer.Rollback())
		return err
	}
	return writer.Commit(context.Background())
}

func newStorage(t *testing.T, accounts map[string]currency.Code) *storage.Storage {
	t.Helper()
	s := storage.NewStorage()
	for number, ccy := range accounts {
		_, err := s.Accounts.Insert(context.Background(), &account.Account{AccountNumber: number, BaseCurrency: ccy})
		require.NoError(t, err)
	}
	return s
}

func find(t *testing.T, s *storage.Storage, accountNumber string) *account.Account {
	t.Helper()
	acc, err := s.Read().Accounts.FindByAccountNumber(context.Background(), accountNumber)
	require.NoError(t, err)
	return acc
}

func fund(t *testing.T, s *storage.Storage, accountNumber string, amount string) {
	t.Helper()
	require.NoError(t, run(t, s, &Deposit{
		AccountNumber: accountNumber,
		Amount:        decimal.RequireFromString(amount),
		Currency:      find(t, s, accountNumber).BaseCurrency,
		Rates:         currency.DefaultTable(),
	}))
}

// -- OpenAccount tests --

func TestOpenAccount_RetriesTakenNumbers(t *testing.T) {
	s := newStorage(t, map[string]currency.Code{"11111111": currency.GBP})
	numbers := []string{"11111111", "11111111", "22222222"}
	next := 0

	action := &OpenAccount{
		BaseCurrency: currency.USD,
		NewNumber: func() string {
			n := numbers[next]
			next++
			return n
		},
	}
	require.NoError(t, run(t, s, action))

	assert.Equal(t, "22222222", action.Result.AccountNumber)
	assert.Equal(t, currency.USD, find(t, s, "22222222").BaseCurrency)
}

func TestOpenAccount_Exhausted(t *testing.T) {
	s := newStorage(t, map[string]currency.Code{"11111111": currency.GBP})

	err := run(t, s, &OpenAccount{
		BaseCurrency: currency.GBP,
		NewNumber:    func() string { return "11111111" },
		MaxAttempts:  3,
	})
	assert.ErrorIs(t, err, ErrAccountNumbersExhausted)
}

// -- Deposit tests --

func TestDeposit_ConvertsToBaseCurrency(t *testing.T) {
	s := newStorage(t, map[string]currency.Code{"10000001": currency.GBP})

	action := &Deposit{
		AccountNumber: "10000001",
		Amount:        decimal.NewFromInt(500),
		Currency:      currency.USD,
		Rates:         currency.DefaultTable(),
	}
	require.NoError(t, run(t, s, action))

	assert.Equal(t, transaction.TypeDeposit, action.Result.Type)
	assert.True(t, action.Result.Amount.Equal(decimal.RequireFromString("382.5")))
	assert.Equal(t, currency.GBP, action.Result.Currency)
	assert.Equal(t, currency.USD, action.Result.SourceCurrency)
	assert.True(t, find(t, s, "10000001").Balance().Equal(decimal.RequireFromString("382.5")))
}

func TestDeposit_UnknownRatePair(t *testing.T) {
	s := newStorage(t, map[string]currency.Code{"10000001": currency.GBP})

	err := run(t, s, &Deposit{
		AccountNumber: "10000001",
		Amount:        decimal.NewFromInt(500),
		Currency:      "JPY",
		Rates:         currency.DefaultTable(),
	})
	assert.True(t, ledgererr.Is(err, ledgererr.KindUnknownRatePair))
	assert.Empty(t, find(t, s, "10000001").Transactions)
}

func TestDeposit_AccountNotFound(t *testing.T) {
	s := newStorage(t, nil)

	err := run(t, s, &Deposit{AccountNumber: "missing", Amount: decimal.NewFromInt(1), Currency: currency.GBP, Rates: currency.DefaultTable()})
	assert.True(t, ledgererr.Is(err, ledgererr.KindAccountNotFound))
}

// -- Withdraw tests --

func TestWithdraw_NoOverdraft(t *testing.T) {
	s := newStorage(t, map[string]currency.Code{"10000001": currency.GBP})
	fund(t, s, "10000001", "1000")

	action := &Withdraw{AccountNumber: "10000001", Amount: decimal.NewFromInt(500)}
	require.NoError(t, run(t, s, action))
	assert.True(t, action.Result.Amount.Equal(decimal.NewFromInt(-500)))

	err := run(t, s, &Withdraw{AccountNumber: "10000001", Amount: decimal.NewFromInt(600)})
	assert.True(t, ledgererr.Is(err, ledgererr.KindInsufficientFunds))

	acc := find(t, s, "10000001")
	assert.True(t, acc.Balance().Equal(decimal.NewFromInt(500)))
	assert.Len(t, acc.Transactions, 2)
}

func TestWithdraw_ExactBalance(t *testing.T) {
	s := newStorage(t, map[string]currency.Code{"10000001": currency.GBP})
	fund(t, s, "10000001", "10.25")

	require.NoError(t, run(t, s, &Withdraw{AccountNumber: "10000001", Amount: decimal.RequireFromString("10.25")}))
	assert.True(t, find(t, s, "10000001").Balance().IsZero())
}

// -- Transfer tests --

func TestTransfer_CrossCurrency(t *testing.T) {
	s := newStorage(t, map[string]currency.Code{"10000001": currency.GBP, "10000002": currency.USD})
	fund(t, s, "10000001", "1000")

	action := &Transfer{
		FromAccountNumber: "10000001",
		ToAccountNumber:   "10000002",
		Amount:            decimal.NewFromInt(1000),
		Rates:             currency.DefaultTable(),
	}
	require.NoError(t, run(t, s, action))

	assert.True(t, find(t, s, "10000001").Balance().IsZero())
	assert.True(t, find(t, s, "10000002").Balance().Equal(decimal.NewFromInt(1414)))

	assert.Equal(t, transaction.TypeTransferOut, action.Out.Type)
	assert.Equal(t, "10000001", action.Out.AccountNumber)
	assert.Equal(t, "10000002", action.Out.Counterparty)
	assert.Equal(t, transaction.TypeTransferIn, action.In.Type)
	assert.Equal(t, "10000002", action.In.AccountNumber)
	assert.Equal(t, currency.USD, action.In.Currency)
	assert.Equal(t, currency.GBP, action.In.SourceCurrency)
}

func TestTransfer_NoLegOnFailure(t *testing.T) {
	rates, err := currency.NewTable([]currency.Pair{{From: currency.USD, To: currency.GBP, Rate: decimal.RequireFromString("0.765")}})
	require.NoError(t, err)
	s := newStorage(t, map[string]currency.Code{"10000001": currency.GBP, "10000002": currency.USD})
	fund(t, s, "10000001", "100")

	err = run(t, s, &Transfer{FromAccountNumber: "10000001", ToAccountNumber: "10000002", Amount: decimal.NewFromInt(50), Rates: rates})
	assert.True(t, ledgererr.Is(err, ledgererr.KindUnknownRatePair))

	err = run(t, s, &Transfer{FromAccountNumber: "10000001", ToAccountNumber: "10000002", Amount: decimal.NewFromInt(101), Rates: currency.DefaultTable()})
	assert.True(t, ledgererr.Is(err, ledgererr.KindInsufficientFunds))

	err = run(t, s, &Transfer{FromAccountNumber: "10000001", ToAccountNumber: "missing", Amount: decimal.NewFromInt(1), Rates: currency.DefaultTable()})
	assert.True(t, ledgererr.Is(err, ledgererr.KindAccountNotFound))

	assert.Len(t, find(t, s, "10000001").Transactions, 1)
	assert.Empty(t, find(t, s, "10000002").Transactions)
}

// -- DeleteAccount tests --

func TestDeleteAccount(t *testing.T) {
	s := newStorage(t, map[string]currency.Code{"10000001": currency.GBP})
	fund(t, s, "10000001", "1")

	err := run(t, s, &DeleteAccount{AccountNumber: "10000001"})
	assert.True(t, ledgererr.Is(err, ledgererr.KindPositiveBalance))
	find(t, s, "10000001")

	require.NoError(t, run(t, s, &Withdraw{AccountNumber: "10000001", Amount: decimal.NewFromInt(1)}))
	action := &DeleteAccount{AccountNumber: "10000001"}
	require.NoError(t, run(t, s, action))
	assert.True(t, action.Result)

	_, err = s.Read().Accounts.FindByAccountNumber(context.Background(), "10000001")
	assert.True(t, ledgererr.Is(err, ledgererr.KindAccountNotFound))
}
