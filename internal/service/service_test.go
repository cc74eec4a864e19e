package service

import (
	"context"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/currency"
	"github.com/carson-networks/ledger-server/internal/operator"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
)

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) Process(ctx context.Context, action actions.IAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

// newTestService wires a Service over a real in-memory store and operator.
func newTestService(t *testing.T, workers int) (*Service, *storage.Storage) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store := storage.NewStorage()
	op := operator.NewOperatorDelegator(store, workers, logger)
	op.Start()
	t.Cleanup(op.Stop)

	return NewService(store, op, currency.DefaultTable()), store
}

func openFunded(t *testing.T, svc *Service, ccy currency.Code, amount string) string {
	t.Helper()
	acc, err := svc.Account.OpenAccount(context.Background(), ccy)
	require.NoError(t, err)
	if amount != "0" {
		_, err = svc.Transaction.Deposit(context.Background(), acc.AccountNumber, decimal.RequireFromString(amount), ccy)
		require.NoError(t, err)
	}
	return acc.AccountNumber
}

func balance(t *testing.T, svc *Service, accountNumber string) decimal.Decimal {
	t.Helper()
	b, err := svc.Account.GetBalance(context.Background(), accountNumber)
	require.NoError(t, err)
	return b.Balance
}
