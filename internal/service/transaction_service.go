package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/currency"
	"github.com/carson-networks/ledger-server/internal/ledgererr"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
)

// TransactionService handles deposits, withdrawals and transfers.
type TransactionService struct {
	operator processor
	rates    *currency.Table
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(op processor, rates *currency.Table) *TransactionService {
	return &TransactionService{operator: op, rates: rates}
}

// Deposit credits amount, given in ccy, to the account after converting it
// to the account's base currency.
func (s *TransactionService) Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal, ccy currency.Code) (*Transaction, error) {
	if err := CheckAmount(amount); err != nil {
		return nil, err
	}

	action := &actions.Deposit{
		AccountNumber: accountNumber,
		Amount:        amount,
		Currency:      ccy,
		Rates:         s.rates,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	txn := transactionFromStorage(action.Result)
	return &txn, nil
}

// Withdraw debits amount, in the account's base currency.
func (s *TransactionService) Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal) (*Transaction, error) {
	if err := CheckAmount(amount); err != nil {
		return nil, err
	}

	action := &actions.Withdraw{
		AccountNumber: accountNumber,
		Amount:        amount,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	txn := transactionFromStorage(action.Result)
	return &txn, nil
}

// Transfer moves amount, in the sender's base currency, to another
// account. Either both legs are recorded or neither is.
func (s *TransactionService) Transfer(ctx context.Context, fromAccountNumber, toAccountNumber string, amount decimal.Decimal) (*TransferResult, error) {
	if err := CheckAmount(amount); err != nil {
		return nil, err
	}
	if fromAccountNumber == toAccountNumber {
		return nil, ledgererr.New(ledgererr.KindSameAccount, fromAccountNumber)
	}

	action := &actions.Transfer{
		FromAccountNumber: fromAccountNumber,
		ToAccountNumber:   toAccountNumber,
		Amount:            amount,
		Rates:             s.rates,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	return &TransferResult{
		Out: transactionFromStorage(action.Out),
		In:  transactionFromStorage(action.In),
	}, nil
}

// Precision bounds for a single amount.
const (
	maxFractionDigits = 18
	maxIntegerDigits  = 30
)

// CheckAmount rejects amounts that are not positive or that carry more
// precision than the ledger records.
func CheckAmount(amount decimal.Decimal) error {
	exp := int64(amount.Exponent())
	if exp < -maxFractionDigits || int64(amount.NumDigits())+exp > maxIntegerDigits {
		return ledgererr.New(ledgererr.KindInvalidAmount, fmt.Sprintf("%se%d", amount.Coefficient(), exp))
	}
	if !amount.IsPositive() {
		return ledgererr.New(ledgererr.KindInvalidAmount, amount.String())
	}
	return nil
}
