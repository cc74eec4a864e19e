package service

import (
	"context"
	"errors"

	"github.com/carson-networks/ledger-server/internal/currency"
	"github.com/carson-networks/ledger-server/internal/ledgererr"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
)

// openAccountAttempts bounds how often OpenAccount resubmits after losing
// a number to a concurrent open.
const openAccountAttempts = 3

// AccountService handles account business logic.
type AccountService struct {
	storage   *storage.Storage
	operator  processor
	rates     *currency.Table
	newNumber func() string
}

// NewAccountService creates a new AccountService.
func NewAccountService(store *storage.Storage, op processor, rates *currency.Table) *AccountService {
	return &AccountService{
		storage:   store,
		operator:  op,
		rates:     rates,
		newNumber: randomAccountNumber,
	}
}

// OpenAccount creates an empty account in baseCurrency under a fresh
// account number.
func (s *AccountService) OpenAccount(ctx context.Context, baseCurrency currency.Code) (*Account, error) {
	if !s.rates.Supports(baseCurrency) {
		return nil, ledgererr.New(ledgererr.KindUnknownCurrency, baseCurrency.String())
	}

	for attempt := 1; ; attempt++ {
		action := &actions.OpenAccount{
			BaseCurrency: baseCurrency,
			NewNumber:    s.newNumber,
		}
		err := s.operator.Process(ctx, action)
		if errors.Is(err, account.ErrDuplicateAccountNumber) && attempt < openAccountAttempts {
			continue
		}
		if err != nil {
			return nil, err
		}
		return accountFromStorage(action.Result), nil
	}
}

// GetBalance returns the derived balance of an account.
func (s *AccountService) GetBalance(ctx context.Context, accountNumber string) (*AccountBalance, error) {
	acc, err := s.storage.Read().Accounts.FindByAccountNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	balance := balanceFromStorage(acc)
	return &balance, nil
}

// ListAccounts returns every account in creation order.
func (s *AccountService) ListAccounts(ctx context.Context) ([]AccountBalance, error) {
	accounts, err := s.storage.Read().Accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, ledgererr.New(ledgererr.KindNoAccountsExist, "")
	}

	balances := make([]AccountBalance, len(accounts))
	for i, acc := range accounts {
		balances[i] = balanceFromStorage(acc)
	}
	return balances, nil
}

// GetTransactionHistory returns the account's transactions in the order
// they were recorded.
func (s *AccountService) GetTransactionHistory(ctx context.Context, accountNumber string) ([]Transaction, error) {
	acc, err := s.storage.Read().Accounts.FindByAccountNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	return transactionsFromStorage(acc.Transactions), nil
}

// DeleteAccount removes an account whose balance is zero.
func (s *AccountService) DeleteAccount(ctx context.Context, accountNumber string) (bool, error) {
	action := &actions.DeleteAccount{AccountNumber: accountNumber}
	if err := s.operator.Process(ctx, action); err != nil {
		return false, err
	}
	return action.Result, nil
}
