package account

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/currency"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// ErrDuplicateAccountNumber is returned when an insert reuses a number
// already held by another account.
var ErrDuplicateAccountNumber = errors.New("duplicate account number")

// Account represents an account record. Its balance is never stored; see
// Balance.
type Account struct {
	ID            uuid.UUID
	AccountNumber string
	BaseCurrency  currency.Code
	Transactions  []transaction.Transaction
	CreatedAt     time.Time
}

// Balance derives the balance from the transaction history.
func (a *Account) Balance() decimal.Decimal {
	return transaction.Sum(a.Transactions)
}

func (a *Account) clone() *Account {
	cp := *a
	cp.Transactions = make([]transaction.Transaction, len(a.Transactions))
	copy(cp.Transactions, a.Transactions)
	return &cp
}

// ChangeSet is a group of writes applied as one unit by IAccountTable.Apply.
type ChangeSet struct {
	Inserts []*Account
	Appends []Append
	Deletes []string
}

// Append adds transactions to the account with the given number.
type Append struct {
	AccountNumber string
	Transactions  []transaction.Transaction
}

// Empty reports whether the change set has nothing to apply.
func (c *ChangeSet) Empty() bool {
	return len(c.Inserts) == 0 && len(c.Appends) == 0 && len(c.Deletes) == 0
}

// IAccountTable defines the interface for account storage operations.
// This abstraction allows swapping the in-memory implementation for a
// persistent one without changing callers.
type IAccountTable interface {
	Insert(ctx context.Context, account *Account) (*Account, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	FindByAccountNumber(ctx context.Context, accountNumber string) (*Account, error)
	List(ctx context.Context) ([]*Account, error)
	DeleteByAccountNumber(ctx context.Context, accountNumber string) (bool, error)
	Apply(ctx context.Context, changes *ChangeSet) error
}
