package storage

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/storage/account"
)

// Storage bundles the accounts table with the per-account locks that
// writers take.
type Storage struct {
	Accounts account.IAccountTable
	locks    *account.Locker
}

// NewStorage returns an in-memory Storage.
func NewStorage() *Storage {
	return NewStorageWithTable(account.NewAccountsTable())
}

// NewStorageWithTable wraps an existing table implementation.
func NewStorageWithTable(table account.IAccountTable) *Storage {
	return &Storage{
		Accounts: table,
		locks:    account.NewLocker(),
	}
}

// Read returns a Reader over committed state.
func (s *Storage) Read() *Reader {
	return NewReader(s.Accounts)
}

// Write locks the given accounts in ascending order and returns a Writer.
// The locks are held until Commit or Rollback.
func (s *Storage) Write(ctx context.Context, accountNumbers ...string) (*Writer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	unlock := s.locks.Lock(accountNumbers...)
	return NewWriter(s.Accounts, unlock), nil
}
