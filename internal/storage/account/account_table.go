package account

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/ledgererr"
)

type row struct {
	seq     uint64
	account *Account
}

// AccountsTable is an in-memory IAccountTable. Accounts are keyed by ID
// with a secondary index on account number.
type AccountsTable struct {
	mu       sync.RWMutex
	nextSeq  uint64
	byID     map[uuid.UUID]*row
	byNumber map[string]uuid.UUID
}

// Ensure AccountsTable implements IAccountTable at compile time.
var _ IAccountTable = (*AccountsTable)(nil)

// NewAccountsTable creates an empty AccountsTable.
func NewAccountsTable() *AccountsTable {
	return &AccountsTable{
		byID:     make(map[uuid.UUID]*row),
		byNumber: make(map[string]uuid.UUID),
	}
}

// Insert stores a copy of account, assigning an ID and creation time when
// absent, and returns the stored copy.
func (t *AccountsTable) Insert(_ context.Context, account *Account) (*Account, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	stored, err := t.checkInsert(account, nil)
	if err != nil {
		return nil, err
	}
	t.insertLocked(stored)
	return stored.clone(), nil
}

// FindByID retrieves an account by primary key.
func (t *AccountsTable) FindByID(_ context.Context, id uuid.UUID) (*Account, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	r, ok := t.byID[id]
	if !ok {
		return nil, ledgererr.New(ledgererr.KindAccountNotFound, id.String())
	}
	return r.account.clone(), nil
}

// FindByAccountNumber retrieves an account through the number index.
func (t *AccountsTable) FindByAccountNumber(_ context.Context, accountNumber string) (*Account, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	r, ok := t.lookupLocked(accountNumber)
	if !ok {
		return nil, ledgererr.New(ledgererr.KindAccountNotFound, accountNumber)
	}
	return r.account.clone(), nil
}

// List returns every account in creation order.
func (t *AccountsTable) List(_ context.Context) ([]*Account, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rows := make([]*row, 0, len(t.byID))
	for _, r := range t.byID {
		rows = append(rows, r)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	result := make([]*Account, len(rows))
	for i, r := range rows {
		result[i] = r.account.clone()
	}
	return result, nil
}

// DeleteByAccountNumber removes the account and its history. It reports
// whether an account was removed.
func (t *AccountsTable) DeleteByAccountNumber(_ context.Context, accountNumber string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.deleteLocked(accountNumber), nil
}

// Apply validates every part of changes and then applies all of it. If any
// part is invalid nothing is written.
func (t *AccountsTable) Apply(_ context.Context, changes *ChangeSet) error {
	if changes == nil || changes.Empty() {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	pendingNumbers := make(map[string]struct{}, len(changes.Inserts))
	inserts := make([]*Account, len(changes.Inserts))
	for i, account := range changes.Inserts {
		stored, err := t.checkInsert(account, pendingNumbers)
		if err != nil {
			return err
		}
		pendingNumbers[stored.AccountNumber] = struct{}{}
		inserts[i] = stored
	}
	for _, a := range changes.Appends {
		_, exists := t.byNumber[a.AccountNumber]
		_, pending := pendingNumbers[a.AccountNumber]
		if !exists && !pending {
			return ledgererr.New(ledgererr.KindAccountNotFound, a.AccountNumber)
		}
	}
	for _, accountNumber := range changes.Deletes {
		if _, exists := t.byNumber[accountNumber]; !exists {
			return ledgererr.New(ledgererr.KindAccountNotFound, accountNumber)
		}
	}

	for _, account := range inserts {
		t.insertLocked(account)
	}
	for _, a := range changes.Appends {
		r, _ := t.lookupLocked(a.AccountNumber)
		r.account.Transactions = append(r.account.Transactions, a.Transactions...)
	}
	for _, accountNumber := range changes.Deletes {
		t.deleteLocked(accountNumber)
	}
	return nil
}

// checkInsert returns the copy that would be stored for account.
func (t *AccountsTable) checkInsert(account *Account, pending map[string]struct{}) (*Account, error) {
	if account == nil || account.AccountNumber == "" {
		return nil, fmt.Errorf("insert account: account number required")
	}
	if _, taken := t.byNumber[account.AccountNumber]; taken {
		return nil, fmt.Errorf("insert account %s: %w", account.AccountNumber, ErrDuplicateAccountNumber)
	}
	if _, taken := pending[account.AccountNumber]; taken {
		return nil, fmt.Errorf("insert account %s: %w", account.AccountNumber, ErrDuplicateAccountNumber)
	}

	stored := account.clone()
	if stored.ID == uuid.Nil {
		stored.ID = uuid.Must(uuid.NewV4())
	}
	if _, taken := t.byID[stored.ID]; taken {
		return nil, fmt.Errorf("insert account %s: id %s already exists", stored.AccountNumber, stored.ID)
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	return stored, nil
}

func (t *AccountsTable) insertLocked(account *Account) {
	t.nextSeq++
	t.byID[account.ID] = &row{seq: t.nextSeq, account: account}
	t.byNumber[account.AccountNumber] = account.ID
}

func (t *AccountsTable) lookupLocked(accountNumber string) (*row, bool) {
	id, ok := t.byNumber[accountNumber]
	if !ok {
		return nil, false
	}
	r, ok := t.byID[id]
	return r, ok
}

func (t *AccountsTable) deleteLocked(accountNumber string) bool {
	id, ok := t.byNumber[accountNumber]
	if !ok {
		return false
	}
	delete(t.byNumber, accountNumber)
	delete(t.byID, id)
	return true
}
