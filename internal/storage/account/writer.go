package account

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/ledgererr"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// Writer stages inserts, appends and deletes into a ChangeSet. Reads made
// through the Writer see the staged changes on top of the committed state.
// A Writer belongs to a single action and is not safe for concurrent use.
type Writer struct {
	changes ChangeSet
	Reader
}

func NewWriter(table IAccountTable) *Writer {
	return &Writer{
		Reader: Reader{
			table: table,
		},
	}
}

// FindByAccountNumberForUpdate returns the account as this writer would
// leave it. Callers must hold the account's lock.
func (w *Writer) FindByAccountNumberForUpdate(ctx context.Context, accountNumber string) (*Account, error) {
	if w.deleted(accountNumber) {
		return nil, ledgererr.New(ledgererr.KindAccountNotFound, accountNumber)
	}

	var account *Account
	for _, pending := range w.changes.Inserts {
		if pending.AccountNumber == accountNumber {
			account = pending.clone()
			break
		}
	}
	if account == nil {
		var err error
		account, err = w.table.FindByAccountNumber(ctx, accountNumber)
		if err != nil {
			return nil, err
		}
	}

	for _, a := range w.changes.Appends {
		if a.AccountNumber == accountNumber {
			account.Transactions = append(account.Transactions, a.Transactions...)
		}
	}
	return account, nil
}

// Exists reports whether accountNumber is taken, committed or staged.
func (w *Writer) Exists(ctx context.Context, accountNumber string) (bool, error) {
	_, err := w.FindByAccountNumberForUpdate(ctx, accountNumber)
	if ledgererr.Is(err, ledgererr.KindAccountNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Create stages a new account with an empty history and returns it.
func (w *Writer) Create(_ context.Context, accountNumber string, account Account) *Account {
	account.AccountNumber = accountNumber
	if account.ID == uuid.Nil {
		account.ID = uuid.Must(uuid.NewV4())
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}
	account.Transactions = nil
	w.changes.Inserts = append(w.changes.Inserts, &account)
	return account.clone()
}

// Append stages transactions for the account.
func (w *Writer) Append(_ context.Context, accountNumber string, txns ...transaction.Transaction) {
	if len(txns) == 0 {
		return
	}
	staged := make([]transaction.Transaction, len(txns))
	copy(staged, txns)
	w.changes.Appends = append(w.changes.Appends, Append{AccountNumber: accountNumber, Transactions: staged})
}

// Delete stages removal of the account.
func (w *Writer) Delete(_ context.Context, accountNumber string) {
	w.changes.Deletes = append(w.changes.Deletes, accountNumber)
}

// Changes returns the staged change set.
func (w *Writer) Changes() *ChangeSet {
	return &w.changes
}

func (w *Writer) deleted(accountNumber string) bool {
	for _, n := range w.changes.Deletes {
		if n == accountNumber {
			return true
		}
	}
	return false
}
