package storage

import (
	"context"
	"errors"

	"github.com/carson-networks/ledger-server/internal/storage/account"
)

// ErrWriterClosed is returned when a Writer is used after Commit or Rollback.
var ErrWriterClosed = errors.New("storage: writer already committed or rolled back")

type Writer struct {
	table   account.IAccountTable
	unlock  func()
	closed  bool
	Account *account.Writer
}

func NewWriter(table account.IAccountTable, unlock func()) *Writer {
	return &Writer{
		table:   table,
		unlock:  unlock,
		Account: account.NewWriter(table),
	}
}

// Commit applies every staged change atomically and releases the locks.
func (w *Writer) Commit(ctx context.Context) error {
	if w.closed {
		return ErrWriterClosed
	}
	w.closed = true
	defer w.unlock()

	return w.table.Apply(ctx, w.Account.Changes())
}

// Rollback discards staged changes and releases the locks.
func (w *Writer) Rollback() error {
	if w.closed {
		return ErrWriterClosed
	}
	w.closed = true
	w.unlock()
	return nil
}
