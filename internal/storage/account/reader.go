package account

import (
	"context"

	"github.com/gofrs/uuid/v5"
)

// Reader exposes the committed state of the accounts table.
type Reader struct {
	table IAccountTable
}

func NewReader(table IAccountTable) *Reader {
	return &Reader{table: table}
}

func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	return r.table.FindByID(ctx, id)
}

func (r *Reader) FindByAccountNumber(ctx context.Context, accountNumber string) (*Account, error) {
	return r.table.FindByAccountNumber(ctx, accountNumber)
}

func (r *Reader) List(ctx context.Context) ([]*Account, error) {
	return r.table.List(ctx)
}
