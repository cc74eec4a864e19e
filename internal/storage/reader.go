package storage

import (
	"github.com/carson-networks/ledger-server/internal/storage/account"
)

type Reader struct {
	Accounts *account.Reader
}

func NewReader(table account.IAccountTable) *Reader {
	return &Reader{
		Accounts: account.NewReader(table),
	}
}
