package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/currency"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// TransactionType represents a transaction type in the service layer.
type TransactionType string

const (
	TransactionTypeDeposit     TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal  TransactionType = "WITHDRAWAL"
	TransactionTypeTransferOut TransactionType = "TRANSFER_OUT"
	TransactionTypeTransferIn  TransactionType = "TRANSFER_IN"
)

// Transaction represents a ledger entry in the service layer. Amount is
// signed and denominated in Currency, the account's base currency.
type Transaction struct {
	ID             uuid.UUID
	AccountNumber  string
	Type           TransactionType
	Amount         decimal.Decimal
	Currency       currency.Code
	SourceAmount   decimal.Decimal
	SourceCurrency currency.Code
	Counterparty   string
	Timestamp      time.Time
}

// TransferResult holds both legs of a completed transfer.
type TransferResult struct {
	Out Transaction
	In  Transaction
}

func transactionTypeFromStorage(t transaction.Type) TransactionType {
	return TransactionType(t.String())
}

func transactionFromStorage(txn transaction.Transaction) Transaction {
	return Transaction{
		ID:             txn.ID,
		AccountNumber:  txn.AccountNumber,
		Type:           transactionTypeFromStorage(txn.Type),
		Amount:         txn.Amount,
		Currency:       txn.Currency,
		SourceAmount:   txn.SourceAmount,
		SourceCurrency: txn.SourceCurrency,
		Counterparty:   txn.Counterparty,
		Timestamp:      txn.Timestamp,
	}
}

func transactionsFromStorage(txns []transaction.Transaction) []Transaction {
	converted := make([]Transaction, len(txns))
	for i, txn := range txns {
		converted[i] = transactionFromStorage(txn)
	}
	return converted
}
