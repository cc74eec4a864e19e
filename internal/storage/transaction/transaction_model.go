package transaction

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/currency"
)

// Type classifies a transaction. The type alone decides the sign of the
// stored amount.
type Type int8

const (
	TypeDeposit Type = iota
	TypeWithdrawal
	TypeTransferOut
	TypeTransferIn
)

var typeNames = [...]string{
	TypeDeposit:     "DEPOSIT",
	TypeWithdrawal:  "WITHDRAWAL",
	TypeTransferOut: "TRANSFER_OUT",
	TypeTransferIn:  "TRANSFER_IN",
}

func (t Type) String() string {
	if int(t) < 0 || int(t) >= len(typeNames) {
		return "UNKNOWN"
	}
	return typeNames[t]
}

// Outflow reports whether the type reduces the balance.
func (t Type) Outflow() bool {
	return t == TypeWithdrawal || t == TypeTransferOut
}

// Transaction is an immutable ledger entry. Amount is signed and always in
// the owning account's base currency, which is also Currency.
type Transaction struct {
	ID            uuid.UUID
	AccountNumber string
	Type          Type
	Amount        decimal.Decimal
	Currency      currency.Code
	Timestamp     time.Time

	// SourceAmount and SourceCurrency record the caller-supplied value
	// before conversion. SourceAmount is unsigned.
	SourceAmount   decimal.Decimal
	SourceCurrency currency.Code

	// Counterparty is the other account of a transfer leg.
	Counterparty string
}

// TransactionCreate is the input for New. Amount and SourceAmount are
// magnitudes; their sign is ignored.
type TransactionCreate struct {
	AccountNumber  string
	Type           Type
	Amount         decimal.Decimal
	Currency       currency.Code
	SourceAmount   decimal.Decimal
	SourceCurrency currency.Code
	Counterparty   string
	Timestamp      time.Time // defaults to now if zero
}

// New builds a Transaction with a fresh ID, signing the amount from its type.
// A zero SourceAmount/SourceCurrency defaults to Amount/Currency.
func New(create TransactionCreate) Transaction {
	amount := create.Amount.Abs()
	if create.Type.Outflow() {
		amount = amount.Neg()
	}

	sourceAmount := create.SourceAmount.Abs()
	sourceCurrency := create.SourceCurrency
	if sourceCurrency == "" {
		sourceAmount = create.Amount.Abs()
		sourceCurrency = create.Currency
	}

	timestamp := create.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}

	return Transaction{
		ID:             uuid.Must(uuid.NewV4()),
		AccountNumber:  create.AccountNumber,
		Type:           create.Type,
		Amount:         amount,
		Currency:       create.Currency,
		Timestamp:      timestamp,
		SourceAmount:   sourceAmount,
		SourceCurrency: sourceCurrency,
		Counterparty:   create.Counterparty,
	}
}

// Sum returns the balance derived from txns.
func Sum(txns []Transaction) decimal.Decimal {
	balance := decimal.Zero
	for _, txn := range txns {
		balance = balance.Add(txn.Amount)
	}
	return balance
}
