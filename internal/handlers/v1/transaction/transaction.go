package transaction

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledgererr"
	"github.com/carson-networks/ledger-server/internal/service"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID             string `json:"id" doc:"Transaction UUID"`
	AccountNumber  string `json:"accountNo" doc:"Account the transaction belongs to"`
	Type           string `json:"type" enum:"DEPOSIT,WITHDRAWAL,TRANSFER_OUT,TRANSFER_IN" doc:"Transaction type"`
	Amount         string `json:"amount" doc:"Signed decimal amount in the account's base currency"`
	Currency       string `json:"currency" doc:"Account base currency"`
	SourceAmount   string `json:"sourceAmount" doc:"Amount as supplied before conversion"`
	SourceCurrency string `json:"sourceCurrency" doc:"Currency the amount was supplied in"`
	Counterparty   string `json:"counterparty,omitempty" doc:"Other account of a transfer"`
	Timestamp      string `json:"timestamp" doc:"RFC3339 time the transaction was recorded"`
}

func transactionFromService(txn service.Transaction) Transaction {
	return Transaction{
		ID:             txn.ID.String(),
		AccountNumber:  txn.AccountNumber,
		Type:           string(txn.Type),
		Amount:         txn.Amount.String(),
		Currency:       txn.Currency.String(),
		SourceAmount:   txn.SourceAmount.String(),
		SourceCurrency: txn.SourceCurrency.String(),
		Counterparty:   txn.Counterparty,
		Timestamp:      txn.Timestamp.Format(time.RFC3339Nano),
	}
}

// parseAmount parses a decimal query parameter. Anything that is not a
// positive decimal within the ledger's precision is an invalid amount.
func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, ledgererr.New(ledgererr.KindInvalidAmount, raw)
	}
	if err := service.CheckAmount(amount); err != nil {
		return decimal.Decimal{}, ledgererr.New(ledgererr.KindInvalidAmount, raw)
	}
	return amount, nil
}
