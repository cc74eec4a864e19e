package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/currency"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/response"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

// DepositInput is the Huma input for a deposit.
type DepositInput struct {
	AccountNumber string `path:"accountNo" doc:"Account number"`
	Amount        string `query:"amount" required:"true" doc:"Positive decimal amount, e.g. 12.50"`
	Currency      string `query:"currency" required:"true" doc:"ISO 4217 currency of the amount"`
}

// DepositOutput is the Huma output for a deposit.
type DepositOutput struct {
	Body response.Envelope[Transaction]
}

// depositor is the interface for depositing money.
type depositor interface {
	Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal, ccy currency.Code) (*service.Transaction, error)
}

// DepositHandler handles POST /accounts/{accountNo}/deposit.
type DepositHandler struct {
	TransactionService depositor
}

// NewDepositHandler creates a new DepositHandler.
func NewDepositHandler(svc depositor) *DepositHandler {
	return &DepositHandler{TransactionService: svc}
}

// Register registers the deposit endpoint with the Huma API.
func (h *DepositHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "deposit",
		Method:      http.MethodPost,
		Path:        "/accounts/{accountNo}/deposit",
		Summary:     "Deposit money",
		Description: "Deposits an amount, converted to the account's base currency.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseDepositInput(input *DepositInput) (decimal.Decimal, currency.Code, error) {
	amount, err := parseAmount(input.Amount)
	if err != nil {
		return decimal.Decimal{}, "", err
	}
	ccy, err := currency.ParseCode(input.Currency)
	if err != nil {
		return decimal.Decimal{}, "", err
	}
	return amount, ccy, nil
}

func (h *DepositHandler) handle(ctx context.Context, input *DepositInput) (*DepositOutput, error) {
	logData := logging.GetLogData(ctx)
	if logData != nil {
		logData.AddData("accountNumber", input.AccountNumber)
	}

	amount, ccy, err := parseDepositInput(input)
	if err != nil {
		return nil, response.FromError(err)
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("depositMs")
	}
	txn, err := h.TransactionService.Deposit(ctx, input.AccountNumber, amount, ccy)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, response.FromError(err)
	}

	if logData != nil {
		logData.AddData("transactionID", txn.ID.String())
	}

	return &DepositOutput{
		Body: response.OK("Deposit successful", transactionFromService(*txn)),
	}, nil
}
