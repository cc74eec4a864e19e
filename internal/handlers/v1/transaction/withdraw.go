package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/response"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

// WithdrawInput is the Huma input for a withdrawal.
type WithdrawInput struct {
	AccountNumber string `path:"accountNo" doc:"Account number"`
	Amount        string `query:"amount" required:"true" doc:"Positive decimal amount in the account's base currency"`
}

// WithdrawOutput is the Huma output for a withdrawal.
type WithdrawOutput struct {
	Body response.Envelope[Transaction]
}

// withdrawer is the interface for withdrawing money.
type withdrawer interface {
	Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal) (*service.Transaction, error)
}

// WithdrawHandler handles POST /accounts/{accountNo}/withdrawal.
type WithdrawHandler struct {
	TransactionService withdrawer
}

// NewWithdrawHandler creates a new WithdrawHandler.
func NewWithdrawHandler(svc withdrawer) *WithdrawHandler {
	return &WithdrawHandler{TransactionService: svc}
}

// Register registers the withdrawal endpoint with the Huma API.
func (h *WithdrawHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "withdraw",
		Method:      http.MethodPost,
		Path:        "/accounts/{accountNo}/withdrawal",
		Summary:     "Withdraw money",
		Description: "Withdraws an amount in the account's base currency. The balance may not go negative.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *WithdrawHandler) handle(ctx context.Context, input *WithdrawInput) (*WithdrawOutput, error) {
	logData := logging.GetLogData(ctx)
	if logData != nil {
		logData.AddData("accountNumber", input.AccountNumber)
	}

	amount, err := parseAmount(input.Amount)
	if err != nil {
		return nil, response.FromError(err)
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("withdrawMs")
	}
	txn, err := h.TransactionService.Withdraw(ctx, input.AccountNumber, amount)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, response.FromError(err)
	}

	if logData != nil {
		logData.AddData("transactionID", txn.ID.String())
	}

	return &WithdrawOutput{
		Body: response.OK("Withdrawal successful", transactionFromService(*txn)),
	}, nil
}
