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

// TransferInput is the Huma input for a transfer.
type TransferInput struct {
	FromAccountNumber string `query:"fromAccount" required:"true" doc:"Sending account number"`
	ToAccountNumber   string `query:"toAccount" required:"true" doc:"Receiving account number"`
	Amount            string `query:"amount" required:"true" doc:"Positive decimal amount in the sender's base currency"`
}

// TransferOutput is the Huma output for a transfer. Data holds the
// outgoing leg followed by the incoming leg.
type TransferOutput struct {
	Body response.Envelope[[]Transaction]
}

// transferrer is the interface for moving money between accounts.
type transferrer interface {
	Transfer(ctx context.Context, fromAccountNumber, toAccountNumber string, amount decimal.Decimal) (*service.TransferResult, error)
}

// TransferHandler handles POST /transfer.
type TransferHandler struct {
	TransactionService transferrer
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(svc transferrer) *TransferHandler {
	return &TransferHandler{TransactionService: svc}
}

// Register registers the transfer endpoint with the Huma API.
func (h *TransferHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "transfer",
		Method:      http.MethodPost,
		Path:        "/transfer",
		Summary:     "Transfer money",
		Description: "Moves an amount between two accounts, converting into the receiver's base currency.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *TransferHandler) handle(ctx context.Context, input *TransferInput) (*TransferOutput, error) {
	logData := logging.GetLogData(ctx)
	if logData != nil {
		logData.AddData("fromAccountNumber", input.FromAccountNumber)
		logData.AddData("toAccountNumber", input.ToAccountNumber)
	}

	amount, err := parseAmount(input.Amount)
	if err != nil {
		return nil, response.FromError(err)
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("transferMs")
	}
	result, err := h.TransactionService.Transfer(ctx, input.FromAccountNumber, input.ToAccountNumber, amount)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, response.FromError(err)
	}

	return &TransferOutput{
		Body: response.OK("Transfer successful", []Transaction{
			transactionFromService(result.Out),
			transactionFromService(result.In),
		}),
	}, nil
}
