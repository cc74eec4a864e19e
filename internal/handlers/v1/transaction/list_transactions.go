package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/response"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

// ListTransactionsInput is the Huma input for an account's history.
type ListTransactionsInput struct {
	AccountNumber string `path:"accountNo" doc:"Account number"`
}

// ListTransactionsOutput is the Huma output for an account's history.
type ListTransactionsOutput struct {
	Body response.Envelope[[]Transaction]
}

// historyReader is the interface for reading transaction history.
type historyReader interface {
	GetTransactionHistory(ctx context.Context, accountNumber string) ([]service.Transaction, error)
}

// ListTransactionsHandler handles GET /accounts/{accountNo}/transactions.
type ListTransactionsHandler struct {
	AccountService historyReader
}

// NewListTransactionsHandler creates a new ListTransactionsHandler.
func NewListTransactionsHandler(svc historyReader) *ListTransactionsHandler {
	return &ListTransactionsHandler{AccountService: svc}
}

// Register registers the transaction history endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodGet,
		Path:        "/accounts/{accountNo}/transactions",
		Summary:     "List transactions",
		Description: "Returns the account's full transaction history in the order it was recorded.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		logData.AddData("accountNumber", input.AccountNumber)
		stopTimer = logData.AddTiming("listTransactionsMs")
	}
	history, err := h.AccountService.GetTransactionHistory(ctx, input.AccountNumber)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, response.FromError(err)
	}

	if logData != nil {
		logData.AddData("transactionCount", len(history))
	}

	txns := make([]Transaction, len(history))
	for i, txn := range history {
		txns[i] = transactionFromService(txn)
	}

	return &ListTransactionsOutput{
		Body: response.OK("Transaction history successfully retrieved", txns),
	}, nil
}
