package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/response"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

// GetBalanceInput is the Huma input for reading an account balance.
type GetBalanceInput struct {
	AccountNumber string `path:"accountNo" doc:"Account number"`
}

// GetBalanceOutput is the Huma output for reading an account balance.
type GetBalanceOutput struct {
	Body response.Envelope[AccountBalance]
}

// balanceReader is the interface for reading balances.
type balanceReader interface {
	GetBalance(ctx context.Context, accountNumber string) (*service.AccountBalance, error)
}

// GetBalanceHandler handles GET /accounts/{accountNo}/balance.
type GetBalanceHandler struct {
	AccountService balanceReader
}

// NewGetBalanceHandler creates a new GetBalanceHandler.
func NewGetBalanceHandler(svc balanceReader) *GetBalanceHandler {
	return &GetBalanceHandler{AccountService: svc}
}

// Register registers the balance endpoint with the Huma API.
func (h *GetBalanceHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-balance",
		Method:      http.MethodGet,
		Path:        "/accounts/{accountNo}/balance",
		Summary:     "Get account balance",
		Description: "Returns the balance derived from the account's transactions.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *GetBalanceHandler) handle(ctx context.Context, input *GetBalanceInput) (*GetBalanceOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		logData.AddData("accountNumber", input.AccountNumber)
		stopTimer = logData.AddTiming("getBalanceMs")
	}
	balance, err := h.AccountService.GetBalance(ctx, input.AccountNumber)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, response.FromError(err)
	}

	return &GetBalanceOutput{
		Body: response.OK("Account balance successfully retrieved", balanceFromService(*balance)),
	}, nil
}
