package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/response"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

// ListAccountsOutput is the Huma output for listing accounts.
type ListAccountsOutput struct {
	Body response.Envelope[[]AccountBalance]
}

// accountLister is the interface for listing accounts.
type accountLister interface {
	ListAccounts(ctx context.Context) ([]service.AccountBalance, error)
}

// ListAccountsHandler handles GET /accounts.
type ListAccountsHandler struct {
	AccountService accountLister
}

// NewListAccountsHandler creates a new ListAccountsHandler.
func NewListAccountsHandler(svc accountLister) *ListAccountsHandler {
	return &ListAccountsHandler{AccountService: svc}
}

// Register registers the list accounts endpoint with the Huma API.
func (h *ListAccountsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-accounts",
		Method:      http.MethodGet,
		Path:        "/accounts",
		Summary:     "List accounts",
		Description: "Returns every account and its balance, oldest first.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *ListAccountsHandler) handle(ctx context.Context, _ *struct{}) (*ListAccountsOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listAccountsMs")
	}
	balances, err := h.AccountService.ListAccounts(ctx)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, response.FromError(err)
	}

	if logData != nil {
		logData.AddData("accountCount", len(balances))
	}

	accounts := make([]AccountBalance, len(balances))
	for i, b := range balances {
		accounts[i] = balanceFromService(b)
	}

	return &ListAccountsOutput{
		Body: response.OK("Accounts successfully retrieved", accounts),
	}, nil
}
