package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/currency"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/response"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

// OpenAccountInput is the Huma input for opening an account.
type OpenAccountInput struct {
	BaseCurrency string `query:"baseCcy" required:"true" doc:"ISO 4217 base currency, e.g. GBP"`
}

// OpenAccountOutput is the Huma output for opening an account.
type OpenAccountOutput struct {
	Body response.Envelope[Account]
}

// accountOpener is the interface for opening accounts.
type accountOpener interface {
	OpenAccount(ctx context.Context, baseCurrency currency.Code) (*service.Account, error)
}

// OpenAccountHandler handles POST /accounts.
type OpenAccountHandler struct {
	AccountService accountOpener
}

// NewOpenAccountHandler creates a new OpenAccountHandler.
func NewOpenAccountHandler(svc accountOpener) *OpenAccountHandler {
	return &OpenAccountHandler{AccountService: svc}
}

// Register registers the open account endpoint with the Huma API.
func (h *OpenAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "open-account",
		Method:      http.MethodPost,
		Path:        "/accounts",
		Summary:     "Open an account",
		Description: "Opens an empty account in the given base currency.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *OpenAccountHandler) handle(ctx context.Context, input *OpenAccountInput) (*OpenAccountOutput, error) {
	logData := logging.GetLogData(ctx)

	baseCurrency, err := currency.ParseCode(input.BaseCurrency)
	if err != nil {
		return nil, response.FromError(err)
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("openAccountMs")
	}
	acc, err := h.AccountService.OpenAccount(ctx, baseCurrency)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, response.FromError(err)
	}

	if logData != nil {
		logData.AddData("accountNumber", acc.AccountNumber)
	}

	return &OpenAccountOutput{
		Body: response.OK("Account successfully created", accountFromService(acc)),
	}, nil
}
