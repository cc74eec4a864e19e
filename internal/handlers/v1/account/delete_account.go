package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/response"
	"github.com/carson-networks/ledger-server/internal/logging"
)

// DeleteAccountInput is the Huma input for deleting an account.
type DeleteAccountInput struct {
	AccountNumber string `path:"accountNo" doc:"Account number"`
}

// DeleteAccountOutput is the Huma output for deleting an account. It carries
// no data.
type DeleteAccountOutput struct {
	Body response.Empty
}

// accountDeleter is the interface for deleting accounts.
type accountDeleter interface {
	DeleteAccount(ctx context.Context, accountNumber string) (bool, error)
}

// DeleteAccountHandler handles DELETE /accounts/{accountNo}.
type DeleteAccountHandler struct {
	AccountService accountDeleter
}

// NewDeleteAccountHandler creates a new DeleteAccountHandler.
func NewDeleteAccountHandler(svc accountDeleter) *DeleteAccountHandler {
	return &DeleteAccountHandler{AccountService: svc}
}

// Register registers the delete account endpoint with the Huma API.
func (h *DeleteAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-account",
		Method:      http.MethodDelete,
		Path:        "/accounts/{accountNo}",
		Summary:     "Delete an account",
		Description: "Deletes an account. Only accounts with a zero balance can be deleted.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *DeleteAccountHandler) handle(ctx context.Context, input *DeleteAccountInput) (*DeleteAccountOutput, error) {
	logData := logging.GetLogData(ctx)
	if logData != nil {
		logData.AddData("accountNumber", input.AccountNumber)
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("deleteAccountMs")
	}
	_, err := h.AccountService.DeleteAccount(ctx, input.AccountNumber)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, response.FromError(err)
	}

	return &DeleteAccountOutput{
		Body: response.Done("Account successfully deleted"),
	}, nil
}
