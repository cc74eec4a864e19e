package rates

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/currency"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/response"
)

// Rate is the API response model for a directed conversion pair.
type Rate struct {
	From string `json:"from" doc:"Source currency"`
	To   string `json:"to" doc:"Target currency"`
	Rate string `json:"rate" doc:"Decimal multiplier applied to the source amount"`
}

// ListRatesOutput is the Huma output for listing conversion rates.
type ListRatesOutput struct {
	Body response.Envelope[[]Rate]
}

// rateLister is the interface for reading the conversion table.
type rateLister interface {
	Pairs() []currency.Pair
}

// ListRatesHandler handles GET /rates.
type ListRatesHandler struct {
	Rates rateLister
}

// NewListRatesHandler creates a new ListRatesHandler.
func NewListRatesHandler(rates rateLister) *ListRatesHandler {
	return &ListRatesHandler{Rates: rates}
}

// Register registers the rates endpoint with the Huma API.
func (h *ListRatesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-rates",
		Method:      http.MethodGet,
		Path:        "/rates",
		Summary:     "List conversion rates",
		Description: "Returns every directed conversion pair. Rates are not inverses of each other.",
		Tags:        []string{"Rates"},
	}, h.handle)
}

func (h *ListRatesHandler) handle(_ context.Context, _ *struct{}) (*ListRatesOutput, error) {
	pairs := h.Rates.Pairs()
	rates := make([]Rate, len(pairs))
	for i, p := range pairs {
		rates[i] = Rate{
			From: p.From.String(),
			To:   p.To.String(),
			Rate: p.Rate.String(),
		}
	}

	return &ListRatesOutput{
		Body: response.OK("Rates successfully retrieved", rates),
	}, nil
}
