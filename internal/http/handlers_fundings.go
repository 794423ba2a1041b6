package httpx

import (
	"errors"
	"net/http"

	"github.com/roktoseba/ui-gateway/internal/backend"
)

// FundingHandlers provides HTTP handlers for funding operations.
type FundingHandlers struct {
	Backend *backend.Client
}

// PublicList handles the public funding listing.
// GET /api/fundings/public?page=&limit=.
func (h *FundingHandlers) PublicList(w http.ResponseWriter, r *http.Request) {
	page, err := h.Backend.PublicFundings(r.Context(), listParamsFrom(r))
	if err != nil {
		WriteBackendError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, page)
}

// Create handles recording a funding contribution by the signed-in user.
// POST /api/fundings.
func (h *FundingHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Amount float64 `json:"amount"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}
	if body.Amount <= 0 {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_amount", Err: errors.New("amount must be positive")})
		return
	}

	client, ok := authorizedFor(w, r, h.Backend)
	if !ok {
		return
	}

	funding, err := client.CreateFunding(r.Context(), body.Amount)
	if err != nil {
		WriteBackendError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, funding)
}
