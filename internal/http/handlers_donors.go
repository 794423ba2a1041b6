package httpx

import (
	"net/http"

	"github.com/roktoseba/ui-gateway/internal/backend"
)

// DonorHandlers provides HTTP handlers for the public donor search.
type DonorHandlers struct {
	Backend *backend.Client
}

// Search handles the public donor search.
// GET /api/donors/search?bloodGroup=&district=&upazila=.
func (h *DonorHandlers) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := backend.DonorFilter{
		BloodGroup: q.Get("bloodGroup"),
		District:   q.Get("district"),
		Upazila:    q.Get("upazila"),
	}

	donors, err := h.Backend.SearchDonors(r.Context(), filter)
	if err != nil {
		WriteBackendError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, donors)
}
