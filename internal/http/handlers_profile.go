package httpx

import (
	"net/http"

	"github.com/roktoseba/ui-gateway/internal/backend"
)

// ProfileHandlers provides HTTP handlers for the signed-in user's profile.
type ProfileHandlers struct {
	Backend *backend.Client
}

// Me handles fetching the signed-in user's backend record.
// GET /api/users/me.
func (h *ProfileHandlers) Me(w http.ResponseWriter, r *http.Request) {
	client, ok := authorizedFor(w, r, h.Backend)
	if !ok {
		return
	}

	record, err := client.WhoAmI(r.Context())
	if err != nil {
		WriteBackendError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, record)
}

// Update handles partial edits to the signed-in user's profile.
// PATCH /api/users/me.
func (h *ProfileHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var patch backend.ProfilePatch
	if !DecodeJSON(w, r, &patch) {
		return
	}

	client, ok := authorizedFor(w, r, h.Backend)
	if !ok {
		return
	}

	record, err := client.UpdateProfile(r.Context(), patch)
	if err != nil {
		WriteBackendError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, record)
}
