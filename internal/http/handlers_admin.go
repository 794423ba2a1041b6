package httpx

import (
	"errors"
	"net/http"

	"github.com/roktoseba/ui-gateway/internal/backend"
	domainauth "github.com/roktoseba/ui-gateway/internal/domain/auth"
)

// AdminHandlers provides HTTP handlers for admin-only operations. Route
// guards enforce the admin role before any of these run.
type AdminHandlers struct {
	Backend *backend.Client
}

// Users handles the admin user listing.
// GET /api/admin/users?page=&limit=&status=.
func (h *AdminHandlers) Users(w http.ResponseWriter, r *http.Request) {
	client, ok := authorizedFor(w, r, h.Backend)
	if !ok {
		return
	}

	page, err := client.AdminUsers(r.Context(), listParamsFrom(r))
	if err != nil {
		WriteBackendError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, page)
}

// SetUserRole handles promoting or demoting a user.
// PATCH /api/admin/users/{id}/role.
func (h *AdminHandlers) SetUserRole(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "missing_id", Err: errors.New("user ID is required")})
		return
	}

	var body struct {
		Role string `json:"role"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}
	role := domainauth.Role(body.Role)
	if role != domainauth.RoleDonor && role != domainauth.RoleVolunteer && role != domainauth.RoleAdmin {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_role", Err: errors.New("role must be one of: donor, volunteer, admin")})
		return
	}

	client, ok := authorizedFor(w, r, h.Backend)
	if !ok {
		return
	}

	if err := client.SetUserRole(r.Context(), id, role); err != nil {
		WriteBackendError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"role": body.Role})
}

// SetUserStatus handles blocking or unblocking a user.
// PATCH /api/admin/users/{id}/status.
func (h *AdminHandlers) SetUserStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "missing_id", Err: errors.New("user ID is required")})
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}
	if body.Status != domainauth.StatusActive && body.Status != domainauth.StatusBlocked {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_status", Err: errors.New("status must be one of: active, blocked")})
		return
	}

	client, ok := authorizedFor(w, r, h.Backend)
	if !ok {
		return
	}

	if err := client.SetUserStatus(r.Context(), id, body.Status); err != nil {
		WriteBackendError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": body.Status})
}

// Fundings handles the admin funding listing.
// GET /api/admin/fundings?page=&limit=&status=.
func (h *AdminHandlers) Fundings(w http.ResponseWriter, r *http.Request) {
	client, ok := authorizedFor(w, r, h.Backend)
	if !ok {
		return
	}

	page, err := client.AdminFundings(r.Context(), listParamsFrom(r))
	if err != nil {
		WriteBackendError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, page)
}

// SetFundingStatus handles approving or rejecting a funding record.
// PATCH /api/admin/fundings/{id}/status.
func (h *AdminHandlers) SetFundingStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "missing_id", Err: errors.New("funding ID is required")})
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}
	if body.Status == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_status", Err: errors.New("status cannot be empty")})
		return
	}

	client, ok := authorizedFor(w, r, h.Backend)
	if !ok {
		return
	}

	if err := client.SetFundingStatus(r.Context(), id, body.Status); err != nil {
		WriteBackendError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": body.Status})
}

// DonationRequests handles the admin listing of every donation request.
// GET /api/admin/donation-requests?page=&limit=&status=.
func (h *AdminHandlers) DonationRequests(w http.ResponseWriter, r *http.Request) {
	client, ok := authorizedFor(w, r, h.Backend)
	if !ok {
		return
	}

	page, err := client.AdminDonationRequests(r.Context(), listParamsFrom(r))
	if err != nil {
		WriteBackendError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, page)
}

// Stats handles the admin dashboard summary.
// GET /api/admin/stats.
func (h *AdminHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	client, ok := authorizedFor(w, r, h.Backend)
	if !ok {
		return
	}

	stats, err := client.StatsOverview(r.Context())
	if err != nil {
		WriteBackendError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}
