// Package httpx provides HTTP handlers and utilities for the ui-gateway API.
package httpx

import (
	"errors"
	"net/http"

	"github.com/roktoseba/ui-gateway/internal/backend"
)

// DonationHandlers provides HTTP handlers for donation request operations,
// proxied to the donor backend.
type DonationHandlers struct {
	Backend *backend.Client
}

// PublicList handles the public listing of pending donation requests.
// GET /api/donation-requests/public?page=&limit=.
func (h *DonationHandlers) PublicList(w http.ResponseWriter, r *http.Request) {
	page, err := h.Backend.PublicDonationRequests(r.Context(), listParamsFrom(r))
	if err != nil {
		WriteBackendError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, page)
}

// Get handles fetching one donation request by ID.
// GET /api/donation-requests/{id}.
func (h *DonationHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "missing_id", Err: errors.New("request ID is required")})
		return
	}

	client, ok := authorizedFor(w, r, h.Backend)
	if !ok {
		return
	}

	req, err := client.DonationRequest(r.Context(), id)
	if err != nil {
		WriteBackendError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, req)
}

// Create handles creating a donation request on behalf of the signed-in donor.
// POST /api/donation-requests.
func (h *DonationHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req backend.CreateDonationRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	client, ok := authorizedFor(w, r, h.Backend)
	if !ok {
		return
	}

	created, err := client.CreateDonationRequest(r.Context(), req)
	if err != nil {
		WriteBackendError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

// MyRecent handles the signed-in donor's three most recent requests.
// GET /api/donation-requests/my/recent.
func (h *DonationHandlers) MyRecent(w http.ResponseWriter, r *http.Request) {
	client, ok := authorizedFor(w, r, h.Backend)
	if !ok {
		return
	}

	rows, err := client.MyRecentDonationRequests(r.Context())
	if err != nil {
		WriteBackendError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, rows)
}

// All handles the volunteer/admin listing of every donation request.
// GET /api/donation-requests/all?page=&limit=&status=.
func (h *DonationHandlers) All(w http.ResponseWriter, r *http.Request) {
	client, ok := authorizedFor(w, r, h.Backend)
	if !ok {
		return
	}

	page, err := client.AllDonationRequests(r.Context(), listParamsFrom(r))
	if err != nil {
		WriteBackendError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, page)
}

// SetStatus handles a donation request status change.
// PATCH /api/donation-requests/{id}/status.
func (h *DonationHandlers) SetStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "missing_id", Err: errors.New("request ID is required")})
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}
	if !validRequestStatus(body.Status) {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_status", Err: errors.New("status must be one of: pending, inprogress, done, canceled")})
		return
	}

	client, ok := authorizedFor(w, r, h.Backend)
	if !ok {
		return
	}

	if err := client.SetDonationRequestStatus(r.Context(), id, body.Status); err != nil {
		WriteBackendError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": body.Status})
}

// Confirm handles a donor confirming they will donate: the request moves to
// inprogress with the caller recorded as the donor.
// PATCH /api/donation-requests/{id}/confirm.
func (h *DonationHandlers) Confirm(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "missing_id", Err: errors.New("request ID is required")})
		return
	}

	client, ok := authorizedFor(w, r, h.Backend)
	if !ok {
		return
	}

	if err := client.ConfirmDonation(r.Context(), id); err != nil {
		WriteBackendError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": backend.RequestStatusInProgress})
}

func validRequestStatus(s string) bool {
	switch s {
	case backend.RequestStatusPending, backend.RequestStatusInProgress,
		backend.RequestStatusDone, backend.RequestStatusCanceled:
		return true
	default:
		return false
	}
}
