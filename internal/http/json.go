package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"

	apperrors "github.com/roktoseba/ui-gateway/internal/errors"
)

// DecodeJSON decodes JSON from the request body into the destination and handles errors.
// Returns true if successful, false if there was an error (error response already written).
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_json", Err: err})
		return false
	}

	return true
}

// WriteJSON writes a JSON response with the given status code and data.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		// Response writer errors (e.g., client disconnect) can't be recovered from here.
		return
	}
}

// ErrorParams groups parameters for WriteError to adhere to the ≤3 params guideline.
type ErrorParams struct {
	Code    int
	ErrCode string
	Err     error
}

// WriteError writes a JSON error response using ErrorParams.
func WriteError(w http.ResponseWriter, p ErrorParams) {
	WriteJSON(w, p.Code, map[string]string{"error": p.ErrCode, "message": p.Err.Error()})
}

// WriteBackendError maps an error from the backend client onto an HTTP
// response, preserving the backend status where one was recorded.
func WriteBackendError(w http.ResponseWriter, err error) {
	code := http.StatusBadGateway
	errCode := "backend_error"

	switch apperrors.CodeOf(err) {
	case apperrors.ErrCodeUnauthorized:
		code = http.StatusUnauthorized
		errCode = "authentication_required"
	case apperrors.ErrCodeForbidden:
		code = http.StatusForbidden
		errCode = "insufficient_permissions"
	case apperrors.ErrCodeNotFound:
		code = http.StatusNotFound
		errCode = "not_found"
	case apperrors.ErrCodeValidation:
		code = http.StatusBadRequest
		errCode = "invalid_request"
	case apperrors.ErrCodeMalformed:
		code = http.StatusBadGateway
		errCode = "malformed_response"
	case apperrors.ErrCodeTransport:
		code = http.StatusBadGateway
		errCode = "backend_unreachable"
	}

	WriteError(w, ErrorParams{Code: code, ErrCode: errCode, Err: err})
}
