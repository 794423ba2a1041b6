package httpx

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/roktoseba/ui-gateway/internal/backend"
)

// parseIntQuery returns the integer value of a query param or a default.
// It is tolerant of missing/invalid values.
func parseIntQuery(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

// listParamsFrom parses common pagination params and clamps to sane bounds.
func listParamsFrom(r *http.Request) backend.ListParams {
	const (
		defaultLimit = 10
		maxLimit     = 100
	)

	page := parseIntQuery(r, "page", 1)
	if page < 1 {
		page = 1
	}
	limit := parseIntQuery(r, "limit", defaultLimit)
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return backend.ListParams{
		Page:   page,
		Limit:  limit,
		Status: r.URL.Query().Get("status"),
	}
}

// authorizedFor returns a backend client bound to the request session's token
// slot. Guards run before any handler calling this; a request that slipped
// through without a session gets a 401.
func authorizedFor(w http.ResponseWriter, r *http.Request, base *backend.Client) (*backend.AuthorizedClient, bool) {
	rs, ok := GetSessionFromContext(r.Context())
	if !ok || rs.Runtime == nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return nil, false
	}
	return base.Authorized(rs.Runtime.Tokens), true
}
