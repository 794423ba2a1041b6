package backend

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	domainauth "github.com/roktoseba/ui-gateway/internal/domain/auth"
)

// Admin-scoped endpoints. The backend enforces the admin role server-side;
// the gateway's guards only decide what to render.

// AdminUsers lists user records. GET /admin/users.
func (a *AuthorizedClient) AdminUsers(ctx context.Context, p ListParams) (Page[domainauth.UserRecord], error) {
	var raw rawPayload
	if err := a.client.do(ctx, request{method: http.MethodGet, path: "/admin/users", query: p.query()}, &raw); err != nil {
		return Page[domainauth.UserRecord]{}, err
	}
	return decodePage[domainauth.UserRecord](raw)
}

// SetUserRole updates a user's role. PATCH /admin/users/{id}/role.
func (a *AuthorizedClient) SetUserRole(ctx context.Context, id string, role domainauth.Role) error {
	if id == "" {
		return errors.New("user ID is required")
	}
	return a.client.do(ctx, request{
		method: http.MethodPatch,
		path:   "/admin/users/" + url.PathEscape(id) + "/role",
		body:   map[string]string{"role": string(role)},
	}, nil)
}

// SetUserStatus updates a user's status (active/blocked).
// PATCH /admin/users/{id}/status.
func (a *AuthorizedClient) SetUserStatus(ctx context.Context, id, status string) error {
	if id == "" {
		return errors.New("user ID is required")
	}
	return a.client.do(ctx, request{
		method: http.MethodPatch,
		path:   "/admin/users/" + url.PathEscape(id) + "/status",
		body:   map[string]string{"status": status},
	}, nil)
}

// AdminFundings lists funding records. GET /admin/fundings.
func (a *AuthorizedClient) AdminFundings(ctx context.Context, p ListParams) (Page[Funding], error) {
	var raw rawPayload
	if err := a.client.do(ctx, request{method: http.MethodGet, path: "/admin/fundings", query: p.query()}, &raw); err != nil {
		return Page[Funding]{}, err
	}
	return decodePage[Funding](raw)
}

// SetFundingStatus updates a funding record's status.
// PATCH /admin/fundings/{id}/status.
func (a *AuthorizedClient) SetFundingStatus(ctx context.Context, id, status string) error {
	if id == "" {
		return errors.New("funding ID is required")
	}
	return a.client.do(ctx, request{
		method: http.MethodPatch,
		path:   "/admin/fundings/" + url.PathEscape(id) + "/status",
		body:   map[string]string{"status": status},
	}, nil)
}

// AdminDonationRequests lists every donation request for admin management.
// GET /admin/donation-requests.
func (a *AuthorizedClient) AdminDonationRequests(ctx context.Context, p ListParams) (Page[DonationRequest], error) {
	return a.listRequests(ctx, "/admin/donation-requests", p)
}

// StatsOverview fetches the admin dashboard summary. GET /stats/overview.
func (a *AuthorizedClient) StatsOverview(ctx context.Context) (StatsOverview, error) {
	var out StatsOverview
	err := a.client.do(ctx, request{method: http.MethodGet, path: "/stats/overview"}, &out)
	return out, err
}
