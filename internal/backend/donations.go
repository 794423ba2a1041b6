package backend

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

func (p ListParams) query() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", itoa(p.Limit))
	}
	if p.Status != "" {
		q.Set("status", p.Status)
	}
	return q
}

// PublicDonationRequests lists pending requests visible to anonymous
// visitors. GET /donation-requests/public.
func (c *Client) PublicDonationRequests(ctx context.Context, p ListParams) (Page[DonationRequest], error) {
	return c.listRequests(ctx, "/donation-requests/public", p)
}

func (c *Client) listRequests(ctx context.Context, path string, p ListParams) (Page[DonationRequest], error) {
	var raw rawPayload
	if err := c.do(ctx, request{method: http.MethodGet, path: path, query: p.query()}, &raw); err != nil {
		return Page[DonationRequest]{}, err
	}
	return decodePage[DonationRequest](raw)
}

// DonationRequest fetches a single request by ID. GET /donation-requests/{id}.
func (a *AuthorizedClient) DonationRequest(ctx context.Context, id string) (DonationRequest, error) {
	var out DonationRequest
	if id == "" {
		return out, errors.New("request ID is required")
	}
	err := a.client.do(ctx, request{
		method: http.MethodGet,
		path:   "/donation-requests/" + url.PathEscape(id),
	}, &out)
	return out, err
}

// CreateDonationRequest submits a new donation request. POST /donation-requests.
func (a *AuthorizedClient) CreateDonationRequest(ctx context.Context, in CreateDonationRequest) (DonationRequest, error) {
	var out DonationRequest
	err := a.client.do(ctx, request{
		method: http.MethodPost,
		path:   "/donation-requests",
		body:   in,
	}, &out)
	return out, err
}

// MyRecentDonationRequests lists the caller's most recent requests.
// GET /donation-requests/my/recent.
func (a *AuthorizedClient) MyRecentDonationRequests(ctx context.Context) ([]DonationRequest, error) {
	var raw rawPayload
	if err := a.client.do(ctx, request{method: http.MethodGet, path: "/donation-requests/my/recent"}, &raw); err != nil {
		return nil, err
	}
	page, err := decodePage[DonationRequest](raw)
	if err != nil {
		return nil, err
	}
	return page.Rows, nil
}

// AllDonationRequests lists every request visible to volunteers and admins.
// GET /donation-requests/all.
func (a *AuthorizedClient) AllDonationRequests(ctx context.Context, p ListParams) (Page[DonationRequest], error) {
	return a.listRequests(ctx, "/donation-requests/all", p)
}

func (a *AuthorizedClient) listRequests(ctx context.Context, path string, p ListParams) (Page[DonationRequest], error) {
	var raw rawPayload
	if err := a.client.do(ctx, request{method: http.MethodGet, path: path, query: p.query()}, &raw); err != nil {
		return Page[DonationRequest]{}, err
	}
	return decodePage[DonationRequest](raw)
}

// SetDonationRequestStatus updates a request's status.
// PATCH /donation-requests/{id}/status.
func (a *AuthorizedClient) SetDonationRequestStatus(ctx context.Context, id, status string) error {
	if id == "" {
		return errors.New("request ID is required")
	}
	return a.client.do(ctx, request{
		method: http.MethodPatch,
		path:   "/donation-requests/" + url.PathEscape(id) + "/status",
		body:   map[string]string{"status": status},
	}, nil)
}

// ConfirmDonation marks the caller as the donor for a request.
// PATCH /donation-requests/{id}/confirm.
func (a *AuthorizedClient) ConfirmDonation(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("request ID is required")
	}
	return a.client.do(ctx, request{
		method: http.MethodPatch,
		path:   "/donation-requests/" + url.PathEscape(id) + "/confirm",
	}, nil)
}
