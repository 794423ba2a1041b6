package backend

import (
	"context"
	"errors"
	"net/http"
)

// PublicFundings lists funding records visible to signed-in users.
// GET /fundings/public.
func (c *Client) PublicFundings(ctx context.Context, p ListParams) (Page[Funding], error) {
	var raw rawPayload
	if err := c.do(ctx, request{method: http.MethodGet, path: "/fundings/public", query: p.query()}, &raw); err != nil {
		return Page[Funding]{}, err
	}
	return decodePage[Funding](raw)
}

// CreateFunding records a funding contribution by the caller. POST /fundings.
func (a *AuthorizedClient) CreateFunding(ctx context.Context, amount float64) (Funding, error) {
	var out Funding
	if amount <= 0 {
		return out, errors.New("amount must be positive")
	}
	err := a.client.do(ctx, request{
		method: http.MethodPost,
		path:   "/fundings",
		body:   map[string]float64{"amount": amount},
	}, &out)
	return out, err
}
