package backend

import (
	"context"
	"net/http"
	"net/url"
)

// SearchDonors runs the public donor search. GET /donors/search.
// Empty filter fields are omitted from the query.
func (c *Client) SearchDonors(ctx context.Context, f DonorFilter) ([]Donor, error) {
	q := url.Values{}
	if f.BloodGroup != "" {
		q.Set("bloodGroup", f.BloodGroup)
	}
	if f.District != "" {
		q.Set("district", f.District)
	}
	if f.Upazila != "" {
		q.Set("upazila", f.Upazila)
	}

	var raw rawPayload
	if err := c.do(ctx, request{method: http.MethodGet, path: "/donors/search", query: q}, &raw); err != nil {
		return nil, err
	}
	page, err := decodePage[Donor](raw)
	if err != nil {
		return nil, err
	}
	return page.Rows, nil
}
