package backend

import (
	"encoding/json"
	"fmt"

	jmespath "github.com/jmespath-community/go-jmespath"

	apperrors "github.com/roktoseba/ui-gateway/internal/errors"
)

// The backend's list endpoints are not uniform: some answer {data, total},
// the admin user list answers {users, total}, and a few public reads answer a
// raw array. rowsExpr tolerates all of them; totalExpr falls back to the row
// count when the envelope carries no total.
const (
	rowsExpr  = "users || data || requests || fundings || @"
	totalExpr = "total"
)

// rawPayload defers envelope decoding until the shape is known.
type rawPayload = json.RawMessage

// Page is a decoded page of list results.
type Page[T any] struct {
	Rows  []T `json:"data"`
	Total int `json:"total"`
}

// decodePage decodes a list response of any supported envelope shape into a
// typed page.
func decodePage[T any](payload []byte) (Page[T], error) {
	var page Page[T]

	var doc any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return page, apperrors.Malformed("decode list response", err)
	}

	rows, err := jmespath.Search(rowsExpr, doc)
	if err != nil {
		return page, apperrors.Malformed("extract list rows", err)
	}
	rawRows, ok := rows.([]any)
	if !ok {
		return page, apperrors.Malformed("extract list rows", fmt.Errorf("unexpected shape %T", rows))
	}

	// Round-trip through JSON to land on the typed row.
	buf, err := json.Marshal(rawRows)
	if err != nil {
		return page, apperrors.Malformed("re-encode list rows", err)
	}
	if err := json.Unmarshal(buf, &page.Rows); err != nil {
		return page, apperrors.Malformed("decode list rows", err)
	}

	page.Total = len(page.Rows)
	if total, searchErr := jmespath.Search(totalExpr, doc); searchErr == nil {
		if f, isNum := total.(float64); isNum {
			page.Total = int(f)
		}
	}

	return page, nil
}
