package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/crestline-labs/confsync/internal/core/domain"
)

// DefaultAccount extracts the first account referenced in the caller's
// permission listing. Listing permissions is an administrative call: a
// credential without admin privilege yields a listing with no usable
// account reference, which surfaces as ErrAccountUnresolved with the
// payload echoed.
func (c *Client) DefaultAccount(ctx context.Context, accessToken string) (int64, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/v2/permissions", accessToken, nil)
	if err != nil {
		return 0, err
	}
	if resp.status != http.StatusOK {
		return 0, apiError(resp)
	}

	var payload struct {
		Results []struct {
			Account struct {
				ID int64 `json:"id"`
			} `json:"account"`
		} `json:"results"`
	}
	if err := json.Unmarshal(resp.body, &payload); err != nil {
		return 0, fmt.Errorf("decode permission listing: %w", err)
	}

	for _, p := range payload.Results {
		if p.Account.ID != 0 {
			return p.Account.ID, nil
		}
	}
	return 0, fmt.Errorf("permission listing %q: %w", string(resp.body), domain.ErrAccountUnresolved)
}
