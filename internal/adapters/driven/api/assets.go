package api

import (
	"context"
	"net/http"

	"github.com/crestline-labs/confsync/internal/core/domain"
)

// ListAssets returns the importable assets the repository currently
// exposes. The listing is populated asynchronously after repository
// creation, so an empty result is a normal intermediate state and not an
// error.
func (c *Client) ListAssets(ctx context.Context, s domain.Session, repoID int64) ([]domain.Asset, error) {
	var payload struct {
		Results []domain.Asset `json:"results"`
	}
	if err := c.doJSON(ctx, http.MethodGet, accountPath(s, repoID, "assets"), s.AccessToken, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}
