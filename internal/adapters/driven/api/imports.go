package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/crestline-labs/confsync/internal/core/domain"
)

func hrefs(assets []domain.Asset) []string {
	out := make([]string, 0, len(assets))
	for _, a := range assets {
		out = append(out, a.Href)
	}
	return out
}

// PreviewImport submits all assets in one batched dry-run call and returns
// the per-asset outcomes.
func (c *Client) PreviewImport(
	ctx context.Context,
	s domain.Session,
	repoID int64,
	assets []domain.Asset,
	ns domain.Namespace,
) ([]domain.ImportDecision, error) {
	body := map[string]any{
		"assets":    hrefs(assets),
		"namespace": ns,
	}

	var payload struct {
		Results []domain.ImportDecision `json:"results"`
	}
	path := accountPath(s, repoID, "import_preview")
	if err := c.doJSON(ctx, http.MethodPost, path, s.AccessToken, body, &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

// Import applies the asset batch into ns. The API performs the batch
// atomically and signals success with 204 No Content; any other response,
// including a 200 with a body, is an import failure.
func (c *Client) Import(
	ctx context.Context,
	s domain.Session,
	repoID int64,
	assets []domain.Asset,
	ns domain.Namespace,
) error {
	body := map[string]any{
		"assets":    hrefs(assets),
		"namespace": ns,
		"follow":    false,
	}

	resp, err := c.do(ctx, http.MethodPost, accountPath(s, repoID, "import"), s.AccessToken, body)
	if err != nil {
		return err
	}
	if resp.status != http.StatusNoContent {
		return fmt.Errorf("import returned status %d body %q: %w",
			resp.status, string(resp.body), domain.ErrUnexpectedResponse)
	}
	return nil
}

// Refetch triggers an asynchronous refetch of the whole repository with
// auto-import disabled. Success is an empty response body; anything else is
// surfaced verbatim.
func (c *Client) Refetch(ctx context.Context, s domain.Session, repoID int64) error {
	body := map[string]any{
		"auto_import": false,
	}

	resp, err := c.do(ctx, http.MethodPost, accountPath(s, repoID, "refetch"), s.AccessToken, body)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(resp.body)) != 0 {
		return fmt.Errorf("refetch returned %q: %w", string(resp.body), domain.ErrUnexpectedResponse)
	}
	if resp.status < http.StatusOK || resp.status >= http.StatusMultipleChoices {
		return apiError(resp)
	}
	return nil
}
