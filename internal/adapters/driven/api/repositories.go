package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/crestline-labs/confsync/internal/core/domain"
)

func accountPath(s domain.Session, parts ...any) string {
	p := fmt.Sprintf("/api/v2/accounts/%d/config_repositories", s.AccountID)
	for _, part := range parts {
		p += fmt.Sprintf("/%v", part)
	}
	return p
}

// FindRepositories returns repositories whose name exactly equals name.
// The API matches by substring, so results are filtered here.
func (c *Client) FindRepositories(ctx context.Context, s domain.Session, name string) ([]domain.RepositoryRef, error) {
	var payload struct {
		Results []domain.RepositoryRef `json:"results"`
	}
	path := accountPath(s) + "?name=" + url.QueryEscape(name)
	if err := c.doJSON(ctx, http.MethodGet, path, s.AccessToken, nil, &payload); err != nil {
		return nil, err
	}

	var matches []domain.RepositoryRef
	for _, r := range payload.Results {
		if r.Name == name {
			matches = append(matches, r)
		}
	}
	return matches, nil
}

// CreateRepository registers a repository bound to ref.SourceURL and
// ref.Branch. A creation response without an identifier is fatal, with the
// payload echoed.
func (c *Client) CreateRepository(ctx context.Context, s domain.Session, ref domain.RepositoryRef) (int64, error) {
	body := map[string]any{
		"name":             ref.Name,
		"source_url":       ref.SourceURL,
		"commit_reference": ref.Branch,
	}

	resp, err := c.do(ctx, http.MethodPost, accountPath(s), s.AccessToken, body)
	if err != nil {
		return 0, err
	}
	if resp.status != http.StatusOK && resp.status != http.StatusCreated {
		return 0, apiError(resp)
	}

	var created struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(resp.body, &created); err != nil {
		return 0, fmt.Errorf("decode creation response: %w", err)
	}
	if created.ID == 0 {
		return 0, fmt.Errorf("creation response %q: %w", string(resp.body), domain.ErrRepoCreateFailed)
	}
	return created.ID, nil
}

// GetRepository fetches the repository resource including its succeeded
// commit.
func (c *Client) GetRepository(ctx context.Context, s domain.Session, id int64) (*domain.RepositoryRef, error) {
	var repo domain.RepositoryRef
	if err := c.doJSON(ctx, http.MethodGet, accountPath(s, id), s.AccessToken, nil, &repo); err != nil {
		return nil, err
	}
	return &repo, nil
}
