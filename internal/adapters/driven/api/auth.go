package api

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/oauth2"

	"github.com/crestline-labs/confsync/internal/core/domain"
)

// RefreshAccessToken exchanges a refresh token for a bearer access token
// via the OAuth2 refresh grant against the control plane's token endpoint.
// The token is valid for the remainder of the run; there is no
// refresh-on-expiry.
func (c *Client) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", domain.ErrMissingCredential
	}

	conf := &oauth2.Config{
		Endpoint: oauth2.Endpoint{
			TokenURL:  c.baseURL.JoinPath("/oauth/token").String(),
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	tok, err := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			// Surface the raw error payload for diagnosis.
			return "", fmt.Errorf("token exchange failed: %s", strings.TrimSpace(string(retrieveErr.Body)))
		}
		return "", fmt.Errorf("token exchange: %w", err)
	}

	if tok.AccessToken == "" {
		return "", fmt.Errorf("no access token in exchange response: %w", domain.ErrUnexpectedResponse)
	}
	return tok.AccessToken, nil
}
