// Package api implements the driven.ControlPlane port against the real
// configuration-management HTTP API.
//
// Every request carries the versioned API header and a request id; calls
// made with a session carry its bearer token. Transient network failures
// and 5xx responses are retried a bounded number of times here, independent
// of the application-level poll loops in the core.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/crestline-labs/confsync/internal/core/ports/driven"
	"github.com/crestline-labs/confsync/internal/logger"
)

const (
	// DefaultTimeout is the per-request HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// MaxRetries is the maximum number of attempts for transient errors.
	MaxRetries = 3

	// RetryDelay is the base delay between retries; attempt n waits n times
	// this long.
	RetryDelay = time.Second

	// ProactiveRate throttles outgoing requests client-side so poll loops
	// cannot hammer the API.
	ProactiveRate = 5 // requests per second

	apiVersionHeader = "X-Api-Version"
	apiVersion       = "2"
)

// Ensure Client implements the port.
var _ driven.ControlPlane = (*Client)(nil)

// Client is an HTTP client for the control plane API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a client for the given API host. A bare hostname is
// assumed to be HTTPS; a full URL is taken as given (tests use http).
func NewClient(apiHost string) (*Client, error) {
	if apiHost == "" {
		return nil, errors.New("api host is required")
	}
	if !strings.Contains(apiHost, "://") {
		apiHost = "https://" + apiHost
	}
	base, err := url.Parse(strings.TrimSuffix(apiHost, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api host: %w", err)
	}

	return &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(ProactiveRate), 1),
	}, nil
}

// response is a fully read HTTP exchange result.
type response struct {
	status int
	body   []byte
	url    string
}

// do performs one API call with bounded transient retry. Responses with any
// status are returned to the caller; only network errors and 5xx statuses
// are retried.
func (c *Client) do(ctx context.Context, method, path, token string, payload any) (*response, error) {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
	}

	path, query, _ := strings.Cut(path, "?")
	target := c.baseURL.JoinPath(path)
	target.RawQuery = query
	u := target.String()

	var lastErr error
	for attempt := 1; attempt <= MaxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		resp, err := c.once(ctx, method, u, token, body)
		if err == nil && resp.status < http.StatusInternalServerError {
			return resp, nil
		}
		if err != nil {
			lastErr = err
		} else {
			lastErr = &APIError{StatusCode: resp.status, Message: string(resp.body), URL: u}
		}

		if attempt < MaxRetries {
			logger.Debug("retrying %s %s after transient failure: %v", method, path, lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * RetryDelay):
			}
		}
	}

	return nil, fmt.Errorf("%s %s: retries exhausted: %w", method, path, lastErr)
}

func (c *Client) once(ctx context.Context, method, u, token string, body []byte) (*response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set(apiVersionHeader, apiVersion)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return &response{status: resp.StatusCode, body: data, url: u}, nil
}

// doJSON performs a call expecting a 2xx status and, when out is non-nil,
// a JSON body decoded into it.
func (c *Client) doJSON(ctx context.Context, method, path, token string, payload, out any) error {
	resp, err := c.do(ctx, method, path, token, payload)
	if err != nil {
		return err
	}
	if resp.status < http.StatusOK || resp.status >= http.StatusMultipleChoices {
		return apiError(resp)
	}
	if out != nil {
		if err := json.Unmarshal(resp.body, out); err != nil {
			return fmt.Errorf("decode %s response: %w", path, err)
		}
	}
	return nil
}
