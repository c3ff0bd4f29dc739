package restapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"resty.dev/v3"

	"github.com/ontoops/go-console-cache/apitypes"
)

// Config holds the settings for the backend API client.
type Config struct {
	// BaseURL is the root of the backend API, e.g. "https://console.example.com/api".
	BaseURL string

	// RefreshPath is the token refresh endpoint relative to BaseURL.
	// Defaults to "/auth/refresh".
	RefreshPath string

	// Timeout bounds each HTTP request. Defaults to 30s.
	Timeout time.Duration

	// ExpiryLeeway triggers a proactive refresh when the access token expires
	// within this window. Defaults to 30s.
	ExpiryLeeway time.Duration

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Logger receives refresh/retry events. Defaults to slog.Default().
	Logger *slog.Logger

	// OnSessionExpired is called once the refresh path is exhausted; the
	// console uses it to force a logout.
	OnSessionExpired func()
}

// Client talks to the console backend. Reads and writes go through the
// resource layer; this type owns transport, auth headers, and the
// refresh-and-retry-once behaviour on 401 responses.
//
// A failed request has no cache side effects: invalidation is driven by the
// resource layer and only after a write succeeds.
type Client struct {
	http *resty.Client
	auth *tokenSource
	log  *slog.Logger
}

// NewClient builds a Client from cfg and an initial token pair (which may be
// empty for flows that call SetTokens after login).
func NewClient(cfg Config, tokens apitypes.TokenPair) *Client {
	if cfg.RefreshPath == "" {
		cfg.RefreshPath = "/auth/refresh"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.ExpiryLeeway == 0 {
		cfg.ExpiryLeeway = 30 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "go-console-cache"
	}

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "application/json")

	c := &Client{
		http: httpClient,
		log:  cfg.Logger,
	}
	c.auth = &tokenSource{
		tokens:    tokens,
		leeway:    cfg.ExpiryLeeway,
		onExpired: cfg.OnSessionExpired,
		log:       cfg.Logger,
		exchange: func(ctx context.Context, refreshToken string) (apitypes.TokenPair, error) {
			return c.exchangeRefreshToken(ctx, cfg.RefreshPath, refreshToken)
		},
	}
	return c
}

// SetTokens replaces the credential pair, e.g. after an interactive login.
func (c *Client) SetTokens(tokens apitypes.TokenPair) {
	c.auth.set(tokens)
}

// Close releases the transport resources held by the underlying client.
func (c *Client) Close() error {
	return c.http.Close()
}

// Get issues an authenticated GET and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues an authenticated POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues an authenticated PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// Delete issues an authenticated DELETE.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	token, err := c.auth.current(ctx)
	if err != nil {
		return err
	}

	resp, err := c.execute(ctx, method, path, query, body, out, token)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		// Refresh once and retry the original request once. A second 401
		// means the session is gone for good.
		c.log.Debug("access token rejected, refreshing", "method", method, "path", path)
		fresh, refreshErr := c.auth.refreshAfterReject(ctx, token)
		if refreshErr != nil {
			return refreshErr
		}

		resp, err = c.execute(ctx, method, path, query, body, out, fresh)
		if err != nil {
			return fmt.Errorf("%s %s (retry): %w", method, path, err)
		}
		if resp.StatusCode() == http.StatusUnauthorized {
			c.auth.expireSession()
			return ErrSessionExpired
		}
	}

	if resp.IsError() {
		return apiErrorFrom(resp)
	}
	return nil
}

func (c *Client) execute(ctx context.Context, method, path string, query url.Values, body, out any, token string) (*resty.Response, error) {
	req := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+token).
		SetError(&APIError{})
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}
	return req.Execute(method, path)
}

// exchangeRefreshToken calls the dedicated refresh endpoint. It runs without
// the bearer header: the refresh token itself is the credential.
func (c *Client) exchangeRefreshToken(ctx context.Context, refreshPath, refreshToken string) (apitypes.TokenPair, error) {
	var envelope apitypes.Envelope[apitypes.TokenPair]

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(apitypes.RefreshRequest{RefreshToken: refreshToken}).
		SetResult(&envelope).
		SetError(&APIError{}).
		Post(refreshPath)
	if err != nil {
		return apitypes.TokenPair{}, fmt.Errorf("refresh request: %w", err)
	}
	if resp.IsError() {
		return apitypes.TokenPair{}, apiErrorFrom(resp)
	}
	return envelope.Data, nil
}

func apiErrorFrom(resp *resty.Response) error {
	if apiErr, ok := resp.Error().(*APIError); ok && apiErr != nil {
		apiErr.StatusCode = resp.StatusCode()
		if apiErr.Message == "" {
			apiErr.Message = resp.Status()
		}
		return apiErr
	}
	return &APIError{StatusCode: resp.StatusCode(), Message: resp.Status()}
}
