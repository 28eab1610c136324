package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// DefaultTimeout bounds every request issued through the client. A request
// exceeding it fails with a Network-classified error instead of hanging.
const DefaultTimeout = 30 * time.Second

// TokenSource supplies the current bearer token before each request. It is
// consulted on every call, never cached, so a freshly persisted token is
// guaranteed to reach the next outgoing request.
type TokenSource func(ctx context.Context) (string, error)

// UnauthorizedHandler reacts to a 401 response before the classified error
// propagates to the caller. The session service registers its teardown here.
type UnauthorizedHandler func(ctx context.Context)

// Client performs HTTP calls against a single fixed base endpoint with
// uniform defaults and two interception seams: a token source applied to
// every outgoing request and an unauthorized handler invoked on 401.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	limiter    *rate.Limiter

	mu             sync.RWMutex
	defaultHeaders map[string]string
	tokenSource    TokenSource
	onUnauthorized UnauthorizedHandler
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for request failure diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithRateLimit throttles outgoing requests client-side. For "10 per second
// with bursts of 5" pass rate.Limit(10) and burst 5.
func WithRateLimit(r rate.Limit, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(r, burst) }
}

// NewClient creates a client for the given base URL with a 30 second timeout
// and JSON content-type defaults.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     slog.Default(),
		defaultHeaders: map[string]string{
			"Content-Type": "application/json",
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetTokenSource registers the outbound hook that supplies the bearer token.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokenSource = ts
}

// SetUnauthorizedHandler registers the inbound hook invoked on 401 responses.
func (c *Client) SetUnauthorizedHandler(h UnauthorizedHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = h
}

// SetDefaultHeader sets a header applied to every request.
func (c *Client) SetDefaultHeader(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.defaultHeaders[key] = value
}

// UnsetDefaultHeader removes a default header.
func (c *Client) UnsetDefaultHeader(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.defaultHeaders, key)
}

// BaseURL returns the endpoint the client was configured with.
func (c *Client) BaseURL() string { return c.baseURL }

// RequestOption adjusts a single request.
type RequestOption func(*requestConfig)

type requestConfig struct {
	query  url.Values
	header map[string]string
}

// WithQuery attaches query parameters to the request.
func WithQuery(q url.Values) RequestOption {
	return func(rc *requestConfig) { rc.query = q }
}

// WithHeader sets a header for this request only, overriding defaults.
func WithHeader(key, value string) RequestOption {
	return func(rc *requestConfig) {
		if rc.header == nil {
			rc.header = make(map[string]string)
		}
		rc.header[key] = value
	}
}

// Get issues a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodGet, path, nil, out, opts...)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodPost, path, body, out, opts...)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodPut, path, body, out, opts...)
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodPatch, path, body, out, opts...)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, opts...)
}

// Do issues a request against the configured base URL. body, when non-nil,
// is JSON-encoded; out, when non-nil, receives the decoded JSON response.
// Failures always surface as a classified *Error.
func (c *Client) Do(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error {
	var rc requestConfig
	for _, opt := range opts {
		opt(&rc)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return classifyTransport(err)
		}
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &Error{Category: CategoryUnknown, Message: msgUnknown, cause: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(encoded)
	}

	target := c.baseURL + path
	if len(rc.query) > 0 {
		target += "?" + rc.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return &Error{Category: CategoryUnknown, Message: msgUnknown, cause: fmt.Errorf("create request: %w", err)}
	}

	c.applyHeaders(ctx, req, rc.header)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		apiErr := classifyTransport(err)
		c.logger.Debug("api request failed",
			"method", method, "path", path, "category", string(apiErr.Category), "error", err)
		return apiErr
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.handleFailure(ctx, method, path, resp)
	}

	if out != nil {
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return classifyTransport(fmt.Errorf("read response: %w", err))
		}
		if len(data) > 0 {
			if err := json.Unmarshal(data, out); err != nil {
				return &Error{Category: CategoryUnknown, Message: msgUnknown, cause: fmt.Errorf("decode response: %w", err)}
			}
		}
	}

	return nil
}

// applyHeaders layers the default headers, the freshly read bearer token and
// per-request overrides onto req, in that order. The token is re-read from
// the source on every call so concurrent requests never see a stale value.
func (c *Client) applyHeaders(ctx context.Context, req *http.Request, overrides map[string]string) {
	c.mu.RLock()
	for k, v := range c.defaultHeaders {
		req.Header.Set(k, v)
	}
	ts := c.tokenSource
	c.mu.RUnlock()

	if ts != nil {
		if token, err := ts(ctx); err == nil && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	for k, v := range overrides {
		req.Header.Set(k, v)
	}

	if req.Header.Get("X-Request-ID") == "" {
		req.Header.Set("X-Request-ID", uuid.NewString())
	}
}

// handleFailure turns a non-2xx response into a classified error. A 401
// additionally triggers the registered unauthorized handler so the session
// is torn down before the error reaches the caller.
func (c *Client) handleFailure(ctx context.Context, method, path string, resp *http.Response) error {
	var body errorBody
	if data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)); err == nil && len(data) > 0 {
		// Error bodies are best effort; a non-JSON payload keeps the default message.
		_ = json.Unmarshal(data, &body)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.mu.RLock()
		onUnauthorized := c.onUnauthorized
		c.mu.RUnlock()
		if onUnauthorized != nil {
			onUnauthorized(ctx)
		}
	}

	apiErr := classifyStatus(resp.StatusCode, body.Message)
	c.logger.Debug("api request failed",
		"method", method, "path", path, "status", resp.StatusCode, "category", string(apiErr.Category))
	return apiErr
}
