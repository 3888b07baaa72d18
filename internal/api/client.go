// Package api provides the HTTP client for the job board REST backend.
//
// Every call carries the session's bearer token, shares one fixed timeout,
// and reacts to a 401 by clearing the token and navigating to the login page.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	contract "github.com/jonathan/jobboard/internal/schemas"
)

// DefaultTimeout bounds every request, uploads included.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for API requests.
const DefaultUserAgent = "jobboard-cli/1.0"

// LoginPath is where the client navigates after a 401.
const LoginPath = "/login"

// TokenSource supplies the bearer token and forgets it when the backend rejects it.
type TokenSource interface {
	Token() string
	ClearToken()
}

// Navigator moves the user to another page.
type Navigator interface {
	Navigate(path string)
}

// Client calls the job board backend.
type Client struct {
	baseURL        string
	tokens         TokenSource
	navigator      Navigator
	httpClient     *http.Client
	logger         *log.Logger
	userAgent      string
	contractChecks bool
}

// Option configures a Client.
type Option func(*Client)

// WithNavigator sets where the client redirects on 401.
func WithNavigator(n Navigator) Option {
	return func(c *Client) { c.navigator = n }
}

// WithHTTPClient uses the given transport settings. The timeout is always DefaultTimeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc == nil {
			return
		}
		copied := *hc
		copied.Timeout = c.httpClient.Timeout
		c.httpClient = &copied
	}
}

// WithLogger logs every request and its outcome.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithContractChecks validates success envelopes against the embedded JSON schemas.
func WithContractChecks(enabled bool) Option {
	return func(c *Client) { c.contractChecks = enabled }
}

// New creates a client for the backend at baseURL.
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		tokens:     tokens,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		userAgent:  DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend base URL without trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// envelope is the {success, ...} wrapper every JSON response uses.
type envelope struct {
	Success *bool        `json:"success"`
	Error   string       `json:"error,omitempty"`
	Message string       `json:"message,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func (e envelope) message() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

// request describes one call.
type request struct {
	op            string
	method        string
	path          string
	body          io.Reader
	contentType   string
	authenticated bool
}

// response is a successful (2xx) raw response.
type response struct {
	status      int
	contentType string
	body        []byte
}

func (c *Client) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}

func (c *Client) send(ctx context.Context, r request) (*response, error) {
	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, r.body)
	if err != nil {
		return nil, &Error{Op: r.op, Kind: KindNetwork, Message: "failed to create request", Cause: err}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if r.authenticated && c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		apiErr := transportError(r.op, err)
		c.logf("[api] %s %s failed after %v: %s", r.method, r.path, time.Since(start), apiErr.Kind)
		return nil, apiErr
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(r.op, err)
	}
	c.logf("[api] %s %s -> %d in %v", r.method, r.path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env envelope
		_ = json.Unmarshal(body, &env)
		apiErr := statusError(r.op, resp.StatusCode, env)
		if apiErr.Kind == KindUnauthorized && r.authenticated {
			c.handleUnauthorized()
		}
		return nil, apiErr
	}

	return &response{
		status:      resp.StatusCode,
		contentType: resp.Header.Get("Content-Type"),
		body:        body,
	}, nil
}

// handleUnauthorized forgets the token and sends the user to the login page.
func (c *Client) handleUnauthorized() {
	c.logf("[api] unauthorized: clearing session and redirecting to %s", LoginPath)
	if c.tokens != nil {
		c.tokens.ClearToken()
	}
	if c.navigator != nil {
		c.navigator.Navigate(LoginPath)
	}
}

// call sends r and decodes the success envelope into out.
// schema names the embedded envelope schema checked when contract checks are on.
func (c *Client) call(ctx context.Context, r request, schema string, out any) error {
	resp, err := c.send(ctx, r)
	if err != nil {
		return err
	}
	return c.decode(r.op, resp.body, schema, out)
}

func (c *Client) decode(op string, body []byte, schema string, out any) error {
	var env envelope
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &env); err != nil {
			return &Error{Op: op, Kind: KindContract, Message: "response is not JSON", Cause: err}
		}
	}
	if env.Success != nil && !*env.Success {
		kind := KindAPI
		if len(env.Errors) > 0 {
			kind = KindValidation
		}
		return &Error{Op: op, Kind: kind, Message: env.message(), Fields: env.Errors}
	}

	if c.contractChecks && schema != "" {
		if err := contract.ValidateEnvelope(schema, body); err != nil {
			return &Error{Op: op, Kind: KindContract, Cause: err}
		}
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Op: op, Kind: KindContract, Message: "failed to decode response", Cause: err}
	}
	return nil
}

func jsonBody(v any) (io.Reader, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return bytes.NewReader(data), nil
}
