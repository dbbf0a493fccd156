// Package transport is the HTTP client for the portal notification service.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cristianoliveira/portal-notify/internal/logging"
	"github.com/cristianoliveira/portal-notify/internal/ports"
)

// DefaultTimeout bounds a single request when Options.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// Options configures a Client.
type Options struct {
	// BaseURL is the API root, e.g. http://localhost:3001/api. The
	// notifications resource lives under BaseURL + "/notifications".
	BaseURL     string
	Credentials ports.CredentialProvider
	Timeout     time.Duration
	HTTPClient  *http.Client
	Logger      logging.Logger
}

// Client implements ports.NotificationTransport over HTTP. It does not retry.
type Client struct {
	baseURL     string
	credentials ports.CredentialProvider
	timeout     time.Duration
	httpClient  *http.Client
	log         logging.Logger
}

var _ ports.NotificationTransport = (*Client)(nil)

// New creates a Client. A nil credential provider sends no Authorization
// header.
func New(opts Options) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(opts.BaseURL, "/") + "/notifications",
		credentials: opts.Credentials,
		timeout:     opts.Timeout,
		httpClient:  opts.HTTPClient,
		log:         opts.Logger,
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.log == nil {
		c.log = logging.Nop()
	}
	c.log = c.log.With("component", "transport")
	return c
}

// do builds the request, attaches the bearer token, and decodes a JSON
// response into result when result is non-nil.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, result any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	fail := func(status int, msg string, err error) error {
		return &Error{Op: op, Method: method, Path: path, StatusCode: status, Message: msg, Err: err}
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fail(0, "", fmt.Errorf("marshaling request body: %w", err))
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return fail(0, "", fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.credentials != nil {
		token, err := c.credentials.Token(ctx)
		if err != nil {
			return fail(0, "", fmt.Errorf("resolving credential: %w", err))
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("request failed", "op", op, "method", method, "path", path, "error", err)
		return fail(0, "", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(resp.StatusCode, "", fmt.Errorf("reading response body: %w", err))
	}
	c.log.Debug("request", "op", op, "method", method, "path", path,
		"status", resp.StatusCode, "elapsed", time.Since(start).String())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fail(resp.StatusCode, serverMessage(respBody), nil)
	}
	if result == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return fail(resp.StatusCode, "", fmt.Errorf("decoding response: %w", err))
	}
	return nil
}

// serverMessage extracts {"message": "..."} or {"error": "..."} from an
// error body.
func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &payload) != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
