// Package api is the HTTP client for the fintrack backend REST contract.
//
// Calls are single-attempt and fail fast: every failure comes back as an
// *Error classified as transport, status or decode.
package api

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

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries a per-request id for log correlation.
const RequestIDHeader = "X-Request-ID"

const maxErrorBody = 1 << 20

// TokenSource supplies the bearer token. An empty token sends no
// Authorization header.
type TokenSource interface {
	Token() (string, error)
}

// Client talks to the backend.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the overall per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithLogger sets the diagnostic logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a Client for the backend at baseURL.
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		tokens:  tokens,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// send performs a request and returns the response when it is 2xx. The
// caller must close the body.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	reqID := uuid.NewString()
	log := c.log.With(
		zap.String("method", method),
		zap.String("url", target),
		zap.String("request_id", reqID),
	)
	fail := func(e *Error) error {
		e.Method, e.Path = method, path
		log.Error("api request failed", zap.Stringer("kind", e.Kind), zap.Int("status", e.StatusCode), zap.Error(e))
		return e
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("building %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)
	if c.tokens != nil {
		tok, err := c.tokens.Token()
		if err != nil {
			return nil, fmt.Errorf("reading token: %w", err)
		}
		if tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	log.Debug("api request")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fail(&Error{Kind: KindTransport, Message: err.Error(), Err: err})
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fail(&Error{
			Kind:       KindStatus,
			StatusCode: resp.StatusCode,
			Message:    statusMessage(resp.StatusCode, data),
		})
	}
	return resp, nil
}

// do sends a JSON request and decodes the JSON response into out. A nil out
// discards the response body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	resp, err := c.send(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		e := &Error{
			Kind:    KindDecode,
			Method:  method,
			Path:    path,
			Message: fmt.Sprintf("malformed response from %s %s: %v", method, path, err),
			Err:     err,
		}
		c.log.Error("api response decode failed", zap.String("path", path), zap.Error(err))
		return e
	}
	return nil
}

func itemPath(collection string, id int) string {
	return fmt.Sprintf("%s/%d", collection, id)
}
