// Package api is a client for the xiamiu catalog REST API.
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
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	userAgent      = "xiamiu/0.1 (https://github.com/llehouerou/xiamiu)"
	defaultTimeout = 10 * time.Second
)

// Options configures a Client.
type Options struct {
	BaseURL string // e.g. "http://localhost:8000"
	Timeout time.Duration

	// RequestsPerSecond throttles outgoing requests. Zero disables throttling.
	RequestsPerSecond float64

	// Transport overrides the HTTP transport (tests).
	Transport http.RoundTripper
	Logger    *zap.Logger
}

// Client provides access to the catalog API. It holds no credentials;
// authenticated calls take a Session argument.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *zap.Logger

	// Set once the server has shown it does not support batched meta lookups.
	noBatchAlbumMeta  atomic.Bool
	noBatchArtistMeta atomic.Bool
}

// New creates a new API client.
func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimSuffix(opts.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: opts.Transport,
		},
		limiter: rate.NewLimiter(limit, 1),
		log:     logger.Named("api"),
	}
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// request describes one API call.
type request struct {
	method  string
	path    string
	query   url.Values
	body    io.Reader
	ctype   string
	session *Session
}

// do executes a request and decodes a JSON response into out (which may be nil).
func (c *Client) do(ctx context.Context, r request, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	reqURL := c.baseURL + r.path
	if len(r.query) > 0 {
		reqURL += "?" + r.query.Encode()
	}

	body := r.body
	if body == nil {
		body = http.NoBody
	}
	req, err := http.NewRequestWithContext(ctx, r.method, reqURL, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if r.ctype != "" {
		req.Header.Set("Content-Type", r.ctype)
	}
	r.session.authorize(req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("request failed",
			zap.String("method", r.method),
			zap.String("path", r.path),
			zap.String("request_id", requestID),
			zap.Error(err))
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	c.log.Debug("request",
		zap.String("method", r.method),
		zap.String("path", r.path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
		zap.String("request_id", requestID))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// getJSON issues a GET for path and decodes the payload into T.
func getJSON[T any](ctx context.Context, c *Client, path string, query url.Values) (T, error) {
	var out T
	err := c.do(ctx, request{method: http.MethodGet, path: path, query: query}, &out)
	return out, err
}

func (c *Client) postJSON(ctx context.Context, path string, sess *Session, payload, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	return c.do(ctx, request{
		method:  http.MethodPost,
		path:    path,
		body:    bytes.NewReader(data),
		ctype:   "application/json",
		session: sess,
	}, out)
}

func (c *Client) delete(ctx context.Context, path string, sess *Session) error {
	return c.do(ctx, request{method: http.MethodDelete, path: path, session: sess}, nil)
}

// esc escapes one path segment.
func esc(s string) string {
	return url.PathEscape(s)
}
