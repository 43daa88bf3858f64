package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/naveenspark/campusnest/pkg/domain"
)

// Client is the campusnest API client. The session lives in a server-set
// HTTP-only cookie held by the client's cookie jar; no token is ever exposed.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        logrus.FieldLogger
}

// Option customizes a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithRateLimit throttles outbound requests to rps with the given burst.
// rps <= 0 disables throttling.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) { c.log = log }
}

// WithHTTPClient replaces the underlying HTTP client. A cookie jar is
// attached if the given client has none.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc.Jar == nil {
			hc.Jar = c.httpClient.Jar
		}
		c.httpClient = hc
	}
}

// New creates a new API client.
func New(baseURL string, opts ...Option) *Client {
	jar, _ := cookiejar.New(nil) //nolint:errcheck // cookiejar.New never fails with nil options
	silent := logrus.New()
	silent.SetOutput(io.Discard)
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
		},
		log: silent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// envelope is the uniform response wrapper of the API.
type envelope struct {
	Success    bool               `json:"success"`
	Data       json.RawMessage    `json:"data,omitempty"`
	Message    string             `json:"message,omitempty"`
	Error      string             `json:"error,omitempty"`
	Pagination *domain.Pagination `json:"pagination,omitempty"`
}

func (e envelope) message() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// Page is one page of a paginated list.
type Page[T any] struct {
	Items      []T
	Pagination domain.Pagination
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	_, err := c.doRequest(ctx, http.MethodGet, path, nil, out)
	return err
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	_, err := c.doRequest(ctx, http.MethodPost, path, body, out)
	return err
}

func (c *Client) patch(ctx context.Context, path string, body any, out any) error {
	_, err := c.doRequest(ctx, http.MethodPatch, path, body, out)
	return err
}

func (c *Client) getPage(ctx context.Context, path string, out any) (domain.Pagination, error) {
	p, err := c.doRequest(ctx, http.MethodGet, path, nil, out)
	if err != nil {
		return domain.Pagination{}, err
	}
	if p == nil {
		return domain.Pagination{CurrentPage: 1, TotalPages: 1}, nil
	}
	return *p, nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) (*domain.Pagination, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &Error{Kind: KindNetwork, Message: "rate limit wait", Err: err}
		}
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WithFields(logrus.Fields{"method": method, "path": path, "request_id": reqID}).
			WithError(err).Debug("request failed")
		return nil, &Error{Kind: KindNetwork, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	c.log.WithFields(logrus.Fields{
		"method":      method,
		"path":        path,
		"status":      resp.StatusCode,
		"request_id":  reqID,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("request done")

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20)) // 8 MB max body
	if err != nil {
		return nil, &Error{Kind: KindNetwork, StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", err), Err: err}
	}

	var env envelope
	decodeErr := json.Unmarshal(respBody, &env)

	if resp.StatusCode >= 400 {
		if decodeErr == nil && env.message() != "" {
			return nil, newStatusError(resp.StatusCode, env.message())
		}
		return nil, newStatusError(resp.StatusCode, string(bytes.TrimSpace(respBody)))
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode response: %w", decodeErr)
	}
	if !env.Success {
		return nil, newStatusError(resp.StatusCode, env.message())
	}

	if out != nil && len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null")) {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("decode data: %w", err)
		}
	}
	return env.Pagination, nil
}

// errMissingData is returned when a successful envelope carries no entity.
var errMissingData = errors.New("response has no data")
