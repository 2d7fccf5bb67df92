// Package client talks to a Lumen catalog tenant over its REST API. It
// carries authentication, request identifiers, client-side rate limiting
// and retry of transient failures; endpoint wrappers live alongside in
// this package.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/lumenhq/lumen-go/errors"
	"github.com/lumenhq/lumen-go/internal/httpclient"
)

const (
	// DefaultTimeout bounds a single HTTP exchange
	DefaultTimeout = 120 * time.Second

	// DefaultMaxRetries is how many times a transient failure is retried
	DefaultMaxRetries = 3

	// DefaultRequestsPerSecond is the client-side rate limit
	DefaultRequestsPerSecond = 10
)

// Client represents a Lumen tenant API client
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *httpclient.SaferClient
	config     Config
	limiter    *rate.Limiter
	logger     *zap.SugaredLogger
}

// Config holds tenant client configuration
type Config struct {
	BaseURL           string
	APIKey            string
	Timeout           time.Duration      // 0 = DefaultTimeout
	MaxRetries        int                // 0 = DefaultMaxRetries
	RequestsPerSecond float64            // 0 = DefaultRequestsPerSecond
	Logger            *zap.SugaredLogger // Structured logger (nil = nop logger)
}

// NewClient creates a tenant client with Lumen defaults
func NewClient(config Config) (*Client, error) {
	if config.BaseURL == "" {
		return nil, errors.NewInvalidRequestError("base_url is required")
	}
	if config.APIKey == "" {
		return nil, errors.NewInvalidRequestError("api_key is required")
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if config.MaxRetries <= 0 {
		config.MaxRetries = DefaultMaxRetries
	}
	if config.RequestsPerSecond <= 0 {
		config.RequestsPerSecond = DefaultRequestsPerSecond
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	// SSRF-safer HTTP client with redirect protection. Tenants are public
	// SaaS hostnames; private IPs and localhost are blocked.
	blockPrivateIP := true
	saferClient := httpclient.NewSaferClientWithOptions(config.Timeout, httpclient.SaferClientOptions{
		BlockPrivateIP: &blockPrivateIP,
	})

	return &Client{
		apiKey:     config.APIKey,
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		httpClient: saferClient,
		config:     config,
		limiter:    rate.NewLimiter(rate.Limit(config.RequestsPerSecond), int(config.RequestsPerSecond)),
		logger:     logger,
	}, nil
}

// BaseURL returns the tenant base URL this client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// apiError is the error envelope the tenant returns on failures
type apiError struct {
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

// do performs one API exchange: rate limit, send, retry transient
// failures, map error statuses to sentinels and decode the body into out
// when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var reqBody []byte
	if body != nil {
		var err error
		reqBody, err = json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to marshal request")
		}
	}

	requestID := uuid.NewString()
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var lastErr error
	for attempt := 0; attempt < c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(attempt) * time.Second
			c.logger.Debugw("Retrying tenant request",
				"attempt", attempt, "max_retries", c.config.MaxRetries-1,
				"delay", delay, "request_id", requestID)
			select {
			case <-ctx.Done():
				return errors.Wrap(ctx.Err(), "tenant request cancelled")
			case <-time.After(delay):
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return errors.Wrap(err, "rate limiter wait")
		}

		lastErr = c.doOnce(ctx, method, fullURL, requestID, reqBody, out)
		if lastErr == nil {
			if attempt > 0 {
				c.logger.Infow("Request succeeded after retries",
					"attempts", attempt+1, "path", path)
			}
			return nil
		}

		if !isRetryableError(lastErr) {
			return lastErr
		}
		c.logger.Warnw("Tenant API error",
			"attempt", attempt+1, "max_retries", c.config.MaxRetries,
			"error", lastErr, "method", method, "path", path,
			"request_id", requestID)
	}

	return errors.Wrapf(lastErr, "tenant API error after %d retries", c.config.MaxRetries)
}

func (c *Client) doOnce(ctx context.Context, method, fullURL, requestID string, reqBody []byte, out interface{}) error {
	var bodyReader io.Reader
	if reqBody != nil {
		bodyReader = bytes.NewReader(reqBody)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-Id", requestID)
	if reqBody != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return errors.Wrap(err, "failed to send request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response")
	}

	c.logger.Debugw("Tenant API exchange",
		"method", method, "url", fullURL, "status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
		"request_id", requestID)

	if resp.StatusCode >= 400 {
		return statusError(resp.StatusCode, respBody)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return errors.Wrap(err, "failed to unmarshal response")
		}
	}
	return nil
}

// statusError maps an HTTP error status to the matching sentinel,
// carrying the tenant's error message when the body parses.
func statusError(status int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	var envelope apiError
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.ErrorMessage != "" {
		msg = envelope.ErrorMessage
		if envelope.ErrorCode != "" {
			msg = envelope.ErrorCode + ": " + msg
		}
	}

	var sentinel error
	switch {
	case status == http.StatusBadRequest:
		sentinel = errors.ErrInvalidRequest
	case status == http.StatusUnauthorized:
		sentinel = errors.ErrUnauthorized
	case status == http.StatusForbidden:
		sentinel = errors.ErrForbidden
	case status == http.StatusNotFound:
		sentinel = errors.ErrNotFound
	case status == http.StatusConflict:
		sentinel = errors.ErrConflict
	case status == http.StatusTooManyRequests:
		sentinel = errors.ErrRateLimited
	case status == http.StatusGatewayTimeout:
		sentinel = errors.ErrTimeout
	case status >= 500:
		sentinel = errors.ErrServiceUnavailable
	default:
		return errors.Newf("API request failed with status %d: %s", status, msg)
	}
	return errors.Wrapf(sentinel, "status %d: %s", status, msg)
}

// isRetryableError checks if an error is worth retrying
func isRetryableError(err error) bool {
	if errors.Is(err, errors.ErrRateLimited) ||
		errors.Is(err, errors.ErrServiceUnavailable) ||
		errors.Is(err, errors.ErrTimeout) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if errno, ok := opErr.Err.(syscall.Errno); ok {
			switch errno {
			case syscall.ECONNREFUSED, syscall.ECONNRESET, syscall.ETIMEDOUT:
				return true
			}
		}
	}

	errStr := strings.ToLower(err.Error())
	networkErrors := []string{
		"connection reset by peer",
		"connection refused",
		"temporary failure",
		"network is unreachable",
		"i/o timeout",
	}
	for _, fragment := range networkErrors {
		if strings.Contains(errStr, fragment) {
			return true
		}
	}
	return false
}

// SetHTTPClient allows overriding the HTTP client for testing
// ⚠️ WARNING: Only use this in tests. Production code should use the default SSRF-safer client.
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = httpclient.WrapClient(client)
}
