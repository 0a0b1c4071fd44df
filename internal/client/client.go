package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Credentials are passed through to the backend verbatim.
type Credentials struct {
	StudentID string `json:"studentId"`
	Password  string `json:"password"`
}

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
}

// Client fetches CGPA records from the backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	logger     *zap.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client. The default has no timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a client for the backend at baseURL. An empty baseURL is
// accepted; requests against it fail at call time.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		userAgent:  "nile-cgpa/1.0",
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Submit posts the credentials to {baseURL}/cgpa and returns the records the
// backend sent back. requestID is forwarded as X-Request-ID when non-empty.
func (c *Client) Submit(ctx context.Context, requestID string, creds Credentials) ([]Record, error) {
	body, err := json.Marshal(creds)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/cgpa", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("cgpa request failed",
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	c.logger.Debug("cgpa response",
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	records, err := DecodeRecords(resp.Body)
	if err != nil {
		return nil, err
	}
	return records, nil
}
