// Package endpoint posts form payloads to the configured submission endpoints.
package endpoint

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/garyjia/travel-forms/internal/application/port"
)

// maxResponseBytes bounds how much of a response body is read
const maxResponseBytes = 1 << 20

// HTTPClient interface for testability
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds endpoint client configuration
type Config struct {
	URLs    map[port.Form]string
	Timeout time.Duration
}

// Client implements port.FormSubmitter
type Client struct {
	urls       map[port.Form]string
	httpClient HTTPClient
	logger     *zap.Logger
}

// response is the body every endpoint answers with
type response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// NewClient creates a new endpoint client
func NewClient(cfg Config, logger *zap.Logger) *Client {
	urls := make(map[port.Form]string, len(cfg.URLs))
	for form, url := range cfg.URLs {
		urls[form] = url
	}
	return &Client{
		urls:       urls,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// WithHTTPClient replaces the underlying HTTP client
func (c *Client) WithHTTPClient(httpClient HTTPClient) *Client {
	c.httpClient = httpClient
	return c
}

// Submit posts payload as JSON to the endpoint of form.
// Implements port.FormSubmitter interface
func (c *Client) Submit(ctx context.Context, form port.Form, payload interface{}) error {
	url, ok := c.urls[form]
	if !ok || url == "" {
		return fmt.Errorf("no endpoint configured for form %q", form)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", form, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Submission request failed",
			zap.String("form", string(form)),
			zap.Error(err))
		return fmt.Errorf("failed to post %s: %w", form, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", form, err)
	}

	var result response
	decodeErr := json.Unmarshal(raw, &result)

	c.logger.Info("Submission response received",
		zap.String("form", string(form)),
		zap.Int("status", resp.StatusCode),
		zap.Int("payload_bytes", len(body)),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := ""
		if decodeErr == nil {
			message = result.Error
		}
		return &port.RejectionError{StatusCode: resp.StatusCode, Message: message}
	}

	if decodeErr != nil {
		c.logger.Error("Undecodable submission response",
			zap.String("form", string(form)),
			zap.Int("status", resp.StatusCode),
			zap.Error(decodeErr))
		return &port.RejectionError{StatusCode: resp.StatusCode}
	}

	if !result.Success {
		return &port.RejectionError{StatusCode: resp.StatusCode, Message: result.Error}
	}

	return nil
}
