// Package tmsapi submits assembled orders to the TMS order entry API over
// retryable HTTP. Submission is optional: the pipeline's primary output is
// the order document itself, and a submission failure never invalidates a
// completed transformation.
package tmsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/shivanished/boon-pipeline/internal/tms"
)

// ErrSubmitRejected indicates the TMS API refused the order.
var ErrSubmitRejected = errors.New("order submission rejected")

// SubmitResponse is the TMS API's acknowledgment of an accepted order.
type SubmitResponse struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

// Client talks to the TMS order entry API.
type Client struct {
	http    *retryablehttp.Client
	baseURL string
	token   string
	logger  *slog.Logger
}

// New creates a Client. Transient failures (5xx, connection errors) retry
// with backoff up to the configured maximum.
func New(cfg *Config, logger *slog.Logger) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.RetryMax
	rc.HTTPClient.Timeout = time.Duration(cfg.Timeout) * time.Second
	rc.Logger = nil

	return &Client{
		http:    rc,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		token:   cfg.AuthToken,
		logger:  logger.With("system", "tmsapi"),
	}
}

// SubmitOrder posts an order to the order entry endpoint and returns the
// API's acknowledgment. A 4xx response returns ErrSubmitRejected with the
// response body; retries are exhausted before a 5xx surfaces as an error.
func (c *Client) SubmitOrder(ctx context.Context, order *tms.OrderEntryRequest) (*SubmitResponse, error) {
	payload, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("encode order: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", payload)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit order: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		c.logger.Warn("order submission rejected", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("%w: status %d: %s", ErrSubmitRejected, resp.StatusCode, string(body))
	}

	var ack SubmitResponse
	if len(body) > 0 {
		if err := json.Unmarshal(body, &ack); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
	}

	c.logger.Info("order submitted", "order_id", ack.OrderID, "status", ack.Status)
	return &ack, nil
}
