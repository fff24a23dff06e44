package factory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jwtpizza/pizza-service/pkg/logger"
)

var (
	// ErrInvalidConfig is returned when the factory URL is missing
	ErrInvalidConfig = errors.New("invalid factory config")

	// ErrOrderRejected is returned when the factory answers with a non-success status
	ErrOrderRejected = errors.New("factory rejected order")
)

// Config represents the configuration for the factory client
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrInvalidConfig
	}
	return nil
}

// Diner identifies who placed the order.
type Diner struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OrderRequest is the body of POST /api/order on the factory.
type OrderRequest struct {
	Diner Diner       `json:"diner"`
	Order interface{} `json:"order"`
}

// OrderResponse is what the factory returns, on success and on failure.
// JWT is only set when the order was accepted.
type OrderResponse struct {
	ReportURL string `json:"reportUrl"`
	JWT       string `json:"jwt"`
	Message   string `json:"message,omitempty"`
}

// Client submits orders to the pizza factory
type Client struct {
	config     Config
	httpClient *http.Client
}

func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// BaseURL is reported by the docs endpoint.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// SubmitOrder forwards an order for fulfillment. When the factory declines the
// order the decoded response is still returned, together with an error wrapping
// ErrOrderRejected, so callers can surface the report URL.
func (c *Client) SubmitOrder(ctx context.Context, req OrderRequest) (*OrderResponse, error) {
	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	url := c.config.BaseURL + "/api/order"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	logger.Debug("Submitting order to factory", map[string]interface{}{
		"url":      url,
		"diner_id": req.Diner.ID,
	})

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("factory request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var orderResp OrderResponse
	if len(body) > 0 {
		if err := json.Unmarshal(body, &orderResp); err != nil && resp.StatusCode < 300 {
			return nil, fmt.Errorf("failed to unmarshal factory response: %w", err)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &orderResp, fmt.Errorf("%w: status %d", ErrOrderRejected, resp.StatusCode)
	}

	return &orderResp, nil
}
