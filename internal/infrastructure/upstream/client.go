package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/checkout"
)

const (
	// apiKeyHeader carries the commerce API credential
	apiKeyHeader = "X-API-KEY"
	// idempotencyKeyHeader protects the place-order retry from creating
	// a duplicate order on the server
	idempotencyKeyHeader = "X-Idempotency-Key"
	// maxResponseSize is the maximum allowed response size (10MB)
	maxResponseSize = 10 * 1024 * 1024
)

// Client talks to the commerce API: category listing and order placement.
// It performs no field validation; that happens upstream in the checkout
// service before an order ever reaches this client.
type Client struct {
	config     *Config
	httpClient *http.Client
	logger     *zap.Logger
}

// ClientOption is a functional option for the Client
type ClientOption func(*Client)

// WithClientLogger sets the logger used for request diagnostics
func WithClientLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient replaces the underlying HTTP client, mainly for tests
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a commerce API client
func NewClient(config *Config, opts ...ClientOption) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// ListCategories fetches the category listing with nested products for the
// given language code. No retries; staleness and caching are the caller's
// concern.
func (c *Client) ListCategories(ctx context.Context, language string) ([]catalog.Category, error) {
	endpoint := fmt.Sprintf("%s/get-categories/%s?language=%s",
		c.config.BaseURL, c.config.StoreID, url.QueryEscape(language))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("upstream: failed to create request: %w", err)
	}
	req.Header.Set(apiKeyHeader, c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("upstream: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrRequestFailed, resp.StatusCode)
	}

	var envelope categoriesResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	return envelope.Data, nil
}

// PlaceOrder submits an order and returns the payment handoff. Because
// this call mutates server state, a transport failure or 5xx is retried
// exactly once under a stable idempotency key; 4xx responses propagate
// immediately.
func (c *Client) PlaceOrder(ctx context.Context, order checkout.OrderRequest) (*PlaceOrderResponse, error) {
	payload := orderPayload{
		FullName:          order.FullName,
		Email:             order.Email,
		ContactNumber:     order.ContactNumber,
		ShippingAddress:   order.ShippingAddress,
		Notes:             order.Notes,
		TransactionAmount: json.Number(order.TransactionAmount.StringFixed(2)),
		OrderDeliveryDate: order.OrderDeliveryDate,
	}
	for _, p := range order.Products {
		payload.Products = append(payload.Products, orderProduct{ID: p.ID, Quantity: p.Quantity})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("upstream: failed to marshal order: %w", err)
	}

	endpoint := c.config.BaseURL + "/place-order?language=en"
	idempotencyKey := uuid.NewString()

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			c.logger.Warn("retrying order submission",
				zap.String("idempotency_key", idempotencyKey),
				zap.Error(lastErr),
			)
		}

		resp, retryable, err := c.doPlaceOrder(ctx, endpoint, body, idempotencyKey)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !retryable {
			break
		}
		if ctx.Err() != nil {
			break
		}
	}

	return nil, lastErr
}

// doPlaceOrder performs a single order submission attempt. The second
// return value reports whether the failure is safe to retry.
func (c *Client) doPlaceOrder(ctx context.Context, endpoint string, body []byte, idempotencyKey string) (*PlaceOrderResponse, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("upstream: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apiKeyHeader, c.config.APIKey)
	req.Header.Set(idempotencyKeyHeader, idempotencyKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, true, fmt.Errorf("upstream: failed to read response: %w", err)
	}

	if resp.StatusCode >= 500 {
		return nil, true, fmt.Errorf("%w: HTTP %d", ErrRequestFailed, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return nil, false, fmt.Errorf("%w: HTTP %d", ErrRequestFailed, resp.StatusCode)
	}

	var envelope placeOrderResponseEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if envelope.Data.TransactionURL == "" {
		return nil, false, fmt.Errorf("%w: missing transactionUrl", ErrInvalidResponse)
	}

	return &envelope.Data, false, nil
}
