package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"
)

// Client notifies the order-owning storefront about side effects it owns:
// cart clearing, buyer notices and failure emails. Storefront failures are
// never fatal to callback processing.
type Client interface {
	ClearCart(ctx context.Context, orderID int64) error
	NotifyBuyer(ctx context.Context, orderID int64, message string) error
	OrderFailed(ctx context.Context, orderID int64, reason string) error
}

type event struct {
	OrderID int64  `json:"order_id"`
	Message string `json:"message,omitempty"`
}

// HTTPClient delivers storefront events as webhooks.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates a storefront webhook client.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse storefront url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("storefront url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

func (c *HTTPClient) ClearCart(ctx context.Context, orderID int64) error {
	return c.post(ctx, "cart-clear", event{OrderID: orderID})
}

func (c *HTTPClient) NotifyBuyer(ctx context.Context, orderID int64, message string) error {
	return c.post(ctx, "buyer-notice", event{OrderID: orderID, Message: message})
}

func (c *HTTPClient) OrderFailed(ctx context.Context, orderID int64, reason string) error {
	return c.post(ctx, "order-failed", event{OrderID: orderID, Message: reason})
}

func (c *HTTPClient) post(ctx context.Context, name string, payload event) error {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/webhooks/", name)

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		respBody, _ := io.ReadAll(resp.Body)
		c.logger.Error("storefront webhook failed",
			slog.String("event", name),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(respBody)),
		)
		return fmt.Errorf("storefront webhook %s: %s", name, resp.Status)
	}
	return nil
}

// NoopClient is used when no storefront endpoint is configured; events are
// only recorded in the operator log.
type NoopClient struct {
	logger *slog.Logger
}

// NewNoopClient creates a log-only storefront client.
func NewNoopClient(logger *slog.Logger) *NoopClient {
	return &NoopClient{logger: logger}
}

func (c *NoopClient) ClearCart(ctx context.Context, orderID int64) error {
	c.logger.Debug("storefront cart clear skipped", slog.Int64("order_id", orderID))
	return nil
}

func (c *NoopClient) NotifyBuyer(ctx context.Context, orderID int64, message string) error {
	c.logger.Debug("storefront buyer notice skipped",
		slog.Int64("order_id", orderID),
		slog.String("message", message),
	)
	return nil
}

func (c *NoopClient) OrderFailed(ctx context.Context, orderID int64, reason string) error {
	c.logger.Debug("storefront failure notice skipped",
		slog.Int64("order_id", orderID),
		slog.String("reason", reason),
	)
	return nil
}
