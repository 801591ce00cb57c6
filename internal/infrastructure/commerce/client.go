// internal/infrastructure/commerce/client.go
package commerce

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

	"github.com/cryai2821/pizza-wale-fe/internal/config"
	"github.com/cryai2821/pizza-wale-fe/internal/domain/identity"
	"github.com/cryai2821/pizza-wale-fe/internal/domain/menu"
	"github.com/cryai2821/pizza-wale-fe/internal/domain/order"
	"github.com/cryai2821/pizza-wale-fe/internal/pkg/auth"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxErrorBody = 64 << 10

var (
	_ menu.Source      = (*Client)(nil)
	_ identity.Gateway = (*Client)(nil)
	_ order.Gateway    = (*Client)(nil)
)

// Client calls the remote commerce API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates a commerce API client with a traced transport
func NewClient(cfg *config.Config, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.Commerce.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   cfg.Commerce.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}
}

// FetchMenu implements menu.Source. A payload that is not a list of
// categories yields no categories.
func (c *Client) FetchMenu(ctx context.Context, shopID string) ([]menu.RawCategory, error) {
	var raw json.RawMessage
	path := fmt.Sprintf("/shops/%s/menu", url.PathEscape(shopID))
	if err := c.do(ctx, http.MethodGet, path, "", nil, &raw); err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return []menu.RawCategory{}, nil
	}

	var categories []menu.RawCategory
	if err := json.Unmarshal(trimmed, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode menu: %w", err)
	}
	return categories, nil
}

// SendOTP implements identity.Gateway
func (c *Client) SendOTP(ctx context.Context, phone string) error {
	body := map[string]string{"phone": phone}
	return c.do(ctx, http.MethodPost, "/auth/otp/send", "", body, nil)
}

// verifyOTPResponse represents the OTP verification response
type verifyOTPResponse struct {
	AccessToken string        `json:"access_token"`
	User        identity.User `json:"user"`
}

// VerifyOTP implements identity.Gateway
func (c *Client) VerifyOTP(ctx context.Context, phone, otp string) (string, identity.User, error) {
	body := map[string]string{"phone": phone, "otp": otp}

	var resp verifyOTPResponse
	if err := c.do(ctx, http.MethodPost, "/auth/otp/verify", "", body, &resp); err != nil {
		return "", identity.User{}, err
	}
	if resp.AccessToken == "" {
		return "", identity.User{}, fmt.Errorf("commerce api returned no access token")
	}
	return resp.AccessToken, resp.User, nil
}

// CreateOrder implements order.Gateway
func (c *Client) CreateOrder(ctx context.Context, token string, req order.CreateOrderRequest) (*order.Order, error) {
	var created order.Order
	if err := c.do(ctx, http.MethodPost, "/orders", token, req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// MyOrders implements order.Gateway
func (c *Client) MyOrders(ctx context.Context, token string) ([]order.Order, error) {
	var orders []order.Order
	if err := c.do(ctx, http.MethodGet, "/orders/my-orders", token, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder implements order.Gateway
func (c *Client) GetOrder(ctx context.Context, token, orderID string) (*order.Order, error) {
	var o order.Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(orderID), token, nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", auth.BearerHeader(token))
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
			"error":  err.Error(),
		}).Error("Commerce API request failed")
		return fmt.Errorf("commerce api %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.WithFields(logrus.Fields{
		"method":   method,
		"path":     path,
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	}).Debug("Commerce API request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return parseAPIError(resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}
