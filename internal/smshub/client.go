// Package smshub is a client for the SMSHub rental API: a single GET
// endpoint discriminated by an `action` query parameter, answering in
// colon-delimited plaintext.
package smshub

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smsgrab/smsgrab/internal/order"
)

const defaultTimeout = 15 * time.Second

// Config carries the vendor credentials and rental parameters. All fields
// except Operator are required; Timeout falls back to 15s when zero.
type Config struct {
	APIURL   string
	APIKey   string
	Service  string
	Country  string
	Operator string
	Currency string
	MaxPrice decimal.Decimal
	Timeout  time.Duration
}

// Client issues vendor requests. It is stateless: every method is one
// request/response round trip with a bounded per-call timeout.
type Client struct {
	cfg    Config
	client http.Client
	logger *slog.Logger
}

// NewClient creates a Client for the configured endpoint.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{cfg: cfg, logger: logger}
}

// request performs one GET round trip and returns the trimmed body.
// Transport failures and timeouts come back as ErrUnavailable.
func (c *Client) request(ctx context.Context, action string, params url.Values) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	query := url.Values{}
	query.Set("api_key", c.cfg.APIKey)
	query.Set("action", action)
	for k, vs := range params {
		for _, v := range vs {
			query.Add(k, v)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.APIURL+"?"+query.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("smshub: %s: build request: %w", action, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUnavailable, action, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUnavailable, action, err)
	}

	c.logger.Debug("vendor response", "action", action, "body", string(body))
	return strings.TrimSpace(string(body)), nil
}

// GetBalance queries the account balance in the configured currency.
func (c *Client) GetBalance(ctx context.Context) (decimal.Decimal, error) {
	params := url.Values{}
	params.Set("currency", c.cfg.Currency)

	body, err := c.request(ctx, "getBalance", params)
	if err != nil {
		return decimal.Zero, err
	}
	return parseBalance(body)
}

// BuyNumber rents one number using the configured service, operator,
// country and price ceiling.
func (c *Client) BuyNumber(ctx context.Context) (order.Order, error) {
	params := url.Values{}
	params.Set("service", c.cfg.Service)
	if c.cfg.Operator != "" {
		params.Set("operator", c.cfg.Operator)
	}
	params.Set("country", c.cfg.Country)
	params.Set("maxPrice", c.cfg.MaxPrice.String())
	params.Set("currency", c.cfg.Currency)

	body, err := c.request(ctx, "getNumber", params)
	if err != nil {
		return order.Order{}, err
	}
	id, number, err := parseNumber(body)
	if err != nil {
		return order.Order{}, err
	}
	return order.Order{ID: id, Number: number}, nil
}

// GetOTP polls an order for its passcode. An empty string with a nil
// error means the code has not arrived yet; only transport failures
// produce an error.
func (c *Client) GetOTP(ctx context.Context, orderID string) (string, error) {
	params := url.Values{}
	params.Set("id", orderID)

	body, err := c.request(ctx, "getStatus", params)
	if err != nil {
		return "", err
	}
	otp, ok := parseStatus(body)
	if !ok {
		return "", nil
	}
	return otp, nil
}

// Cancel releases a rented number. Callers treat failures as best-effort:
// a vendor-side orphaned reservation is acceptable collateral.
func (c *Client) Cancel(ctx context.Context, orderID string) error {
	params := url.Values{}
	params.Set("id", orderID)
	params.Set("status", "8")

	body, err := c.request(ctx, "setStatus", params)
	if err != nil {
		return err
	}
	return parseCancel(body)
}
