// Package cardpay talks to the card/wallet provider's order-and-capture API.
// An order is created for the amount up front; capture settles it and the
// payment counts as collected only when capture reports COMPLETED.
package cardpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"sunnyside-shop/internal/domain"
)

const (
	ordersPath = "/v1/orders"

	// statusCompleted is the provider's completed-state token. Capture
	// responses with any other status mean the payment was not collected.
	statusCompleted = "COMPLETED"
)

type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Currency     string
	Timeout      time.Duration
}

type Client struct {
	cfg    Config
	http   *http.Client
	logger *log.Logger
}

func New(cfg Config, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if cfg.Currency == "" {
		cfg.Currency = "SGD"
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

type createOrderRequest struct {
	// AmountMinor is in minor units (cents). This provider is the only one
	// that takes cents; sending major units here would undercharge 100x.
	AmountMinor int64  `json:"amountMinor"`
	Currency    string `json:"currency"`
}

type orderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// CreateIntent creates a provider order for the amount and returns a PENDING
// intent carrying the provider's order id.
func (c *Client) CreateIntent(ctx context.Context, amountCents int64) (*domain.PaymentIntent, error) {
	var out orderResponse
	if err := c.post(ctx, ordersPath, createOrderRequest{AmountMinor: amountCents, Currency: c.cfg.Currency}, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, fmt.Errorf("order create returned no id: %w", domain.ErrGatewayUnavailable)
	}

	return &domain.PaymentIntent{
		Provider:    domain.ProviderCard,
		AmountCents: amountCents,
		ExternalRef: out.ID,
		Status:      domain.IntentPending,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// Confirm captures the order. Only the COMPLETED status token counts as a
// confirmed payment; anything else the provider returns is a decline.
func (c *Client) Confirm(ctx context.Context, intent *domain.PaymentIntent) error {
	var out orderResponse
	path := fmt.Sprintf("%s/%s/capture", ordersPath, intent.ExternalRef)
	if err := c.post(ctx, path, struct{}{}, &out); err != nil {
		return err
	}
	if out.Status != statusCompleted {
		c.logger.Printf("cardpay: capture order_id=%s status=%s", intent.ExternalRef, out.Status)
		return domain.ErrPaymentNotConfirmed
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Printf("cardpay: %s transport error=%v", path, err)
		return fmt.Errorf("card gateway call failed: %w", domain.ErrGatewayUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Printf("cardpay: %s status=%d", path, resp.StatusCode)
		return fmt.Errorf("card gateway returned status %d: %w", resp.StatusCode, domain.ErrGatewayUnavailable)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
