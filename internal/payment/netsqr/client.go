// Package netsqr talks to the NETS-style QR push-payment sandbox. The shopper
// scans a QR code; confirmation comes from a server-to-server status query
// with the transaction retrieval reference, never from the client.
package netsqr

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

	"github.com/google/uuid"
)

const (
	requestPath = "/api/v1/common/payments/nets-qr/request"
	queryPath   = "/api/v1/common/payments/nets-qr/query"

	// txnStatusPaid is the provider's completed-state code in query
	// responses; anything else is not a confirmed payment.
	txnStatusPaid = 1
)

type Config struct {
	BaseURL   string
	APIKey    string
	ProjectID string
	Timeout   time.Duration
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
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

type qrRequest struct {
	TxnID        string `json:"txn_id"`
	AmtInDollars string `json:"amt_in_dollars"`
	NotifyMobile int    `json:"notify_mobile"`
}

type queryRequest struct {
	TxnRetrievalRef string `json:"txn_retrieval_ref"`
}

type envelope struct {
	Result struct {
		Data providerData `json:"data"`
	} `json:"result"`
}

type providerData struct {
	ResponseCode    string `json:"response_code"`
	TxnStatus       int    `json:"txn_status"`
	QRCode          string `json:"qr_code"`
	TxnRetrievalRef string `json:"txn_retrieval_ref"`
	NetworkStatus   int    `json:"network_status"`
}

// CreateIntent requests a QR code for the amount. The provider takes major
// units with two-decimal formatting ("20.00"), not cents.
func (c *Client) CreateIntent(ctx context.Context, amountCents int64) (*domain.PaymentIntent, error) {
	body := qrRequest{
		TxnID:        fmt.Sprintf("sunnyside|m|%s", uuid.NewString()),
		AmtInDollars: domain.FormatCents(amountCents),
		NotifyMobile: 0,
	}

	data, err := c.post(ctx, requestPath, body)
	if err != nil {
		return nil, err
	}
	if data.ResponseCode != "00" || data.TxnStatus != txnStatusPaid || data.QRCode == "" || data.TxnRetrievalRef == "" {
		c.logger.Printf("netsqr: qr request rejected response_code=%s txn_status=%d", data.ResponseCode, data.TxnStatus)
		return nil, fmt.Errorf("qr request rejected (code %s): %w", data.ResponseCode, domain.ErrGatewayUnavailable)
	}

	return &domain.PaymentIntent{
		Provider:    domain.ProviderNETSQR,
		AmountCents: amountCents,
		ExternalRef: data.TxnRetrievalRef,
		QRCode:      data.QRCode,
		Status:      domain.IntentPending,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// Confirm queries the transaction status with the retrieval reference.
func (c *Client) Confirm(ctx context.Context, intent *domain.PaymentIntent) error {
	data, err := c.post(ctx, queryPath, queryRequest{TxnRetrievalRef: intent.ExternalRef})
	if err != nil {
		return err
	}
	if data.ResponseCode != "00" {
		return fmt.Errorf("status query rejected (code %s): %w", data.ResponseCode, domain.ErrGatewayUnavailable)
	}
	if data.TxnStatus != txnStatusPaid {
		c.logger.Printf("netsqr: txn_retrieval_ref=%s not paid txn_status=%d", intent.ExternalRef, data.TxnStatus)
		return domain.ErrPaymentNotConfirmed
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, body any) (*providerData, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("api-key", c.cfg.APIKey)
	req.Header.Set("project-id", c.cfg.ProjectID)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Printf("netsqr: %s transport error=%v", path, err)
		return nil, fmt.Errorf("nets call failed: %w", domain.ErrGatewayUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Printf("netsqr: %s status=%d", path, resp.StatusCode)
		return nil, fmt.Errorf("nets returned status %d: %w", resp.StatusCode, domain.ErrGatewayUnavailable)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode nets response: %w", domain.ErrGatewayUnavailable)
	}
	return &env.Result.Data, nil
}
