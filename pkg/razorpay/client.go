package razorpay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/wortheat/wortheat-backend/pkg/config"
	pkgerrors "github.com/wortheat/wortheat-backend/pkg/errors"
	"github.com/wortheat/wortheat-backend/pkg/logger"
)

var (
	errKeyIDRequired  = errors.New("razorpay key id is required")
	errSecretRequired = errors.New("razorpay key secret is required")
	errLoggerRequired = errors.New("razorpay logger is required")
)

// Client exposes the Razorpay order primitives with centralized auth,
// logging, and error mapping.
type Client struct {
	httpClient *http.Client
	keyID      string
	keySecret  string
	baseURL    string
	logger     *logger.Logger
}

// OrderParams captures the inputs for creating a gateway order.
// Amount is in the smallest currency unit (paise for INR).
type OrderParams struct {
	AmountCents int
	Currency    string
	Receipt     string
	Notes       map[string]string
}

// Order is the gateway order returned by Razorpay.
type Order struct {
	ID       string `json:"id"`
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// NewClient initializes the Razorpay wrapper and validates the credentials.
func NewClient(ctx context.Context, cfg config.RazorpayConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	keyID := strings.TrimSpace(cfg.KeyID)
	if keyID == "" {
		return nil, errKeyIDRequired
	}
	keySecret := strings.TrimSpace(cfg.KeySecret)
	if keySecret == "" {
		return nil, errSecretRequired
	}

	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		keyID:      keyID,
		keySecret:  keySecret,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		logger:     logg,
	}

	logg.Info(ctx, "razorpay client initialized")
	return c, nil
}

// NewReceipt returns a unique receipt reference for gateway orders.
func NewReceipt(prefix string) string {
	key := strings.TrimSpace(prefix)
	if key == "" {
		key = "we"
	}
	return fmt.Sprintf("%s-%s", key, uuid.NewString())
}

// CreateOrder registers an order with the gateway so the client can open checkout.
func (c *Client) CreateOrder(ctx context.Context, params OrderParams) (*Order, error) {
	if params.AmountCents <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order amount must be positive")
	}
	currency := params.Currency
	if currency == "" {
		currency = "INR"
	}

	body := map[string]any{
		"amount":   params.AmountCents,
		"currency": currency,
		"receipt":  params.Receipt,
	}
	if len(params.Notes) > 0 {
		body["notes"] = params.Notes
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal order request: %w", err)
	}

	c.log(ctx, "request", "create_order", map[string]any{
		"amount":   params.AmountCents,
		"currency": currency,
		"receipt":  params.Receipt,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log(ctx, "error", "create_order", map[string]any{"error": err.Error()})
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "payment gateway unreachable")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "reading payment gateway response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log(ctx, "error", "create_order", map[string]any{
			"status": resp.StatusCode,
			"body":   string(raw),
		})
		return nil, pkgerrors.New(pkgerrors.CodeUpstream, fmt.Sprintf("payment gateway returned status %d", resp.StatusCode))
	}

	var order Order
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "decoding payment gateway response")
	}

	c.log(ctx, "response", "create_order", map[string]any{
		"gateway_order_id": order.ID,
		"status":           order.Status,
	})
	return &order, nil
}

// VerifySignature checks the checkout callback signature: HMAC-SHA256 over
// "<order_id>|<payment_id>" keyed with the key secret, hex encoded. The
// comparison is constant time.
func (c *Client) VerifySignature(orderID, paymentID, signature string) bool {
	return VerifySignature(c.keySecret, orderID, paymentID, signature)
}

// VerifySignature is the key-parameterized form used by tests and tooling.
func VerifySignature(keySecret, orderID, paymentID, signature string) bool {
	if orderID == "" || paymentID == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (c *Client) log(ctx context.Context, stage, operation string, fields map[string]any) {
	if c.logger == nil {
		return
	}
	meta := map[string]any{"gateway": "razorpay", "operation": operation, "stage": stage}
	for k, v := range fields {
		meta[k] = v
	}
	c.logger.Debug(c.logger.WithFields(ctx, meta), "razorpay "+operation)
}
