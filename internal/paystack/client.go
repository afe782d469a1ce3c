package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"paygate/internal/domain"
)

// ErrUnavailable is returned when the processor cannot be reached or does not
// answer in time. Callers decide whether to retry; the client never does.
var ErrUnavailable = errors.New("paystack unavailable")

// trackerURL receives best-effort success logs after settlement.
const trackerURL = "https://plugin-tracker.paystackintegrations.com/log/charge_success"

// VerificationResult is the processor's authoritative view of a transaction.
type VerificationResult struct {
	Status          bool
	AmountMinor     int64
	Currency        string
	GatewayResponse string
	PaymentStatus   domain.PaymentStatus
}

// Client talks to the Paystack REST API.
type Client struct {
	secretKey  string
	publicKey  string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Paystack client. The timeout bounds every outbound
// call; a timeout surfaces as ErrUnavailable.
func NewClient(secretKey, publicKey, baseURL string, timeout time.Duration) *Client {
	return &Client{
		secretKey:  secretKey,
		publicKey:  publicKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// verifyResponse mirrors the transaction/verify payload.
type verifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status          string `json:"status"`
		Reference       string `json:"reference"`
		Amount          int64  `json:"amount"`
		Currency        string `json:"currency"`
		GatewayResponse string `json:"gateway_response"`
	} `json:"data"`
}

// VerifyTransaction queries the processor for the authoritative state of the
// given reference. A transaction the processor does not know, or reports as
// unsuccessful, yields Status=false with a nil error; only transport-level
// failures are errors.
func (c *Client) VerifyTransaction(ctx context.Context, reference string) (*VerificationResult, error) {
	url := fmt.Sprintf("%s/transaction/verify/%s", c.baseURL, reference)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create verify request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var body verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: invalid response: %v", ErrUnavailable, err)
	}

	result := &VerificationResult{
		Status:          body.Status,
		AmountMinor:     body.Data.Amount,
		Currency:        body.Data.Currency,
		GatewayResponse: body.Data.GatewayResponse,
		PaymentStatus:   domain.PaymentStatus(body.Data.Status),
	}
	if result.GatewayResponse == "" {
		result.GatewayResponse = body.Message
	}
	return result, nil
}

// LogTransactionSuccess reports a settled reference to Paystack's plugin
// tracker. Best-effort: failures are logged and swallowed.
func (c *Client) LogTransactionSuccess(ctx context.Context, reference string) {
	payload, err := json.Marshal(map[string]string{
		"plugin_name":           "paygate",
		"transaction_reference": reference,
		"public_key":            c.publicKey,
	})
	if err != nil {
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, trackerURL, bytes.NewReader(payload))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("paystack: tracker log failed for %s: %v", reference, err)
		return
	}
	resp.Body.Close()
}
