package tests

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"paygate/internal/handler"
	"paygate/internal/paystack"
)

// ──────────────────────────────────────────────
// 3. WEBHOOK ENDPOINT
// ──────────────────────────────────────────────

const webhookSecret = "sk_test_webhook"

func signWebhookBody(body []byte) string {
	mac := hmac.New(sha512.New, []byte(webhookSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// newWebhookRouter wires the webhook endpoint with a real signature validator
// and the mock-backed reconciliation engine.
func newWebhookRouter(f *reconcileFixture) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validator := paystack.NewClient(webhookSecret, "pk_test_abc", "https://api.paystack.co", time.Second)
	h := handler.NewWebhookHandler(f.svc, validator)

	r := gin.New()
	r.POST("/v1/paystack/webhook", h.Handle)
	return r
}

func webhookBody() []byte {
	return []byte(`{
		"event": "charge.success",
		"data": {
			"reference": "REF0000000000000000000001",
			"metadata": {
				"custom": "42-7-enrol_fee-fee",
				"amount": "50.00",
				"currency_code": "NGN"
			}
		}
	}`)
}

func postWebhook(r *gin.Engine, body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/paystack/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("X-Paystack-Signature", signature)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWebhook_SignedDeliverySettles(t *testing.T) {
	t.Parallel()

	f := newReconcileFixture()
	r := newWebhookRouter(f)

	body := webhookBody()
	w := postWebhook(r, body, signWebhookBody(body))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if f.payments.CountPayments() != 1 {
		t.Errorf("expected 1 payment record, got %d", f.payments.CountPayments())
	}
	if f.deliverer.CountDeliveries() != 1 {
		t.Errorf("expected 1 delivery, got %d", f.deliverer.CountDeliveries())
	}
}

func TestWebhook_MissingSignature(t *testing.T) {
	t.Parallel()

	f := newReconcileFixture()
	r := newWebhookRouter(f)

	w := postWebhook(r, webhookBody(), "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without a signature, got %d", w.Code)
	}
	if f.processor.VerifyCallCount != 0 {
		t.Error("an unauthenticated delivery must never reach verification")
	}
}

func TestWebhook_TamperedBody(t *testing.T) {
	t.Parallel()

	f := newReconcileFixture()
	r := newWebhookRouter(f)

	signature := signWebhookBody(webhookBody())
	tampered := bytes.Replace(webhookBody(), []byte(`"42-7-`), []byte(`"43-7-`), 1)
	w := postWebhook(r, tampered, signature)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a tampered body, got %d", w.Code)
	}
	if f.payments.CountPayments() != 0 {
		t.Error("no payment record expected for a tampered delivery")
	}
}

func TestWebhook_MalformedMetadata(t *testing.T) {
	t.Parallel()

	f := newReconcileFixture()
	r := newWebhookRouter(f)

	body := []byte(`{"event":"charge.success","data":{"reference":"REF1","metadata":{"custom":"not-a-token"}}}`)
	w := postWebhook(r, body, signWebhookBody(body))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed metadata, got %d", w.Code)
	}
}

func TestWebhook_FraudSignalsTerminateSilently(t *testing.T) {
	t.Parallel()

	// A currency mismatch alerts the admin but answers a plain 200 so a
	// probing caller cannot map the pipeline.
	f := newReconcileFixture()
	f.processor.Result.Currency = "GHS"
	r := newWebhookRouter(f)

	body := webhookBody()
	w := postWebhook(r, body, signWebhookBody(body))

	if w.Code != http.StatusOK {
		t.Fatalf("expected silent 200, got %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("expected an empty body, got %q", w.Body.String())
	}
	if f.admin.CountNotifications() != 1 {
		t.Errorf("expected 1 admin alert, got %d", f.admin.CountNotifications())
	}
	if f.payments.CountPayments() != 0 {
		t.Error("no payment record expected")
	}
}

func TestWebhook_LockContentionAsksForRetry(t *testing.T) {
	t.Parallel()

	// A concurrent redirect holds the settlement lock and nothing is
	// recorded yet; the delivery must not be ACKed or it is never retried.
	f := newReconcileFixture()
	f.locks.ForceAcquireFailure = true
	r := newWebhookRouter(f)

	body := webhookBody()
	w := postWebhook(r, body, signWebhookBody(body))

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 so the processor redelivers, got %d", w.Code)
	}
	if f.payments.CountPayments() != 0 {
		t.Error("no payment record expected while the lock is held")
	}
}

func TestWebhook_ProcessorOutageAsksForRetry(t *testing.T) {
	t.Parallel()

	f := newReconcileFixture()
	f.processor.VerifyError = paystack.ErrUnavailable
	r := newWebhookRouter(f)

	body := webhookBody()
	w := postWebhook(r, body, signWebhookBody(body))

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 so the processor redelivers, got %d", w.Code)
	}
}

func TestWebhook_RedeliveryIsIdempotent(t *testing.T) {
	t.Parallel()

	f := newReconcileFixture()
	r := newWebhookRouter(f)
	body := webhookBody()
	signature := signWebhookBody(body)

	for i := 0; i < 3; i++ {
		if w := postWebhook(r, body, signature); w.Code != http.StatusOK {
			t.Fatalf("delivery %d: expected 200, got %d", i+1, w.Code)
		}
	}

	if f.payments.CountPayments() != 1 {
		t.Errorf("expected exactly 1 payment record after redeliveries, got %d", f.payments.CountPayments())
	}
	if f.deliverer.CountDeliveries() != 1 {
		t.Errorf("expected exactly 1 delivery after redeliveries, got %d", f.deliverer.CountDeliveries())
	}
}
