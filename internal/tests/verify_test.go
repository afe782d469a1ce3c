package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"paygate/internal/handler"
	"paygate/internal/paystack"
)

// ──────────────────────────────────────────────
// 4. REDIRECT VERIFICATION ENDPOINT
// ──────────────────────────────────────────────

const testSuccessURL = "/payment/success"

func newVerifyRouter(f *reconcileFixture) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewVerifyHandler(f.svc, testSuccessURL)

	r := gin.New()
	r.POST("/v1/paystack/verify", h.Verify)
	return r
}

func verifyForm() url.Values {
	return url.Values{
		"paystack-trxref": {"REF0000000000000000000001"},
		"custom":          {"42-7-enrol_fee-fee"},
		"amount":          {"50.00"},
		"currency_code":   {"NGN"},
	}
}

func postVerify(r *gin.Engine, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeVerifyResponse(t *testing.T, w *httptest.ResponseRecorder) handler.VerifyResponse {
	t.Helper()
	var res handler.VerifyResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return res
}

func TestVerify_SuccessfulRedirect(t *testing.T) {
	t.Parallel()

	f := newReconcileFixture()
	r := newVerifyRouter(f)

	w := postVerify(r, "/v1/paystack/verify", verifyForm())
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	res := decodeVerifyResponse(t, w)
	if res.Status != "thanks" {
		t.Errorf("expected thanks status, got %q", res.Status)
	}
	if res.RedirectURL != testSuccessURL {
		t.Errorf("expected redirect to %q, got %q", testSuccessURL, res.RedirectURL)
	}
	if f.payments.CountPayments() != 1 {
		t.Errorf("expected 1 payment record, got %d", f.payments.CountPayments())
	}
}

func TestVerify_QueryParametersRejected(t *testing.T) {
	t.Parallel()

	f := newReconcileFixture()
	r := newVerifyRouter(f)

	w := postVerify(r, "/v1/paystack/verify?probe=1", verifyForm())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for query parameters, got %d", w.Code)
	}
	if f.processor.VerifyCallCount != 0 {
		t.Error("a rejected request must never reach verification")
	}
}

func TestVerify_MissingTrxref(t *testing.T) {
	t.Parallel()

	f := newReconcileFixture()
	r := newVerifyRouter(f)

	form := verifyForm()
	form.Del("paystack-trxref")
	w := postVerify(r, "/v1/paystack/verify", form)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without trxref, got %d", w.Code)
	}
}

func TestVerify_FailedChargeShowsGenericNotice(t *testing.T) {
	t.Parallel()

	f := newReconcileFixture()
	f.processor.SetResult(&paystack.VerificationResult{
		Status:          false,
		GatewayResponse: "Declined by issuer",
	})
	r := newVerifyRouter(f)

	w := postVerify(r, "/v1/paystack/verify", verifyForm())
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	res := decodeVerifyResponse(t, w)
	if res.Status != "notice" {
		t.Errorf("expected notice status, got %q", res.Status)
	}
	if strings.Contains(res.Message, "Declined") {
		t.Error("processor detail must not leak to the browser")
	}
	// Redirect path never alerts the admin on a bare verification failure.
	if f.admin.CountNotifications() != 0 {
		t.Errorf("expected no admin alerts, got %d", f.admin.CountNotifications())
	}
}

func TestVerify_DeliveryFailureShowsSorry(t *testing.T) {
	t.Parallel()

	f := newReconcileFixture()
	f.deliverer.ForceDeliveryFailure = true
	r := newVerifyRouter(f)

	w := postVerify(r, "/v1/paystack/verify", verifyForm())
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	res := decodeVerifyResponse(t, w)
	if res.Status != "sorry" {
		t.Errorf("expected sorry status, got %q", res.Status)
	}
	if f.payments.CountPayments() != 1 {
		t.Error("payment must still be recorded when delivery fails")
	}
}

func TestVerify_LockContentionAsksForRetry(t *testing.T) {
	t.Parallel()

	f := newReconcileFixture()
	f.locks.ForceAcquireFailure = true
	r := newVerifyRouter(f)

	w := postVerify(r, "/v1/paystack/verify", verifyForm())
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 while another notification settles, got %d", w.Code)
	}
	if f.payments.CountPayments() != 0 {
		t.Error("no payment record expected while the lock is held")
	}
}

func TestVerify_ProcessorOutage(t *testing.T) {
	t.Parallel()

	f := newReconcileFixture()
	f.processor.VerifyError = paystack.ErrUnavailable
	r := newVerifyRouter(f)

	w := postVerify(r, "/v1/paystack/verify", verifyForm())
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 during a processor outage, got %d", w.Code)
	}
}

func TestVerify_ReplayAfterSettlementStillThanks(t *testing.T) {
	t.Parallel()

	f := newReconcileFixture()
	r := newVerifyRouter(f)

	first := postVerify(r, "/v1/paystack/verify", verifyForm())
	if first.Code != http.StatusOK {
		t.Fatalf("expected 200 on first redirect, got %d", first.Code)
	}

	// The user refreshes the callback page.
	second := postVerify(r, "/v1/paystack/verify", verifyForm())
	if second.Code != http.StatusOK {
		t.Fatalf("expected 200 on replay, got %d", second.Code)
	}
	res := decodeVerifyResponse(t, second)
	if res.Status != "thanks" {
		t.Errorf("a replayed settled redirect still thanks the user, got %q", res.Status)
	}
	if f.payments.CountPayments() != 1 {
		t.Errorf("expected exactly 1 payment record, got %d", f.payments.CountPayments())
	}
}
