package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"paygate/internal/notification"
	"paygate/internal/service"
)

// signatureHeader carries the processor's HMAC over the raw body.
const signatureHeader = "X-Paystack-Signature"

// SignatureValidator checks a webhook body against its signature header.
type SignatureValidator interface {
	ValidateWebhookSignature(body []byte, signatureHeader string) bool
}

// WebhookHandler handles server-to-server webhook deliveries from the
// processor. Responses carry no diagnostic detail: an unauthenticated sender
// learns nothing, and the processor only needs the status code.
type WebhookHandler struct {
	reconcileService *service.ReconcileService
	validator        SignatureValidator
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(reconcileService *service.ReconcileService, validator SignatureValidator) *WebhookHandler {
	return &WebhookHandler{reconcileService: reconcileService, validator: validator}
}

// Handle handles POST /v1/paystack/webhook
func (h *WebhookHandler) Handle(c *gin.Context) {
	signature := c.GetHeader(signatureHeader)
	if signature == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	// Authenticate before any other processing; the signature covers the
	// exact received bytes.
	if !h.validator.ValidateWebhookSignature(body, signature) {
		c.Status(http.StatusBadRequest)
		return
	}

	n, err := notification.ParseWebhook(body)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	_, err = h.reconcileService.Reconcile(c.Request.Context(), service.PathWebhook, n)
	switch {
	case err == nil:
		c.Status(http.StatusOK)
	case errors.Is(err, service.ErrProcessorUnavailable):
		// Let the processor retry the delivery later.
		c.Status(http.StatusBadGateway)
	case errors.Is(err, service.ErrSettlementInProgress):
		// A concurrent notification holds the settlement lock and nothing is
		// recorded yet; a non-2xx makes the processor redeliver.
		c.Status(http.StatusServiceUnavailable)
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrUnknownPayable),
		errors.Is(err, service.ErrInvalidRequest):
		c.Status(http.StatusBadRequest)
	case errors.Is(err, service.ErrVerificationFailed),
		errors.Is(err, service.ErrCurrencyMismatch),
		errors.Is(err, service.ErrAmountMismatch),
		errors.Is(err, service.ErrPaymentNotSuccessful):
		// Admin already alerted; terminate silently so a probing caller
		// cannot distinguish the halt reason.
		c.Status(http.StatusOK)
	default:
		c.Status(http.StatusInternalServerError)
	}
}
