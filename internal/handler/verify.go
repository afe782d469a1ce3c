package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"paygate/internal/notification"
	"paygate/internal/service"
)

// VerifyHandler handles the browser redirect callback from the hosted
// widget.
type VerifyHandler struct {
	reconcileService *service.ReconcileService
	successURL       string
}

// NewVerifyHandler creates a new VerifyHandler.
func NewVerifyHandler(reconcileService *service.ReconcileService, successURL string) *VerifyHandler {
	return &VerifyHandler{reconcileService: reconcileService, successURL: successURL}
}

// VerifyResponse tells the host's payment page what to show the user. The
// message is deliberately generic; diagnostic detail goes to the admin
// channel, not the browser.
type VerifyResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	RedirectURL string `json:"redirect_url,omitempty"`
}

const (
	verifyStatusThanks = "thanks"
	verifyStatusSorry  = "sorry"
	verifyStatusNotice = "notice"

	messageThanks = "Thanks for your payment"
	messageSorry  = "Sorry, the payment didn't proceed."
)

// Verify handles POST /v1/paystack/verify
func (h *VerifyHandler) Verify(c *gin.Context) {
	// Keep out casual intruders: strictly a form POST, no query parameters.
	if c.Request.URL.RawQuery != "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
		return
	}
	if err := c.Request.ParseForm(); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
		return
	}

	n, err := notification.ParseForm(c.Request.PostForm)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
		return
	}

	result, err := h.reconcileService.Reconcile(c.Request.Context(), service.PathRedirect, n)
	if err != nil {
		h.respondVerifyError(c, err)
		return
	}

	switch result.Outcome {
	case service.OutcomeDeliveryFailed:
		// Payment recorded but entitlement grant incomplete; operator
		// follow-up required, the user gets the sorry page.
		respondJSON(c, http.StatusOK, VerifyResponse{
			Status:  verifyStatusSorry,
			Message: messageSorry,
		})
	default:
		respondJSON(c, http.StatusOK, VerifyResponse{
			Status:      verifyStatusThanks,
			Message:     messageThanks,
			RedirectURL: h.successURL,
		})
	}
}

// respondVerifyError maps pipeline errors onto the redirect path's
// user-facing outcomes.
func (h *VerifyHandler) respondVerifyError(c *gin.Context, err error) {
	switch {
	// Payment-level failures show an apology notice, nothing more.
	case errors.Is(err, service.ErrVerificationFailed),
		errors.Is(err, service.ErrPaymentNotSuccessful),
		errors.Is(err, service.ErrCurrencyMismatch),
		errors.Is(err, service.ErrAmountMismatch):
		respondJSON(c, http.StatusOK, VerifyResponse{
			Status:      verifyStatusNotice,
			Message:     messageSorry,
			RedirectURL: h.successURL,
		})
	case errors.Is(err, service.ErrProcessorUnavailable):
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "payment processor unavailable"})
	case errors.Is(err, service.ErrSettlementInProgress):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "payment is being processed, retry shortly"})
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrUnknownPayable),
		errors.Is(err, service.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
