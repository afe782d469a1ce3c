package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"paygate/internal/domain"
	"paygate/internal/service"
)

// CheckoutHandler handles HTTP requests for checkout sessions.
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// CreateSessionRequest is the HTTP request body for creating a checkout
// session.
type CreateSessionRequest struct {
	Component   string `json:"component"`
	PaymentArea string `json:"paymentarea"`
	ItemID      int64  `json:"itemid"`
	Description string `json:"description"`
	UserID      int64  `json:"userid"`
}

// CheckoutSessionResponse carries the hosted-widget parameters back to the
// host's checkout page.
type CheckoutSessionResponse struct {
	Reference   string `json:"reference"`
	PublicKey   string `json:"public_key"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	Currency    string `json:"currency"`
	AmountMinor int64  `json:"amount"`
	Description string `json:"description"`
	Custom      string `json:"custom"`
}

// CreateSession handles POST /v1/checkout/session
func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Component == "" || req.PaymentArea == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "component and paymentarea are required"})
		return
	}

	session, err := h.checkoutService.CreateSession(c.Request.Context(), domain.CheckoutRequest{
		Component:   req.Component,
		PaymentArea: req.PaymentArea,
		ItemID:      req.ItemID,
		Description: req.Description,
		UserID:      req.UserID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, CheckoutSessionResponse{
		Reference:   session.Reference,
		PublicKey:   session.PublicKey,
		Email:       session.Email,
		FullName:    session.FullName,
		Currency:    session.Currency,
		AmountMinor: session.AmountMinor,
		Description: session.Description,
		Custom:      session.Custom,
	})
}
