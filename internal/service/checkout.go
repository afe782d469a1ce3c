package service

import (
	"context"
	"errors"
	"fmt"

	"paygate/internal/config"
	"paygate/internal/domain"
	"paygate/internal/repository"
)

// CheckoutService builds hosted-widget sessions for payment attempts.
type CheckoutService struct {
	userRepo    repository.UserRepository
	payableRepo repository.PayableRepository
	gateway     config.PaystackConfig
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(userRepo repository.UserRepository, payableRepo repository.PayableRepository, gateway config.PaystackConfig) *CheckoutService {
	return &CheckoutService{
		userRepo:    userRepo,
		payableRepo: payableRepo,
		gateway:     gateway,
	}
}

// CreateSession resolves the payable, generates the transaction reference
// and correlation token, and returns the parameters the hosted widget needs.
// Nothing is persisted; the reference round-trips through the processor.
func (s *CheckoutService) CreateSession(ctx context.Context, req domain.CheckoutRequest) (*domain.CheckoutSession, error) {
	if !domain.ValidIdentifier(req.Component) {
		return nil, fmt.Errorf("%w: component %q", ErrInvalidRequest, req.Component)
	}
	if !domain.ValidIdentifier(req.PaymentArea) {
		return nil, fmt.Errorf("%w: paymentarea %q", ErrInvalidRequest, req.PaymentArea)
	}
	if req.ItemID < 0 {
		return nil, fmt.Errorf("%w: itemid %d", ErrInvalidRequest, req.ItemID)
	}
	if req.Description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidRequest)
	}

	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrUserNotFound, req.UserID)
		}
		return nil, err
	}

	payable, err := s.payableRepo.Get(ctx, req.Component, req.PaymentArea, req.ItemID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s/%s/%d", ErrUnknownPayable, req.Component, req.PaymentArea, req.ItemID)
		}
		return nil, err
	}
	if !domain.CurrencySupported(payable.Currency) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, payable.Currency)
	}

	reference, err := domain.NewTransactionReference()
	if err != nil {
		return nil, err
	}

	token := domain.CorrelationToken{
		UserID:      user.ID,
		ItemID:      payable.ItemID,
		Component:   payable.Component,
		PaymentArea: payable.PaymentArea,
	}

	return &domain.CheckoutSession{
		Reference:   reference,
		PublicKey:   s.gateway.PublicKey(),
		Email:       user.Email,
		FullName:    user.FullName(),
		Currency:    payable.Currency,
		AmountMinor: domain.ToMinorUnits(payable.Amount),
		Description: req.Description,
		Custom:      token.String(),
	}, nil
}
