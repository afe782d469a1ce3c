package service

import (
	"context"

	"github.com/google/uuid"

	"paygate/internal/domain"
	"paygate/internal/repository"
)

// DeliveryService grants the purchased entitlement by recording an order
// delivery. It stands in for the host platform's deliver-order helper.
type DeliveryService struct {
	deliveryRepo repository.DeliveryRepository
}

// NewDeliveryService creates a new DeliveryService.
func NewDeliveryService(deliveryRepo repository.DeliveryRepository) *DeliveryService {
	return &DeliveryService{deliveryRepo: deliveryRepo}
}

// DeliverOrder records the entitlement grant for a settled payment. Returns
// false when the grant could not be recorded; the caller reports this as an
// incomplete delivery rather than retrying.
func (s *DeliveryService) DeliverOrder(ctx context.Context, component, paymentArea string, itemID int64, paymentID string, userID int64) (bool, error) {
	delivery := &domain.OrderDelivery{
		ID:          uuid.New().String(),
		PaymentID:   paymentID,
		Component:   component,
		PaymentArea: paymentArea,
		ItemID:      itemID,
		UserID:      userID,
	}

	if err := s.deliveryRepo.Insert(ctx, delivery); err != nil {
		return false, err
	}

	return true, nil
}
