package repository

import (
	"context"

	"paygate/internal/domain"
)

// DeliveryRepository persists granted entitlements.
type DeliveryRepository interface {
	// Insert records a delivered order.
	Insert(ctx context.Context, delivery *domain.OrderDelivery) error
}
