package postgres

import (
	"context"
	"database/sql"

	"paygate/internal/domain"
)

// DeliveryRepository is a PostgreSQL implementation of
// repository.DeliveryRepository.
type DeliveryRepository struct {
	q Querier
}

// NewDeliveryRepository creates a new PostgreSQL delivery repository.
func NewDeliveryRepository(db *sql.DB) *DeliveryRepository {
	return &DeliveryRepository{q: db}
}

// Insert records a delivered order.
func (r *DeliveryRepository) Insert(ctx context.Context, delivery *domain.OrderDelivery) error {
	query := `
		INSERT INTO order_deliveries (id, payment_id, component, paymentarea, itemid, userid)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.q.ExecContext(ctx, query,
		delivery.ID,
		delivery.PaymentID,
		delivery.Component,
		delivery.PaymentArea,
		delivery.ItemID,
		delivery.UserID,
	)

	return err
}
