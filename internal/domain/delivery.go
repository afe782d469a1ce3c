package domain

import "time"

// OrderDelivery records a granted entitlement: the host's "deliver order"
// step, one row per settled payment.
type OrderDelivery struct {
	ID          string
	PaymentID   string
	Component   string
	PaymentArea string
	ItemID      int64
	UserID      int64
	CreatedAt   time.Time
}
