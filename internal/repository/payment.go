package repository

import (
	"context"

	"paygate/internal/domain"
)

// PaymentRepository defines the persistence operations on the host ledger.
type PaymentRepository interface {
	// Insert persists a new payment record. Returns ErrDuplicate when a
	// record with the same settlement key already exists; the storage layer
	// enforces this with a unique constraint, so concurrent inserts for the
	// same key cannot both succeed.
	Insert(ctx context.Context, payment *domain.PaymentRecord) error

	// Exists reports whether a payment record exists for the settlement key.
	Exists(ctx context.Context, key domain.SettlementKey) (bool, error)
}

// TransactionRepository stores the gateway's diagnostic transaction records.
type TransactionRepository interface {
	// Insert persists the diagnostic record for a processed notification.
	Insert(ctx context.Context, tx *domain.GatewayTransaction) error
}
