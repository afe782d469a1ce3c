package postgres

import (
	"context"
	"database/sql"

	"paygate/internal/domain"
)

// TransactionRepository is a PostgreSQL implementation of
// repository.TransactionRepository.
type TransactionRepository struct {
	q Querier
}

// NewTransactionRepository creates a new PostgreSQL transaction repository.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{q: db}
}

// Insert persists the diagnostic record for a processed notification.
func (r *TransactionRepository) Insert(ctx context.Context, tx *domain.GatewayTransaction) error {
	query := `
		INSERT INTO paystack_transactions
			(id, reference, component, paymentarea, itemid, userid, payment_gross, currency, tax, memo, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.q.ExecContext(ctx, query,
		tx.ID,
		tx.Reference,
		tx.Component,
		tx.PaymentArea,
		tx.ItemID,
		tx.UserID,
		tx.PaymentGross,
		tx.Currency,
		tx.Tax,
		tx.Memo,
		tx.PaymentStatus,
	)

	return err
}
