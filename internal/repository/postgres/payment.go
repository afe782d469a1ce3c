package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"paygate/internal/domain"
	"paygate/internal/repository"
)

// PaymentRepository is a PostgreSQL implementation of
// repository.PaymentRepository. The payments table carries a unique index
// over the settlement key, so a duplicate settlement surfaces as a
// unique-violation on insert rather than relying on a check-then-act probe.
type PaymentRepository struct {
	q Querier
}

// NewPaymentRepository creates a new PostgreSQL payment repository.
func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{q: db}
}

// NewPaymentRepositoryWithTx creates a payment repository using a transaction.
func NewPaymentRepositoryWithTx(tx *sql.Tx) *PaymentRepository {
	return &PaymentRepository{q: tx}
}

// Insert persists a new payment record.
func (r *PaymentRepository) Insert(ctx context.Context, payment *domain.PaymentRecord) error {
	query := `
		INSERT INTO payments (id, component, paymentarea, itemid, userid, amount, currency, gateway, accountid)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.q.ExecContext(ctx, query,
		payment.ID,
		payment.Component,
		payment.PaymentArea,
		payment.ItemID,
		payment.UserID,
		payment.Amount,
		payment.Currency,
		payment.Gateway,
		payment.AccountID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return repository.ErrDuplicate
		}
		return err
	}

	return nil
}

// Exists reports whether a payment record exists for the settlement key.
func (r *PaymentRepository) Exists(ctx context.Context, key domain.SettlementKey) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM payments
			WHERE component = $1 AND paymentarea = $2 AND itemid = $3 AND userid = $4
			  AND amount = $5 AND currency = $6 AND gateway = $7 AND accountid = $8
		)
	`

	var exists bool
	err := r.q.QueryRowContext(ctx, query,
		key.Component,
		key.PaymentArea,
		key.ItemID,
		key.UserID,
		key.Amount,
		key.Currency,
		key.Gateway,
		key.AccountID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}
