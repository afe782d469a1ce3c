package postgres

import (
	"context"
	"database/sql"
	"errors"

	"paygate/internal/domain"
	"paygate/internal/repository"
)

// PayableRepository implements repository.PayableRepository against the host
// platform's payables table.
type PayableRepository struct {
	db *sql.DB
}

// NewPayableRepository creates a new PayableRepository.
func NewPayableRepository(db *sql.DB) *PayableRepository {
	return &PayableRepository{db: db}
}

// Get retrieves the payable for a component, payment area and item.
func (r *PayableRepository) Get(ctx context.Context, component, paymentArea string, itemID int64) (*domain.Payable, error) {
	query := `
		SELECT component, paymentarea, itemid, amount, currency, accountid
		FROM payables
		WHERE component = $1 AND paymentarea = $2 AND itemid = $3
	`

	var payable domain.Payable
	err := r.db.QueryRowContext(ctx, query, component, paymentArea, itemID).Scan(
		&payable.Component,
		&payable.PaymentArea,
		&payable.ItemID,
		&payable.Amount,
		&payable.Currency,
		&payable.AccountID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &payable, nil
}
