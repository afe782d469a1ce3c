package repository

import (
	"context"

	"paygate/internal/domain"
)

// PayableRepository reads the host platform's pricing records.
type PayableRepository interface {
	// Get retrieves the payable for a component, payment area and item.
	// Returns ErrNotFound when no such payable is configured.
	Get(ctx context.Context, component, paymentArea string, itemID int64) (*domain.Payable, error)
}
