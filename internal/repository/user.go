package repository

import (
	"context"

	"paygate/internal/domain"
)

// UserRepository reads host-platform accounts.
type UserRepository interface {
	// GetByID retrieves an account by ID. Returns ErrNotFound when the
	// account does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
