package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an insert collides with an existing row
	// on a uniqueness constraint. For payments this is the duplicate-
	// settlement signal, not a fault.
	ErrDuplicate = errors.New("entity already exists")
)
