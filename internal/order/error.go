package order

import "errors"

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrAlreadyPaid   = errors.New("order already paid")
	ErrNotPayable    = errors.New("order cannot be marked as paid")
)
