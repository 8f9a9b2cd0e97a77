package entities

import "errors"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidOrder      = errors.New("invalid order")
	ErrDuplicateOrder    = errors.New("order number already exists")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrCannotCancel      = errors.New("order can no longer be cancelled")
	ErrStatusConflict    = errors.New("order status changed concurrently")
	ErrOrderNotPayable   = errors.New("order cannot be paid")
)
