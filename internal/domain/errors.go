package domain

import "errors"

// Business failures surfaced by the order core. Callers match these with
// errors.Is to map them to distinct responses.
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrNotCancellable    = errors.New("order is not cancellable")
	ErrPaymentFailed     = errors.New("payment failed")
)
