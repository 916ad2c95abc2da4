package order

import "errors"

var (
	ErrEmptyItems      = errors.New("order has no items")
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrInvalidEmail    = errors.New("email is required")
	ErrUnknownProduct  = errors.New("unknown product")
	ErrOrderNotFound   = errors.New("order not found")
)
