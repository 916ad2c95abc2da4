package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidSlug     = errors.New("invalid product slug")
	ErrInvalidProduct  = errors.New("invalid product input")
)
