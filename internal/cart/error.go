package cart

import "errors"

var (
	ErrInvalidQuantity = errors.New("invalid cart quantity")
	ErrInvalidProduct  = errors.New("invalid cart product")

	// ErrNoData is returned by a Storage when nothing is stored under the key.
	ErrNoData = errors.New("no cart data stored")
)
