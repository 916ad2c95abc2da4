package checkout

import "errors"

var (
	ErrInvalidEmail   = errors.New("invalid email")
	ErrEmptyItems     = errors.New("checkout requires at least one item")
	ErrInvalidItem    = errors.New("invalid checkout item")
	ErrMissingBaseURL = errors.New("base url is required for payment redirects")
	ErrPaymentFailed  = errors.New("payment session could not be created")
)
