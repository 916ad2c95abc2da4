// Package payment creates hosted checkout sessions with the payment processor.
package payment

import (
	"context"
	"errors"

	"codespace-shop/internal/config"
)

var (
	ErrNoLineItems   = errors.New("payment session requires at least one line item")
	ErrMissingURL    = errors.New("payment provider returned no redirect url")
	ErrProviderError = errors.New("payment provider error")
)

type Gateway interface {
	CreateCheckoutSession(ctx context.Context, params SessionParams) (*Session, error)
}

type LineItem struct {
	Name            string
	UnitAmountCents int64
	Quantity        int
}

type SessionParams struct {
	OrderID       string
	CustomerEmail string
	Currency      string
	SuccessURL    string
	CancelURL     string
	LineItems     []LineItem
}

type Session struct {
	ID  string
	URL string
}

// NewGateway picks the configured provider. A nil Gateway means payments are disabled.
func NewGateway(cfg *config.Config) Gateway {
	if cfg == nil || !cfg.PaymentsEnabled() {
		return nil
	}
	return NewStripeGateway(cfg.StripeSecretKey)
}
