package checkout

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"codespace-shop/internal/logger"
	"codespace-shop/internal/order"
	"codespace-shop/internal/payment"

	"go.uber.org/zap"
)

const (
	successPath = "/checkout/success"
	cancelPath  = "/cart"
)

type Service interface {
	// Checkout creates the order and, when payments are enabled, a hosted
	// payment session for it. baseURL anchors the success and cancel redirects.
	Checkout(ctx context.Context, req Request, baseURL string) (*Result, error)
}

type service struct {
	orders   order.Service
	gateway  payment.Gateway
	currency string
}

// NewService wires checkout. A nil gateway switches to acknowledgement mode.
func NewService(orders order.Service, gateway payment.Gateway, currency string) Service {
	return &service{
		orders:   orders,
		gateway:  gateway,
		currency: currency,
	}
}

func (s *service) Checkout(ctx context.Context, req Request, baseURL string) (*Result, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Checkout"),
		zap.Int("item_count", len(req.Items)),
	)

	email, err := validateEmail(req.Email)
	if err != nil {
		return nil, err
	}
	items, err := toItemInputs(req.Items)
	if err != nil {
		return nil, err
	}

	o, err := s.orders.CreateOrderFromCart(ctx, email, items)
	if err != nil {
		log.Warn("order creation failed", zap.Error(err))
		return nil, err
	}

	ctx = logger.With(ctx, zap.String("order_id", o.ID))
	log = log.With(zap.String("order_id", o.ID), zap.Int64("total_cents", o.TotalCents))

	if s.gateway == nil {
		log.Info("payments disabled, acknowledging order")
		return &Result{OK: true, OrderID: o.ID}, nil
	}

	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		log.Error("no base url for payment redirects")
		return nil, ErrMissingBaseURL
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, payment.SessionParams{
		OrderID:       o.ID,
		CustomerEmail: email,
		Currency:      s.currency,
		SuccessURL:    baseURL + successPath,
		CancelURL:     baseURL + cancelPath,
		LineItems:     lineItems(o),
	})
	if err != nil {
		// The PENDING order stays behind; there is no reconciliation.
		log.Error("payment session failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrPaymentFailed, err)
	}

	log.Info("checkout session ready", zap.String("session_id", session.ID))
	return &Result{URL: session.URL}, nil
}

// validateEmail accepts a bare RFC 5322 address, no display name.
func validateEmail(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	if email == "" {
		return "", ErrInvalidEmail
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return "", ErrInvalidEmail
	}
	if !hasDottedDomain(email) {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// hasDottedDomain rejects single-label hosts such as "user@localhost".
func hasDottedDomain(email string) bool {
	domain := email[strings.LastIndex(email, "@")+1:]
	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return false
	}
	for _, l := range labels {
		if l == "" {
			return false
		}
	}
	return true
}

func toItemInputs(items []RequestItem) ([]order.ItemInput, error) {
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}

	out := make([]order.ItemInput, 0, len(items))
	for i, it := range items {
		if strings.TrimSpace(it.ProductID) == "" {
			return nil, fmt.Errorf("%w: item %d has no productId", ErrInvalidItem, i)
		}
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: item %d quantity %d", ErrInvalidItem, i, it.Quantity)
		}
		out = append(out, order.ItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return out, nil
}

func lineItems(o *order.Order) []payment.LineItem {
	out := make([]payment.LineItem, 0, len(o.Items))
	for _, it := range o.Items {
		out = append(out, payment.LineItem{
			Name:            it.ProductName,
			UnitAmountCents: it.PriceCents,
			Quantity:        it.Quantity,
		})
	}
	return out
}
