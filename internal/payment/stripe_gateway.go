package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"codespace-shop/internal/logger"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"go.uber.org/zap"
)

type stripeGateway struct {
	httpClient *http.Client
	sessions   *session.Client
}

// NewStripeGateway returns nil when no secret key is configured, which
// callers treat as "payments disabled".
func NewStripeGateway(secretKey string) Gateway {
	if secretKey == "" {
		return nil
	}
	return newStripeGateway(secretKey)
}

func newStripeGateway(secretKey string) *stripeGateway {
	httpClient := &http.Client{Timeout: 15 * time.Second}

	// A checkout attempt is one provider call; retries are left to the buyer.
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		HTTPClient:        httpClient,
		URL:               stripe.String(stripe.APIURL),
		MaxNetworkRetries: stripe.Int64(0),
		EnableTelemetry:   stripe.Bool(false),
		LeveledLogger:     logger.L().Named("stripe").Sugar(),
	})

	return &stripeGateway{
		httpClient: httpClient,
		sessions:   &session.Client{B: backend, Key: secretKey},
	}
}

// CreateCheckoutSession makes a single synchronous call; failures are
// returned to the caller as-is.
func (g *stripeGateway) CreateCheckoutSession(ctx context.Context, params SessionParams) (*Session, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "payment"),
		zap.String("provider", "stripe"),
		zap.Int("line_items", len(params.LineItems)),
	)

	if len(params.LineItems) == 0 {
		return nil, ErrNoLineItems
	}

	log.Info("creating checkout session")

	s, err := g.sessions.New(checkoutSessionParams(ctx, params))
	if err != nil {
		var apiErr *stripe.Error
		if errors.As(err, &apiErr) {
			log.Error("stripe returned non-success status",
				zap.Int("status", apiErr.HTTPStatusCode),
				zap.String("error_type", string(apiErr.Type)),
				zap.String("error_message", apiErr.Msg),
			)
			return nil, fmt.Errorf("%w: status %d: %s", ErrProviderError, apiErr.HTTPStatusCode, apiErr.Msg)
		}
		log.Error("stripe request failed", zap.Error(err))
		return nil, fmt.Errorf("stripe request: %w", err)
	}
	if s.URL == "" {
		return nil, ErrMissingURL
	}

	log.Info("checkout session created", zap.String("session_id", s.ID))

	return &Session{ID: s.ID, URL: s.URL}, nil
}

func checkoutSessionParams(ctx context.Context, p SessionParams) *stripe.CheckoutSessionParams {
	currency := strings.ToLower(p.Currency)
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}

	params := &stripe.CheckoutSessionParams{
		Params:            stripe.Params{Context: ctx},
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(p.SuccessURL),
		CancelURL:         stripe.String(p.CancelURL),
		CustomerEmail:     stripe.String(p.CustomerEmail),
		ClientReferenceID: stripe.String(p.OrderID),
		LineItems:         make([]*stripe.CheckoutSessionLineItemParams, 0, len(p.LineItems)),
	}
	params.AddMetadata("orderId", p.OrderID)

	for _, item := range p.LineItems {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
				UnitAmount: stripe.Int64(item.UnitAmountCents),
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		})
	}

	return params
}
