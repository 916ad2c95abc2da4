// Package events publishes domain events produced by the storefront.
package events

import (
	"context"
	"time"
)

const TypeOrderPlaced = "order.placed"

type OrderPlacedItem struct {
	ProductID  string `json:"productId"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"priceCents"`
}

type OrderPlaced struct {
	EventID    string            `json:"eventId"`
	Type       string            `json:"type"`
	OrderID    string            `json:"orderId"`
	Email      string            `json:"email"`
	TotalCents int64             `json:"totalCents"`
	Items      []OrderPlacedItem `json:"items"`
	OccurredAt time.Time         `json:"occurredAt"`
}

type Publisher interface {
	PublishOrderPlaced(ctx context.Context, evt OrderPlaced) error
	Close() error
}

// NoopPublisher drops events; used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderPlaced(context.Context, OrderPlaced) error { return nil }
func (NoopPublisher) Close() error                                         { return nil }
