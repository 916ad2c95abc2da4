package order

import "time"

type OrderStatus string

// PENDING is the only status an order reaches; payment confirmation is not tracked.
const StatusPending OrderStatus = "PENDING"

type Order struct {
	ID         string
	Email      string
	TotalCents int64
	Status     OrderStatus
	CreatedAt  time.Time
	Items      []OrderItem
}

type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	// ProductName is resolved from the catalog, not stored on the line.
	ProductName string
	Quantity    int
	PriceCents  int64
}

// Subtotal is the line price at the snapshot unit price.
func (i OrderItem) Subtotal() int64 {
	return i.PriceCents * int64(i.Quantity)
}

// ItemInput is a requested line. It deliberately carries no price.
type ItemInput struct {
	ProductID string
	Quantity  int
}
