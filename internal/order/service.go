package order

import (
	"context"
	"strings"
	"time"

	"codespace-shop/internal/events"
	"codespace-shop/internal/logger"
	"codespace-shop/internal/product"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductLookup is the slice of the catalog the order constructor needs.
type ProductLookup interface {
	GetByIDs(ctx context.Context, ids []string) ([]*product.Product, error)
}

type Service interface {
	CreateOrderFromCart(ctx context.Context, email string, items []ItemInput) (*Order, error)
	GetOrder(ctx context.Context, orderID string) (*Order, error)
}

type service struct {
	repo      Repository
	products  ProductLookup
	publisher events.Publisher
}

func NewService(repo Repository, products ProductLookup, publisher events.Publisher) Service {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &service{
		repo:      repo,
		products:  products,
		publisher: publisher,
	}
}

// CreateOrderFromCart prices every line from the catalog, never from the
// caller, and persists the order with its items in one transaction. Any
// unknown product aborts before anything is written.
func (s *service) CreateOrderFromCart(ctx context.Context, email string, items []ItemInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrderFromCart"),
		zap.Int("item_count", len(items)),
	)

	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrInvalidEmail
	}
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}

	// Postgres returns ids in canonical lowercase form, so every lookup key
	// is normalized the same way.
	canonical := make([]string, len(items))
	ids := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		if item.Quantity <= 0 {
			log.Warn("invalid quantity", zap.Int("index", i), zap.Int("quantity", item.Quantity))
			return nil, ErrInvalidQuantity
		}
		u, err := uuid.Parse(item.ProductID)
		if err != nil {
			log.Warn("malformed product id", zap.String("product_id", item.ProductID))
			return nil, ErrUnknownProduct
		}
		id := u.String()
		canonical[i] = id
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		log.Error("failed to load products", zap.Error(err))
		return nil, err
	}
	byID := product.IndexByID(products)

	order := &Order{
		Email:  email,
		Status: StatusPending,
		Items:  make([]OrderItem, 0, len(items)),
	}

	for i, item := range items {
		p, ok := byID[canonical[i]]
		if !ok {
			log.Warn("unknown product", zap.String("product_id", item.ProductID))
			return nil, ErrUnknownProduct
		}

		line := OrderItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    item.Quantity,
			PriceCents:  p.PriceCents,
		}
		order.TotalCents += line.Subtotal()
		order.Items = append(order.Items, line)
	}

	if err := s.repo.Create(ctx, order); err != nil {
		log.Error("failed to persist order", zap.Error(err))
		return nil, err
	}

	log = log.With(zap.String("order_id", order.ID), zap.Int64("total_cents", order.TotalCents))
	log.Info("order created")

	s.publishPlaced(ctx, log, order)

	return order, nil
}

func (s *service) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	if _, err := uuid.Parse(orderID); err != nil {
		return nil, ErrOrderNotFound
	}
	return s.repo.GetByID(ctx, orderID)
}

// publishPlaced is best-effort: the order is already committed.
func (s *service) publishPlaced(ctx context.Context, log *zap.Logger, o *Order) {
	evt := events.OrderPlaced{
		OrderID:    o.ID,
		Email:      o.Email,
		TotalCents: o.TotalCents,
		OccurredAt: time.Now().UTC(),
		Items:      make([]events.OrderPlacedItem, 0, len(o.Items)),
	}
	for _, it := range o.Items {
		evt.Items = append(evt.Items, events.OrderPlacedItem{
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			PriceCents: it.PriceCents,
		})
	}

	if err := s.publisher.PublishOrderPlaced(ctx, evt); err != nil {
		log.Warn("failed to publish order event", zap.Error(err))
	}
}
