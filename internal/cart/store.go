// Package cart keeps the shopper's cart on the client side between runs.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"codespace-shop/internal/logger"
	"codespace-shop/internal/order"
	"codespace-shop/internal/product"

	"go.uber.org/zap"
)

type Storage interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, data []byte) error
}

// Store is the cart state. Every mutation is persisted before it returns.
type Store struct {
	mu      sync.Mutex
	storage Storage
	items   []Item
}

func NewStore(storage Storage) *Store {
	return &Store{storage: storage}
}

// Load rehydrates the cart. Missing or unreadable payloads start an empty cart.
func (s *Store) Load(ctx context.Context) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "cart"),
		zap.String("method", "Load"),
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.storage.Read(ctx, StorageKey)
	if errors.Is(err, ErrNoData) {
		s.items = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("read cart: %w", err)
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		log.Warn("discarding unreadable cart payload", zap.Error(err))
		s.items = nil
		return nil
	}

	s.items = items
	return nil
}

func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Add puts qty of p in the cart, incrementing the line if p is already there.
func (s *Store) Add(ctx context.Context, p *product.Product, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if p == nil || p.ID == "" {
		return ErrInvalidProduct
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Item, len(s.items), len(s.items)+1)
	copy(next, s.items)

	found := false
	for i := range next {
		if next[i].Product.ID == p.ID {
			next[i].Quantity += qty
			found = true
			break
		}
	}
	if !found {
		next = append(next, Item{Product: SnapshotOf(p), Quantity: qty})
	}

	return s.commit(ctx, next)
}

// Remove drops the line for productID. Removing an absent id is a no-op.
func (s *Store) Remove(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Item, 0, len(s.items))
	for _, it := range s.items {
		if it.Product.ID != productID {
			next = append(next, it)
		}
	}

	return s.commit(ctx, next)
}

func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commit(ctx, []Item{})
}

func (s *Store) TotalCents() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, it := range s.items {
		total += it.SubtotalCents()
	}
	return total
}

// CheckoutItems is the cart as a checkout request body. Prices are left out.
func (s *Store) CheckoutItems() []order.ItemInput {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]order.ItemInput, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, order.ItemInput{ProductID: it.Product.ID, Quantity: it.Quantity})
	}
	return out
}

// commit persists next and only then swaps it in, so a failed write leaves
// the in-memory cart untouched.
func (s *Store) commit(ctx context.Context, next []Item) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.storage.Write(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("write cart: %w", err)
	}

	s.items = next
	return nil
}
