// Package seed loads the demo catalog.
package seed

import (
	"context"
	"fmt"

	"codespace-shop/internal/logger"
	"codespace-shop/internal/product"

	"go.uber.org/zap"
)

// ProductStore is the part of the catalog repository the seeder writes through.
type ProductStore interface {
	CountBySlugs(ctx context.Context, slugs []string) (int, error)
	CreateMany(ctx context.Context, inputs []product.NewProductInput) (int, error)
}

// DemoProducts is the fixed demo catalog.
func DemoProducts() []product.NewProductInput {
	return []product.NewProductInput{
		{
			Slug:        "classic-tee",
			Name:        "Classic Tee",
			Description: "Soft cotton tee for daily wear.",
			PriceCents:  2500,
			Image:       "https://picsum.photos/seed/tee/600/600",
		},
		{
			Slug:        "hoodie",
			Name:        "Hoodie",
			Description: "Cozy fleece hoodie.",
			PriceCents:  5500,
			Image:       "https://picsum.photos/seed/hoodie/600/600",
		},
		{
			Slug:        "cap",
			Name:        "Cap",
			Description: "Adjustable cotton cap.",
			PriceCents:  1800,
			Image:       "https://picsum.photos/seed/cap/600/600",
		},
	}
}

type Seeder struct {
	store ProductStore
}

func NewSeeder(store ProductStore) *Seeder {
	return &Seeder{store: store}
}

// Run inserts whichever demo products are missing and returns how many rows
// were written. Repeated runs converge on exactly the demo set.
func (s *Seeder) Run(ctx context.Context) (int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "seed"),
		zap.String("method", "Run"),
	)

	demo := DemoProducts()
	slugs := make([]string, 0, len(demo))
	for _, p := range demo {
		slugs = append(slugs, p.Slug)
	}

	existing, err := s.store.CountBySlugs(ctx, slugs)
	if err != nil {
		log.Error("failed to count demo products", zap.Error(err))
		return 0, fmt.Errorf("count demo products: %w", err)
	}
	if existing >= len(demo) {
		log.Info("demo products already present", zap.Int("count", existing))
		return 0, nil
	}

	inserted, err := s.store.CreateMany(ctx, demo)
	if err != nil {
		log.Error("failed to insert demo products", zap.Error(err))
		return 0, fmt.Errorf("insert demo products: %w", err)
	}

	log.Info("demo products seeded",
		zap.Int("existing", existing),
		zap.Int("inserted", inserted),
	)
	return inserted, nil
}
