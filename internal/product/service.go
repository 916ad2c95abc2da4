package product

import (
	"context"
	"errors"
	"strings"

	"codespace-shop/internal/logger"

	"go.uber.org/zap"
)

// Service is the read side of the catalog used by storefront handlers.
type Service interface {
	ListProducts(ctx context.Context) ([]*Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListProducts(ctx context.Context) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ListProducts"),
	)

	products, err := s.repo.List(ctx)
	if err != nil {
		log.Error("failed to list products", zap.Error(err))
		return nil, err
	}

	log.Debug("products listed", zap.Int("count", len(products)))
	return products, nil
}

func (s *service) GetProductBySlug(ctx context.Context, slug string) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetProductBySlug"),
		zap.String("slug", slug),
	)

	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrInvalidSlug
	}

	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if !errors.Is(err, ErrProductNotFound) {
			log.Error("failed to get product", zap.Error(err))
		}
		return nil, err
	}

	return p, nil
}
