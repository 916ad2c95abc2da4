// Package rest is the storefront's HTTP surface.
package rest

import (
	"context"
	"net/http"

	"codespace-shop/internal/auth"
	"codespace-shop/internal/checkout"
	"codespace-shop/internal/logger"
	"codespace-shop/internal/metrics"
	"codespace-shop/internal/middleware"
	"codespace-shop/internal/order"
	"codespace-shop/internal/product"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Seeder interface {
	Run(ctx context.Context) (int, error)
}

type Deps struct {
	Products product.Service
	Orders   order.Service
	Checkout checkout.Service
	Admin    *auth.Admin
	Seeder   Seeder
	Metrics  *metrics.ServerMetrics
	Limiter  *middleware.RateLimiter

	// BaseURL, when set, replaces the request origin in payment redirects.
	BaseURL    string
	CORSOrigin string
	// Currency is the ISO code used for display prices.
	Currency string
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
	}
	r.Use(middleware.CORS(d.CORSOrigin))
	if d.Limiter != nil {
		r.Use(d.Limiter.Middleware)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	ph := &productHandler{products: d.Products, currency: d.Currency}
	ch := &checkoutHandler{checkout: d.Checkout, baseURL: d.BaseURL}
	ah := &adminHandler{admin: d.Admin, seeder: d.Seeder, orders: d.Orders}

	r.Route("/api", func(api chi.Router) {
		api.Get("/products", ph.list)
		api.Get("/products/{slug}", ph.getBySlug)
		api.Post("/checkout", ch.create)

		api.Route("/admin", func(admin chi.Router) {
			admin.Post("/login", ah.login)

			admin.Group(func(protected chi.Router) {
				protected.Use(middleware.RequireAdmin(d.Admin))
				protected.Post("/seed", ah.seed)
				protected.Get("/orders/{id}", ah.getOrder)
			})
		})
	})

	return r
}
