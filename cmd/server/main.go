package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codespace-shop/internal/auth"
	"codespace-shop/internal/checkout"
	"codespace-shop/internal/config"
	"codespace-shop/internal/db"
	"codespace-shop/internal/events"
	"codespace-shop/internal/logger"
	"codespace-shop/internal/metrics"
	"codespace-shop/internal/middleware"
	"codespace-shop/internal/order"
	"codespace-shop/internal/payment"
	"codespace-shop/internal/product"
	"codespace-shop/internal/rest"
	"codespace-shop/internal/seed"

	"go.uber.org/zap"
)

var (
	initDBFunc      = db.InitDB
	startServerFunc = func(srv *http.Server) error { return srv.ListenAndServe() }
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server exited", zap.Error(err))
	}
}

type server struct {
	handler   http.Handler
	limiter   *middleware.RateLimiter
	publisher events.Publisher
}

func (s *server) Close() error {
	return s.publisher.Close()
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	database := initDBFunc(cfg)
	defer database.Close()

	app, err := newServer(cfg, database)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go app.limiter.Run(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           app.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server started", zap.String("port", cfg.AppPort), zap.Bool("payments", cfg.PaymentsEnabled()))
		errCh <- startServerFunc(srv)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("received shutdown signal, stopping gracefully")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	log.Info("HTTP server stopped")
	return nil
}

func newServer(cfg *config.Config, database *sql.DB) (*server, error) {
	log := logger.L()

	var publisher events.Publisher = events.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		log.Info("publishing order events", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))
	}

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, productRepo, publisher)

	checkoutSvc := checkout.NewService(orderSvc, payment.NewGateway(cfg), cfg.PaymentCurrency)

	admin, err := auth.NewAdmin(cfg)
	if err != nil {
		return nil, fmt.Errorf("admin credentials: %w", err)
	}
	if !admin.Enabled() {
		log.Warn("admin endpoints are locked: set ADMIN_PASSWORD or ADMIN_PASSWORD_HASH and JWT_SECRET")
	}

	limiter := middleware.NewRateLimiter()

	handler := rest.NewRouter(rest.Deps{
		Products:   productSvc,
		Orders:     orderSvc,
		Checkout:   checkoutSvc,
		Admin:      admin,
		Seeder:     seed.NewSeeder(productRepo),
		Metrics:    metrics.NewServerMetrics(nil),
		Limiter:    limiter,
		BaseURL:    cfg.BaseURL,
		CORSOrigin: cfg.CORSOrigin,
		Currency:   cfg.PaymentCurrency,
	})

	return &server{handler: handler, limiter: limiter, publisher: publisher}, nil
}
