package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"codespace-shop/internal/config"
	"codespace-shop/internal/db"
	"codespace-shop/internal/logger"
	"codespace-shop/internal/product"
	"codespace-shop/internal/seed"

	"go.uber.org/zap"
)

var initDBFunc = db.InitDB

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("seed failed", zap.Error(err))
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	return seedCatalog(database)
}

func seedCatalog(database *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	inserted, err := seed.NewSeeder(product.NewRepository(database)).Run(ctx)
	if err != nil {
		return err
	}

	logger.L().Info("seed complete", zap.Int("inserted", inserted))
	return nil
}
