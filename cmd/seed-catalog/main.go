// seed-catalog loads the fixture catalog into a PostgreSQL store so a fresh
// deployment starts with browsable data.
package main

import (
	"context"
	"flag"
	"os"

	"go.uber.org/zap"

	"github.com/shopfront/shopfront/internal/config"
	"github.com/shopfront/shopfront/internal/core/account"
	"github.com/shopfront/shopfront/internal/core/catalog"
	"github.com/shopfront/shopfront/internal/core/product"
	"github.com/shopfront/shopfront/internal/core/validation"
	"github.com/shopfront/shopfront/internal/fixtures"
	"github.com/shopfront/shopfront/internal/obs"
	"github.com/shopfront/shopfront/internal/storage/postgres"
)

func main() {
	cfg := config.Load()

	path := flag.String("fixtures", cfg.FixturesPath, "path to the fixture catalog")
	flag.Parse()

	logger, err := obs.NewLogger(cfg.Mode)
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.PostgresDSN == "" {
		logger.Fatal("POSTGRES_DSN environment variable is required")
	}
	if cfg.JWT.Secret == "" {
		logger.Fatal("JWT_SECRET environment variable is required")
	}

	db, err := postgres.NewClient(cfg.PostgresDSN)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	accountService := account.NewService(postgres.NewAccountRepository(db), &cfg.JWT)
	categoryService := catalog.NewService(postgres.NewCategoryRepository(db))
	productService := product.NewService(postgres.NewProductRepository(db), categoryService, validation.NewValidator())

	f, err := fixtures.Load(*path)
	if err != nil {
		logger.Fatal("failed to load fixtures", zap.Error(err))
	}

	n, err := fixtures.Seed(context.Background(), f, accountService, categoryService, productService)
	if err != nil {
		logger.Fatal("failed to seed catalog", zap.Error(err))
	}

	logger.Info("catalog seeded",
		zap.Int("vendors", len(f.Vendors)),
		zap.Int("categories", len(f.Categories)),
		zap.Int("products", n),
	)
}
