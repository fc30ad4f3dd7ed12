package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/shopfront/shopfront/internal/api"
	"github.com/shopfront/shopfront/internal/api/handlers"
	"github.com/shopfront/shopfront/internal/config"
	"github.com/shopfront/shopfront/internal/core/account"
	"github.com/shopfront/shopfront/internal/core/catalog"
	"github.com/shopfront/shopfront/internal/core/product"
	"github.com/shopfront/shopfront/internal/core/validation"
	"github.com/shopfront/shopfront/internal/fixtures"
	"github.com/shopfront/shopfront/internal/obs"
	"github.com/shopfront/shopfront/internal/storage/memory"
	"github.com/shopfront/shopfront/internal/storage/postgres"
)

func main() {
	cfg := config.Load()

	logger, err := obs.NewLogger(cfg.Mode)
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.JWT.Secret == "" {
		logger.Fatal("JWT_SECRET environment variable is required")
	}

	// Wire repositories for the configured store driver.
	var (
		accountRepo  account.Repository
		categoryRepo catalog.Repository
		productRepo  product.Repository
		db           *postgres.Client
	)
	switch cfg.Store {
	case config.StorePostgres:
		db, err = postgres.NewClient(cfg.PostgresDSN)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		accountRepo = postgres.NewAccountRepository(db)
		categoryRepo = postgres.NewCategoryRepository(db)
		productRepo = postgres.NewProductRepository(db)
		logger.Info("connected to database")
	case config.StoreMemory:
		accountRepo = memory.NewAccountStore()
		categoryRepo = memory.NewCategoryStore()
		productRepo = memory.NewProductStore()
	default:
		logger.Fatal("unknown store driver", zap.String("store", cfg.Store))
	}

	// Services
	accountService := account.NewService(accountRepo, &cfg.JWT)
	categoryService := catalog.NewService(categoryRepo)
	validator := validation.NewValidator()
	productService := product.NewService(productRepo, categoryService, validator)

	// The memory driver starts empty; seed it with the fixture catalog.
	if cfg.Store == config.StoreMemory {
		f, err := fixtures.Load(cfg.FixturesPath)
		if err != nil {
			logger.Warn("no fixtures loaded", zap.Error(err))
		} else {
			n, err := fixtures.Seed(context.Background(), f, accountService, categoryService, productService)
			if err != nil {
				logger.Fatal("failed to seed fixtures", zap.Error(err))
			}
			logger.Info("seeded fixture catalog", zap.Int("products", n))
		}
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(accountService)
	shopHandler := handlers.NewShopHandler(productService, categoryService)
	productHandler := handlers.NewProductHandler(productService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	adminHandler := handlers.NewAdminHandler(accountService)

	router := api.NewRouter(
		logger,
		accountService,
		authHandler,
		shopHandler,
		productHandler,
		categoryHandler,
		adminHandler,
	)

	engine := router.Setup(cfg.Mode)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: engine,
	}

	go func() {
		logger.Info("starting server", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
}
