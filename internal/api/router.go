package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopfront/shopfront/internal/api/handlers"
	"github.com/shopfront/shopfront/internal/api/middleware"
	"github.com/shopfront/shopfront/internal/core/account"
)

type Router struct {
	engine          *gin.Engine
	logger          *zap.Logger
	authMiddleware  *middleware.AuthMiddleware
	authHandler     *handlers.AuthHandler
	shopHandler     *handlers.ShopHandler
	productHandler  *handlers.ProductHandler
	categoryHandler *handlers.CategoryHandler
	adminHandler    *handlers.AdminHandler
}

func NewRouter(
	logger *zap.Logger,
	accounts *account.Service,
	authHandler *handlers.AuthHandler,
	shopHandler *handlers.ShopHandler,
	productHandler *handlers.ProductHandler,
	categoryHandler *handlers.CategoryHandler,
	adminHandler *handlers.AdminHandler,
) *Router {
	return &Router{
		logger:          logger,
		authMiddleware:  middleware.NewAuthMiddleware(accounts),
		authHandler:     authHandler,
		shopHandler:     shopHandler,
		productHandler:  productHandler,
		categoryHandler: categoryHandler,
		adminHandler:    adminHandler,
	}
}

func (r *Router) Setup(mode string) *gin.Engine {
	gin.SetMode(mode)
	r.engine = gin.New()
	r.engine.Use(gin.Recovery())
	r.engine.Use(middleware.RequestLogger(r.logger))

	r.setupRoutes()
	return r.engine
}

func (r *Router) setupRoutes() {
	api := r.engine.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Auth routes (public)
	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", r.authHandler.Register)
		authRoutes.POST("/login", r.authHandler.Login)
	}

	// Shop portal (public browsing)
	shop := api.Group("/shop")
	{
		shop.GET("/products", r.shopHandler.ListProducts)
		shop.GET("/products/:id", r.shopHandler.GetProduct)
		shop.GET("/categories", r.shopHandler.ListCategories)
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(r.authMiddleware.Authenticate())
	{
		protected.GET("/auth/me", r.authHandler.Me)

		// Vendor portal: own products only
		vendor := protected.Group("/vendor")
		vendor.Use(r.authMiddleware.RequireRole(account.RoleVendor))
		{
			vendor.GET("/products", r.productHandler.List)
			vendor.POST("/products", r.productHandler.Create)
			vendor.GET("/products/:id", r.productHandler.Get)
			vendor.PUT("/products/:id", r.productHandler.Update)
			vendor.DELETE("/products/:id", r.productHandler.Delete)
		}

		// Admin portal: full catalog and account management
		admin := protected.Group("/admin")
		admin.Use(r.authMiddleware.RequireRole(account.RoleAdmin))
		{
			admin.GET("/products", r.productHandler.List)
			admin.POST("/products", r.productHandler.Create)
			admin.GET("/products/:id", r.productHandler.Get)
			admin.PUT("/products/:id", r.productHandler.Update)
			admin.DELETE("/products/:id", r.productHandler.Delete)

			admin.GET("/categories", r.categoryHandler.List)
			admin.POST("/categories", r.categoryHandler.Create)
			admin.GET("/categories/:id", r.categoryHandler.Get)
			admin.PUT("/categories/:id", r.categoryHandler.Update)
			admin.DELETE("/categories/:id", r.categoryHandler.Delete)

			admin.GET("/accounts", r.adminHandler.ListAccounts)
			admin.POST("/accounts", r.adminHandler.CreateAccount)
		}
	}
}
